package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Besher-Hamze/airport-management-system-backend/internal/airport"
	"github.com/Besher-Hamze/airport-management-system-backend/internal/observability"
	"github.com/Besher-Hamze/airport-management-system-backend/internal/rateLimit"
)

func SetupRouter(h *Handlers, logger observability.Logger, rl *rateLimit.RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(LoggerMiddleware(logger))
	r.Use(TracingMiddleware)
	r.Use(MetricsMiddleware)
	r.Use(JWTMiddleware)
	if rl != nil {
		r.Use(RateLimitMiddleware(rl))
	}

	r.Get("/", h.Info)
	r.Get("/health", h.Health)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	for _, svc := range h.airports {
		r.Mount("/"+svc.ID(), airportRouter(h, svc))
	}

	r.Route("/flight-management", func(r chi.Router) {
		r.Get("/flights", h.ListAllFlights)
		for _, svc := range h.airports {
			r.Post("/flights/"+svc.ID(), h.createFlight(svc))
		}
		r.Get("/flights/{airportId}", h.AirportFlights)
	})

	r.Route("/airports", func(r chi.Router) {
		r.Get("/", h.ListAirports)
		r.Get("/dashboard/stats", h.DashboardStats)
		r.Get("/search/flights", h.SearchFlights)
		r.Get("/{id}", h.GetAirport)
	})

	return r
}

// airportRouter mounts the identical per-airport CRUD surface under
// the airport's path prefix.
func airportRouter(h *Handlers, svc *airport.Service) chi.Router {
	r := chi.NewRouter()

	r.Get("/flights", h.listFlights(svc))
	r.Post("/flights", h.createFlight(svc))
	r.Get("/flights/number/{number}", h.getFlightByNumber(svc))
	r.Get("/flights/{id}", h.getFlight(svc))
	r.Put("/flights/{id}", h.updateFlight(svc))
	r.Delete("/flights/{id}", h.deleteFlight(svc))
	r.Get("/flights/{id}/bookings", h.listBookingsByFlight(svc))

	r.Get("/bookings", h.listBookings(svc))
	r.Post("/bookings", h.createBooking(svc))
	r.Get("/bookings/number/{number}", h.getBookingByNumber(svc))
	r.Get("/bookings/{id}", h.getBooking(svc))
	r.Put("/bookings/{id}/status", h.updateBookingStatus(svc))
	r.Delete("/bookings/{id}/cancel", h.cancelBooking(svc))

	return r
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Besher-Hamze/airport-management-system-backend/internal/aggregator"
	"github.com/Besher-Hamze/airport-management-system-backend/internal/airport"
	"github.com/Besher-Hamze/airport-management-system-backend/internal/domain"
	"github.com/Besher-Hamze/airport-management-system-backend/internal/observability"
)

type Handlers struct {
	agg      *aggregator.Service
	airports []*airport.Service
	logger   observability.Logger
}

func NewHandlers(agg *aggregator.Service, logger observability.Logger, airports ...*airport.Service) *Handlers {
	return &Handlers{agg: agg, airports: airports, logger: logger}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the domain sentinels onto status codes: NotFound and
// UnknownAirport to 404, Conflict to 409, InvalidInput to 400.
// Malformed store ids arrive as InvalidInput, so "bad id" is a 400
// rather than a 404.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUnknownAirport):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handlers) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"name":          "Airport Management API",
		"description":   "API for managing multiple airports with different databases",
		"version":       "1.0.0",
		"documentation": "/api",
	})
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Per-airport flight handlers. Each is bound to one airport service at
// router setup.

func (h *Handlers) listFlights(svc *airport.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flights, err := svc.GetAllFlights(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, flights)
	}
}

func (h *Handlers) getFlight(svc *airport.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flight, err := svc.GetFlightByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, flight)
	}
}

func (h *Handlers) getFlightByNumber(svc *airport.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flight, err := svc.GetFlightByNumber(r.Context(), chi.URLParam(r, "number"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, flight)
	}
}

func (h *Handlers) createFlight(svc *airport.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec domain.FlightSpec
		if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		flight, err := svc.CreateFlight(r.Context(), spec)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, flight)
	}
}

func (h *Handlers) updateFlight(svc *airport.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch domain.FlightPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		flight, err := svc.UpdateFlight(r.Context(), chi.URLParam(r, "id"), patch)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, flight)
	}
}

func (h *Handlers) deleteFlight(svc *airport.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteFlight(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// Per-airport booking handlers.

func (h *Handlers) listBookings(svc *airport.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookings, err := svc.GetAllBookings(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, bookings)
	}
}

func (h *Handlers) getBooking(svc *airport.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		booking, err := svc.GetBookingByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, booking)
	}
}

func (h *Handlers) getBookingByNumber(svc *airport.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		booking, err := svc.GetBookingByNumber(r.Context(), chi.URLParam(r, "number"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, booking)
	}
}

func (h *Handlers) createBooking(svc *airport.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec domain.BookingSpec
		if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		booking, err := svc.CreateBooking(r.Context(), spec)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, booking)
	}
}

func (h *Handlers) updateBookingStatus(svc *airport.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		booking, err := svc.UpdateBookingStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, booking)
	}
}

func (h *Handlers) cancelBooking(svc *airport.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.CancelBooking(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handlers) listBookingsByFlight(svc *airport.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookings, err := svc.GetBookingsByFlight(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, bookings)
	}
}

// Aggregator handlers.

func (h *Handlers) ListAirports(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.agg.ListAirports())
}

func (h *Handlers) GetAirport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ap := h.agg.GetAirport(id)
	if ap == nil {
		http.Error(w, "airport "+id+" not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, ap)
}

func (h *Handlers) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.agg.DashboardStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handlers) SearchFlights(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	flights, err := h.agg.SearchFlights(r.Context(), q.Get("from"), q.Get("to"), q.Get("date"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, flights)
}

func (h *Handlers) ListAllFlights(w http.ResponseWriter, r *http.Request) {
	grouped, err := h.agg.ListAllFlights(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, grouped)
}

func (h *Handlers) AirportFlights(w http.ResponseWriter, r *http.Request) {
	flights, err := h.agg.FlightsFor(r.Context(), chi.URLParam(r, "airportId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, flights)
}

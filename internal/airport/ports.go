package airport

import (
	"context"

	"github.com/Besher-Hamze/airport-management-system-backend/internal/domain"
)

// FlightStore owns flight records and their seat-occupancy state for a
// single airport. Implementations attach the offending identifier when
// returning domain.ErrNotFound or domain.ErrConflict.
type FlightStore interface {
	ListFlights(ctx context.Context) ([]domain.Flight, error)
	GetFlight(ctx context.Context, id string) (*domain.Flight, error)
	GetFlightByNumber(ctx context.Context, number string) (*domain.Flight, error)
	CreateFlight(ctx context.Context, spec domain.FlightSpec) (*domain.Flight, error)
	UpdateFlight(ctx context.Context, id string, patch domain.FlightPatch) (*domain.Flight, error)
	DeleteFlight(ctx context.Context, id string) error
}

// BookingStore owns booking records. Read operations denormalize the
// referenced flight into Booking.Flight when it still exists.
type BookingStore interface {
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
	GetBookingByNumber(ctx context.Context, number string) (*domain.Booking, error)
	CreateBooking(ctx context.Context, booking domain.Booking) (*domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, id, status string) (*domain.Booking, error)
	ListBookingsByFlight(ctx context.Context, flightID string) ([]domain.Booking, error)
}

// Recorder observes booking lifecycle changes. Implementations must not
// fail the operation; errors are logged and dropped.
type Recorder interface {
	BookingCreated(ctx context.Context, airportID string, booking domain.Booking)
	BookingCancelled(ctx context.Context, airportID string, booking domain.Booking)
}

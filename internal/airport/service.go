package airport

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/Besher-Hamze/airport-management-system-backend/internal/domain"
	"github.com/Besher-Hamze/airport-management-system-backend/internal/observability"
)

// Service enforces the cross-entity invariants of a single airport:
// flight-number uniqueness is delegated to the FlightStore, seat
// occupancy is owned here. The same implementation serves all three
// airports, parameterized over the storage adapters.
type Service struct {
	id       string
	prefix   string
	flights  FlightStore
	bookings BookingStore
	recorder Recorder
	logger   observability.Logger
}

type Option func(*Service)

// WithRecorder attaches a booking lifecycle recorder (event publisher,
// audit trail).
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

func NewService(id, prefix string, flights FlightStore, bookings BookingStore, logger observability.Logger, opts ...Option) *Service {
	s := &Service{
		id:       id,
		prefix:   prefix,
		flights:  flights,
		bookings: bookings,
		logger:   logger.WithField("airport", id),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the airport identifier this service instance serves.
func (s *Service) ID() string {
	return s.id
}

func (s *Service) GetAllFlights(ctx context.Context) ([]domain.Flight, error) {
	return s.flights.ListFlights(ctx)
}

func (s *Service) GetFlightByID(ctx context.Context, id string) (*domain.Flight, error) {
	return s.flights.GetFlight(ctx, id)
}

func (s *Service) GetFlightByNumber(ctx context.Context, number string) (*domain.Flight, error) {
	return s.flights.GetFlightByNumber(ctx, number)
}

func (s *Service) CreateFlight(ctx context.Context, spec domain.FlightSpec) (*domain.Flight, error) {
	flight, err := s.flights.CreateFlight(ctx, spec)
	if err != nil {
		return nil, err
	}
	s.logger.WithField("number", flight.Number).Info("flight created")
	return flight, nil
}

func (s *Service) UpdateFlight(ctx context.Context, id string, patch domain.FlightPatch) (*domain.Flight, error) {
	return s.flights.UpdateFlight(ctx, id, patch)
}

func (s *Service) DeleteFlight(ctx context.Context, id string) error {
	return s.flights.DeleteFlight(ctx, id)
}

func (s *Service) GetAllBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.ListBookings(ctx)
}

func (s *Service) GetBookingByID(ctx context.Context, id string) (*domain.Booking, error) {
	return s.bookings.GetBooking(ctx, id)
}

func (s *Service) GetBookingByNumber(ctx context.Context, number string) (*domain.Booking, error) {
	return s.bookings.GetBookingByNumber(ctx, number)
}

// CreateBooking persists a booking and reserves its seat on the flight.
// The booking write and the seat write are two separate store calls; a
// crash between them leaves a booking without a seat reservation.
func (s *Service) CreateBooking(ctx context.Context, spec domain.BookingSpec) (*domain.Booking, error) {
	flight, err := s.flights.GetFlight(ctx, spec.FlightID)
	if err != nil {
		return nil, err
	}

	if slices.Contains(flight.OccupiedSeats, spec.Seat) {
		observability.SeatConflicts.WithLabelValues(s.id).Inc()
		return nil, fmt.Errorf("seat %s is already occupied: %w", spec.Seat, domain.ErrConflict)
	}

	booking := domain.Booking{
		BookingNumber: domain.NewBookingNumber(s.prefix),
		FlightID:      flight.ID,
		FirstName:     spec.FirstName,
		LastName:      spec.LastName,
		Passport:      spec.Passport,
		BirthDate:     spec.BirthDate,
		Nationality:   spec.Nationality,
		Phone:         spec.Phone,
		Email:         spec.Email,
		Seat:          spec.Seat,
		Status:        domain.StatusConfirmed,
		PassportFile:  spec.PassportFile,
	}

	created, err := s.bookings.CreateBooking(ctx, booking)
	if err != nil {
		return nil, err
	}

	seats := append(slices.Clone(flight.OccupiedSeats), spec.Seat)
	if _, err := s.flights.UpdateFlight(ctx, flight.ID, domain.FlightPatch{OccupiedSeats: &seats}); err != nil {
		return nil, err
	}

	observability.BookingsCreated.WithLabelValues(s.id).Inc()
	s.logger.WithField("bookingNumber", created.BookingNumber).Info("booking created")
	if s.recorder != nil {
		s.recorder.BookingCreated(ctx, s.id, *created)
	}

	created.Flight = flight
	return created, nil
}

// UpdateBookingStatus overwrites the booking status. Statuses outside
// the closed set are rejected with domain.ErrInvalidInput.
func (s *Service) UpdateBookingStatus(ctx context.Context, id, status string) (*domain.Booking, error) {
	if !domain.ValidStatus(status) {
		return nil, fmt.Errorf("status %q is not allowed: %w", status, domain.ErrInvalidInput)
	}
	return s.bookings.UpdateBookingStatus(ctx, id, status)
}

// CancelBooking releases the booking's seat and marks the booking
// cancelled. A booking whose flight has since been deleted is still
// cancelled; the dangling reference is logged and skipped.
func (s *Service) CancelBooking(ctx context.Context, id string) error {
	booking, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		return err
	}

	flight, err := s.flights.GetFlight(ctx, booking.FlightID)
	switch {
	case err == nil:
		seats := slices.Clone(flight.OccupiedSeats)
		if i := slices.Index(seats, booking.Seat); i >= 0 {
			seats = slices.Delete(seats, i, i+1)
		}
		if _, err := s.flights.UpdateFlight(ctx, flight.ID, domain.FlightPatch{OccupiedSeats: &seats}); err != nil {
			return err
		}
	case errors.Is(err, domain.ErrNotFound):
		s.logger.WithField("bookingNumber", booking.BookingNumber).
			WithField("flightId", booking.FlightID).
			Warn("cancelling booking whose flight no longer exists")
	default:
		return err
	}

	cancelled, err := s.bookings.UpdateBookingStatus(ctx, id, domain.StatusCancelled)
	if err != nil {
		return err
	}

	observability.BookingsCancelled.WithLabelValues(s.id).Inc()
	if s.recorder != nil {
		s.recorder.BookingCancelled(ctx, s.id, *cancelled)
	}
	return nil
}

// GetBookingsByFlight lists the bookings referencing a flight. The
// flight lookup runs first, so a deleted flight yields NotFound even
// when dangling bookings still reference it.
func (s *Service) GetBookingsByFlight(ctx context.Context, flightID string) ([]domain.Booking, error) {
	if _, err := s.flights.GetFlight(ctx, flightID); err != nil {
		return nil, err
	}
	return s.bookings.ListBookingsByFlight(ctx, flightID)
}

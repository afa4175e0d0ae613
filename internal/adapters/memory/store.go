// Package memory holds a map-backed implementation of the airport
// store contract, used by unit tests in place of a real backend.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Besher-Hamze/airport-management-system-backend/internal/domain"
	"github.com/google/uuid"
)

type Store struct {
	mu       sync.RWMutex
	flights  map[string]domain.Flight
	bookings map[string]domain.Booking
}

func NewStore() *Store {
	return &Store{
		flights:  make(map[string]domain.Flight),
		bookings: make(map[string]domain.Booking),
	}
}

func (s *Store) ListFlights(ctx context.Context) ([]domain.Flight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Flight, 0, len(s.flights))
	for _, f := range s.flights {
		out = append(out, f)
	}
	slices.SortFunc(out, func(a, b domain.Flight) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

func (s *Store) GetFlight(ctx context.Context, id string) (*domain.Flight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.flights[id]
	if !ok {
		return nil, fmt.Errorf("flight %s: %w", id, domain.ErrNotFound)
	}
	return &f, nil
}

func (s *Store) GetFlightByNumber(ctx context.Context, number string) (*domain.Flight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.flights {
		if f.Number == number {
			return &f, nil
		}
	}
	return nil, fmt.Errorf("flight number %s: %w", number, domain.ErrNotFound)
}

func (s *Store) CreateFlight(ctx context.Context, spec domain.FlightSpec) (*domain.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.flights {
		if f.Number == spec.Number {
			return nil, fmt.Errorf("flight number %s already exists: %w", spec.Number, domain.ErrConflict)
		}
	}
	now := time.Now()
	f := domain.Flight{
		ID:               uuid.NewString(),
		Number:           spec.Number,
		From:             spec.From,
		To:               spec.To,
		DepartureTime:    spec.DepartureTime,
		ArrivalTime:      spec.ArrivalTime,
		Date:             spec.Date,
		BaggageAllowance: spec.BaggageAllowance,
		Price:            spec.Price,
		Gate:             spec.Gate,
		IsActive:         true,
		OccupiedSeats:    slices.Clone(spec.OccupiedSeats),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if f.OccupiedSeats == nil {
		f.OccupiedSeats = []string{}
	}
	s.flights[f.ID] = f
	return &f, nil
}

func (s *Store) UpdateFlight(ctx context.Context, id string, patch domain.FlightPatch) (*domain.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flights[id]
	if !ok {
		return nil, fmt.Errorf("flight %s: %w", id, domain.ErrNotFound)
	}
	if patch.Number != nil && *patch.Number != f.Number {
		for otherID, other := range s.flights {
			if otherID != id && other.Number == *patch.Number {
				return nil, fmt.Errorf("flight number %s already exists: %w", *patch.Number, domain.ErrConflict)
			}
		}
	}
	patch.Apply(&f)
	f.UpdatedAt = time.Now()
	s.flights[id] = f
	return &f, nil
}

func (s *Store) DeleteFlight(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.flights[id]; !ok {
		return fmt.Errorf("flight %s: %w", id, domain.ErrNotFound)
	}
	delete(s.flights, id)
	return nil
}

func (s *Store) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, s.joinFlight(b))
	}
	slices.SortFunc(out, func(a, b domain.Booking) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

func (s *Store) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
	}
	joined := s.joinFlight(b)
	return &joined, nil
}

func (s *Store) GetBookingByNumber(ctx context.Context, number string) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookings {
		if b.BookingNumber == number {
			joined := s.joinFlight(b)
			return &joined, nil
		}
	}
	return nil, fmt.Errorf("booking number %s: %w", number, domain.ErrNotFound)
}

func (s *Store) CreateBooking(ctx context.Context, booking domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	booking.ID = uuid.NewString()
	booking.Flight = nil
	booking.CreatedAt = now
	booking.UpdatedAt = now
	s.bookings[booking.ID] = booking
	return &booking, nil
}

func (s *Store) UpdateBookingStatus(ctx context.Context, id, status string) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
	}
	b.Status = status
	b.UpdatedAt = time.Now()
	s.bookings[id] = b
	joined := s.joinFlight(b)
	return &joined, nil
}

func (s *Store) ListBookingsByFlight(ctx context.Context, flightID string) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Booking, 0)
	for _, b := range s.bookings {
		if b.FlightID == flightID {
			out = append(out, s.joinFlight(b))
		}
	}
	slices.SortFunc(out, func(a, b domain.Booking) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

// joinFlight denormalizes the referenced flight when it still exists.
// Callers hold at least the read lock.
func (s *Store) joinFlight(b domain.Booking) domain.Booking {
	if f, ok := s.flights[b.FlightID]; ok {
		b.Flight = &f
	}
	return b
}

// Package redisstore backs the Qatar airport with Redis: records are
// JSON values, with set-based indexes for listing and lookup by number.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/Besher-Hamze/airport-management-system-backend/internal/domain"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func flightKey(id string) string { return "flight:" + id }

func flightNumberKey(number string) string { return "flight:number:" + number }

func bookingKey(id string) string { return "booking:" + id }

func bookingNumberKey(number string) string { return "booking:number:" + number }

func flightBookingsKey(flightID string) string { return "flight:" + flightID + ":bookings" }

const (
	flightIndex  = "flights"
	bookingIndex = "bookings"
)

func parseID(kind, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid %s id %s: %w", kind, id, domain.ErrInvalidInput)
	}
	return nil
}

func (s *Store) getFlight(ctx context.Context, id string) (*domain.Flight, error) {
	raw, err := s.client.Get(ctx, flightKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("flight %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var f domain.Flight
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		return nil, err
	}
	if f.OccupiedSeats == nil {
		f.OccupiedSeats = []string{}
	}
	return &f, nil
}

func (s *Store) putFlight(ctx context.Context, f *domain.Flight) error {
	raw, err := json.Marshal(f)
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, flightKey(f.ID), raw, 0)
	pipe.SAdd(ctx, flightIndex, f.ID)
	pipe.Set(ctx, flightNumberKey(f.Number), f.ID, 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) ListFlights(ctx context.Context) ([]domain.Flight, error) {
	ids, err := s.client.SMembers(ctx, flightIndex).Result()
	if err != nil {
		return nil, err
	}
	flights := make([]domain.Flight, 0, len(ids))
	for _, id := range ids {
		f, err := s.getFlight(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	slices.SortFunc(flights, func(a, b domain.Flight) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return flights, nil
}

func (s *Store) GetFlight(ctx context.Context, id string) (*domain.Flight, error) {
	if err := parseID("flight", id); err != nil {
		return nil, err
	}
	return s.getFlight(ctx, id)
}

func (s *Store) GetFlightByNumber(ctx context.Context, number string) (*domain.Flight, error) {
	id, err := s.client.Get(ctx, flightNumberKey(number)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("flight number %s: %w", number, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return s.getFlight(ctx, id)
}

func (s *Store) CreateFlight(ctx context.Context, spec domain.FlightSpec) (*domain.Flight, error) {
	now := time.Now()
	seats := spec.OccupiedSeats
	if seats == nil {
		seats = []string{}
	}
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
		OccupiedSeats:    seats,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	// SetNX on the number index is the uniqueness check.
	ok, err := s.client.SetNX(ctx, flightNumberKey(f.Number), f.ID, 0).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("flight number %s already exists: %w", f.Number, domain.ErrConflict)
	}

	if err := s.putFlight(ctx, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *Store) UpdateFlight(ctx context.Context, id string, patch domain.FlightPatch) (*domain.Flight, error) {
	current, err := s.GetFlight(ctx, id)
	if err != nil {
		return nil, err
	}

	oldNumber := current.Number
	if patch.Number != nil && *patch.Number != oldNumber {
		ok, err := s.client.SetNX(ctx, flightNumberKey(*patch.Number), id, 0).Result()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("flight number %s already exists: %w", *patch.Number, domain.ErrConflict)
		}
		s.client.Del(ctx, flightNumberKey(oldNumber))
	}

	patch.Apply(current)
	current.UpdatedAt = time.Now()
	if err := s.putFlight(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *Store) DeleteFlight(ctx context.Context, id string) error {
	flight, err := s.GetFlight(ctx, id)
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, flightKey(id))
	pipe.SRem(ctx, flightIndex, id)
	pipe.Del(ctx, flightNumberKey(flight.Number))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) getBooking(ctx context.Context, id string) (*domain.Booking, error) {
	raw, err := s.client.Get(ctx, bookingKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var b domain.Booking
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		return nil, err
	}
	s.attachFlight(ctx, &b)
	return &b, nil
}

func (s *Store) putBooking(ctx context.Context, b *domain.Booking) error {
	stored := *b
	stored.Flight = nil
	raw, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, bookingKey(b.ID), raw, 0)
	pipe.SAdd(ctx, bookingIndex, b.ID)
	pipe.Set(ctx, bookingNumberKey(b.BookingNumber), b.ID, 0)
	pipe.SAdd(ctx, flightBookingsKey(b.FlightID), b.ID)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	ids, err := s.client.SMembers(ctx, bookingIndex).Result()
	if err != nil {
		return nil, err
	}
	return s.collectBookings(ctx, ids)
}

func (s *Store) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	if err := parseID("booking", id); err != nil {
		return nil, err
	}
	return s.getBooking(ctx, id)
}

func (s *Store) GetBookingByNumber(ctx context.Context, number string) (*domain.Booking, error) {
	id, err := s.client.Get(ctx, bookingNumberKey(number)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("booking number %s: %w", number, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return s.getBooking(ctx, id)
}

func (s *Store) CreateBooking(ctx context.Context, booking domain.Booking) (*domain.Booking, error) {
	if err := parseID("flight", booking.FlightID); err != nil {
		return nil, err
	}
	now := time.Now()
	booking.ID = uuid.NewString()
	booking.Flight = nil
	booking.CreatedAt = now
	booking.UpdatedAt = now
	if err := s.putBooking(ctx, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *Store) UpdateBookingStatus(ctx context.Context, id, status string) (*domain.Booking, error) {
	if err := parseID("booking", id); err != nil {
		return nil, err
	}
	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	booking.Status = status
	booking.UpdatedAt = time.Now()
	if err := s.putBooking(ctx, booking); err != nil {
		return nil, err
	}
	s.attachFlight(ctx, booking)
	return booking, nil
}

func (s *Store) ListBookingsByFlight(ctx context.Context, flightID string) ([]domain.Booking, error) {
	if err := parseID("flight", flightID); err != nil {
		return nil, err
	}
	ids, err := s.client.SMembers(ctx, flightBookingsKey(flightID)).Result()
	if err != nil {
		return nil, err
	}
	return s.collectBookings(ctx, ids)
}

func (s *Store) collectBookings(ctx context.Context, ids []string) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0, len(ids))
	for _, id := range ids {
		b, err := s.getBooking(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	slices.SortFunc(bookings, func(a, b domain.Booking) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return bookings, nil
}

func (s *Store) attachFlight(ctx context.Context, booking *domain.Booking) {
	flight, err := s.getFlight(ctx, booking.FlightID)
	if err != nil {
		return
	}
	booking.Flight = flight
}

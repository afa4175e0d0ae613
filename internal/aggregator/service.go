package aggregator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Besher-Hamze/airport-management-system-backend/internal/domain"
	"github.com/Besher-Hamze/airport-management-system-backend/internal/observability"
	"golang.org/x/sync/errgroup"
)

// AirportAPI is the slice of the subsystem contract the aggregator
// consumes during fan-out.
type AirportAPI interface {
	ID() string
	GetAllFlights(ctx context.Context) ([]domain.Flight, error)
	GetAllBookings(ctx context.Context) ([]domain.Booking, error)
}

// Service fans out to the airport services and merges results for the
// cross-airport views. It holds no persistent state of its own; errors
// from any single airport fail the whole aggregate call.
type Service struct {
	catalog  []domain.Airport
	airports []AirportAPI
	logger   observability.Logger
}

func NewService(logger observability.Logger, airports ...AirportAPI) *Service {
	return &Service{
		catalog:  defaultCatalog,
		airports: airports,
		logger:   logger,
	}
}

func (s *Service) ListAirports() []domain.Airport {
	return s.catalog
}

// GetAirport returns nil for an unrecognized id; the HTTP layer turns
// that into a 404.
func (s *Service) GetAirport(id string) *domain.Airport {
	for i := range s.catalog {
		if s.catalog[i].ID == id {
			return &s.catalog[i]
		}
	}
	return nil
}

// flightsFanout fetches all flights from every airport concurrently,
// returning per-airport slices in registration order.
func (s *Service) flightsFanout(ctx context.Context) ([][]domain.Flight, error) {
	results := make([][]domain.Flight, len(s.airports))
	g, gctx := errgroup.WithContext(ctx)
	for i, ap := range s.airports {
		g.Go(func() error {
			flights, err := ap.GetAllFlights(gctx)
			if err != nil {
				return fmt.Errorf("%s: %w", ap.ID(), err)
			}
			results[i] = flights
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	timer := time.Now()
	defer func() {
		observability.FanoutDuration.WithLabelValues("dashboard").Observe(time.Since(timer).Seconds())
	}()

	flights := make([][]domain.Flight, len(s.airports))
	bookings := make([][]domain.Booking, len(s.airports))
	g, gctx := errgroup.WithContext(ctx)
	for i, ap := range s.airports {
		g.Go(func() error {
			fs, err := ap.GetAllFlights(gctx)
			if err != nil {
				return fmt.Errorf("%s: %w", ap.ID(), err)
			}
			flights[i] = fs
			return nil
		})
		g.Go(func() error {
			bs, err := ap.GetAllBookings(gctx)
			if err != nil {
				return fmt.Errorf("%s: %w", ap.ID(), err)
			}
			bookings[i] = bs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &domain.DashboardStats{
		FlightsByAirport:  make(map[string]int, len(s.airports)),
		BookingsByAirport: make(map[string]int, len(s.airports)),
	}
	for i, ap := range s.airports {
		stats.TotalFlights += len(flights[i])
		stats.TotalBookings += len(bookings[i])
		stats.FlightsByAirport[ap.ID()] = len(flights[i])
		stats.BookingsByAirport[ap.ID()] = len(bookings[i])
	}
	return stats, nil
}

// SearchFlights filters every airport's flights by the optional
// criteria: case-sensitive substring match on from and to, exact match
// on date. Results keep airport registration order.
func (s *Service) SearchFlights(ctx context.Context, from, to, date string) ([]domain.TaggedFlight, error) {
	timer := time.Now()
	defer func() {
		observability.FanoutDuration.WithLabelValues("search").Observe(time.Since(timer).Seconds())
	}()

	results, err := s.flightsFanout(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]domain.TaggedFlight, 0)
	for i, ap := range s.airports {
		for _, f := range results[i] {
			if from != "" && !strings.Contains(f.From, from) {
				continue
			}
			if to != "" && !strings.Contains(f.To, to) {
				continue
			}
			if date != "" && f.Date != date {
				continue
			}
			matched = append(matched, domain.TaggedFlight{Flight: f, Airport: ap.ID()})
		}
	}
	return matched, nil
}

// ListAllFlights returns every airport's flights keyed by airport id,
// each flight tagged with its origin.
func (s *Service) ListAllFlights(ctx context.Context) (map[string][]domain.TaggedFlight, error) {
	timer := time.Now()
	defer func() {
		observability.FanoutDuration.WithLabelValues("list_all").Observe(time.Since(timer).Seconds())
	}()

	results, err := s.flightsFanout(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]domain.TaggedFlight, len(s.airports))
	for i, ap := range s.airports {
		tagged := make([]domain.TaggedFlight, 0, len(results[i]))
		for _, f := range results[i] {
			tagged = append(tagged, domain.TaggedFlight{Flight: f, Airport: ap.ID()})
		}
		grouped[ap.ID()] = tagged
	}
	return grouped, nil
}

// FlightsFor dispatches to a single airport by id.
func (s *Service) FlightsFor(ctx context.Context, airportID string) ([]domain.Flight, error) {
	for _, ap := range s.airports {
		if ap.ID() == airportID {
			return ap.GetAllFlights(ctx)
		}
	}
	return nil, fmt.Errorf("airport %s: %w", airportID, domain.ErrUnknownAirport)
}

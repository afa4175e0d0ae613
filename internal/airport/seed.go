package airport

import (
	"context"

	"github.com/Besher-Hamze/airport-management-system-backend/internal/domain"
)

// seedSets holds the example flights inserted into an empty store at
// startup, keyed by airport id.
var seedSets = map[string][]domain.FlightSpec{
	"sham": {
		{
			Number:           "SHA101",
			From:             "دمشق",
			To:               "دبي",
			DepartureTime:    "09:30",
			ArrivalTime:      "11:45",
			BaggageAllowance: 30,
			Price:            350,
			Date:             "2025-03-10",
			Gate:             "A12",
		},
		{
			Number:           "SHA202",
			From:             "دمشق",
			To:               "القاهرة",
			DepartureTime:    "14:15",
			ArrivalTime:      "16:00",
			BaggageAllowance: 30,
			Price:            280,
			Date:             "2025-03-12",
			Gate:             "B05",
		},
		{
			Number:           "SHA303",
			From:             "دمشق",
			To:               "إسطنبول",
			DepartureTime:    "18:45",
			ArrivalTime:      "20:30",
			BaggageAllowance: 30,
			Price:            420,
			Date:             "2025-03-15",
			Gate:             "C08",
		},
	},
	"emirates": {
		{
			Number:           "EMA101",
			From:             "دبي",
			To:               "لندن",
			DepartureTime:    "09:30",
			ArrivalTime:      "13:45",
			BaggageAllowance: 35,
			Price:            650,
			Date:             "2025-03-10",
			Gate:             "A12",
		},
		{
			Number:           "EMA202",
			From:             "دبي",
			To:               "باريس",
			DepartureTime:    "14:15",
			ArrivalTime:      "18:30",
			BaggageAllowance: 30,
			Price:            580,
			Date:             "2025-03-12",
			Gate:             "B05",
		},
		{
			Number:           "EMA303",
			From:             "دبي",
			To:               "نيويورك",
			DepartureTime:    "20:45",
			ArrivalTime:      "06:30",
			BaggageAllowance: 40,
			Price:            980,
			Date:             "2025-03-15",
			Gate:             "C08",
		},
	},
	"qatar": {
		{
			Number:           "QTA101",
			From:             "الدوحة",
			To:               "نيويورك",
			DepartureTime:    "09:30",
			ArrivalTime:      "16:45",
			BaggageAllowance: 35,
			Price:            950,
			Date:             "2025-03-10",
			Gate:             "A12",
		},
		{
			Number:           "QTA202",
			From:             "الدوحة",
			To:               "لندن",
			DepartureTime:    "14:15",
			ArrivalTime:      "19:30",
			BaggageAllowance: 30,
			Price:            580,
			Date:             "2025-03-12",
			Gate:             "B05",
		},
		{
			Number:           "QTA303",
			From:             "الدوحة",
			To:               "سيدني",
			DepartureTime:    "21:45",
			ArrivalTime:      "17:30",
			BaggageAllowance: 40,
			Price:            1180,
			Date:             "2025-03-15",
			Gate:             "C08",
		},
	},
}

// SeedInitialFlights inserts the airport's example flights when its
// flight store is empty. Safe to call more than once: a non-empty store
// makes it a no-op.
func (s *Service) SeedInitialFlights(ctx context.Context) error {
	existing, err := s.flights.ListFlights(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, spec := range seedSets[s.id] {
		if _, err := s.CreateFlight(ctx, spec); err != nil {
			return err
		}
	}
	s.logger.WithField("flights", len(seedSets[s.id])).Info("seeded initial flights")
	return nil
}

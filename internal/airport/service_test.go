package airport_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Besher-Hamze/airport-management-system-backend/internal/adapters/memory"
	"github.com/Besher-Hamze/airport-management-system-backend/internal/airport"
	"github.com/Besher-Hamze/airport-management-system-backend/internal/domain"
	"github.com/Besher-Hamze/airport-management-system-backend/internal/observability"
)

func newTestService(opts ...airport.Option) (*airport.Service, *memory.Store) {
	store := memory.NewStore()
	svc := airport.NewService("sham", "SHA", store, store, observability.NewLogger(), opts...)
	return svc, store
}

func testFlightSpec(number string) domain.FlightSpec {
	return domain.FlightSpec{
		Number:           number,
		From:             "دمشق",
		To:               "دبي",
		DepartureTime:    "09:30",
		ArrivalTime:      "11:45",
		Date:             "2025-03-10",
		BaggageAllowance: 30,
		Price:            350,
		Gate:             "A12",
	}
}

func testBookingSpec(flightID, seat string) domain.BookingSpec {
	return domain.BookingSpec{
		FlightID:    flightID,
		FirstName:   "Omar",
		LastName:    "Haddad",
		Passport:    "N1234567",
		BirthDate:   "1990-05-14",
		Nationality: "SY",
		Phone:       "+963999000111",
		Email:       "omar@example.com",
		Seat:        seat,
	}
}

func TestCreateFlight_DuplicateNumber(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateFlight(ctx, testFlightSpec("SHA900"))
	require.NoError(t, err)

	_, err = svc.CreateFlight(ctx, testFlightSpec("SHA900"))
	assert.ErrorIs(t, err, domain.ErrConflict)

	flights, err := svc.GetAllFlights(ctx)
	require.NoError(t, err)
	assert.Len(t, flights, 1)
}

func TestUpdateFlight_NumberConflict(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateFlight(ctx, testFlightSpec("SHA900"))
	require.NoError(t, err)
	second, err := svc.CreateFlight(ctx, testFlightSpec("SHA901"))
	require.NoError(t, err)

	taken := "SHA900"
	_, err = svc.UpdateFlight(ctx, second.ID, domain.FlightPatch{Number: &taken})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Re-submitting the flight's own number is not a conflict.
	same := "SHA901"
	_, err = svc.UpdateFlight(ctx, second.ID, domain.FlightPatch{Number: &same})
	assert.NoError(t, err)
}

func TestCreateBooking_SeatTaken(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	flight, err := svc.CreateFlight(ctx, testFlightSpec("SHA900"))
	require.NoError(t, err)

	_, err = svc.CreateBooking(ctx, testBookingSpec(flight.ID, "12A"))
	require.NoError(t, err)

	_, err = svc.CreateBooking(ctx, testBookingSpec(flight.ID, "12A"))
	assert.ErrorIs(t, err, domain.ErrConflict)

	bookings, err := svc.GetAllBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)

	updated, err := svc.GetFlightByID(ctx, flight.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"12A"}, updated.OccupiedSeats)
}

func TestCreateBooking_FlightNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateBooking(context.Background(), testBookingSpec("no-such-flight", "12A"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingSeatRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	flight, err := svc.CreateFlight(ctx, testFlightSpec("SHA900"))
	require.NoError(t, err)

	booking, err := svc.CreateBooking(ctx, testBookingSpec(flight.ID, "7C"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, booking.Status)
	assert.True(t, strings.HasPrefix(booking.BookingNumber, "SHA-"))
	assert.Len(t, booking.BookingNumber, len("SHA-")+7)
	require.NotNil(t, booking.Flight)

	afterCreate, err := svc.GetFlightByID(ctx, flight.ID)
	require.NoError(t, err)
	assert.Contains(t, afterCreate.OccupiedSeats, "7C")

	require.NoError(t, svc.CancelBooking(ctx, booking.ID))

	afterCancel, err := svc.GetFlightByID(ctx, flight.ID)
	require.NoError(t, err)
	assert.NotContains(t, afterCancel.OccupiedSeats, "7C")

	cancelled, err := svc.GetBookingByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
}

func TestCancelBooking_FlightDeleted(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	flight, err := svc.CreateFlight(ctx, testFlightSpec("SHA900"))
	require.NoError(t, err)
	booking, err := svc.CreateBooking(ctx, testBookingSpec(flight.ID, "1A"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFlight(ctx, flight.ID))

	// The dangling flight reference is logged, not fatal.
	require.NoError(t, svc.CancelBooking(ctx, booking.ID))

	cancelled, err := svc.GetBookingByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
}

func TestUpdateBookingStatus(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	flight, err := svc.CreateFlight(ctx, testFlightSpec("SHA900"))
	require.NoError(t, err)
	booking, err := svc.CreateBooking(ctx, testBookingSpec(flight.ID, "1A"))
	require.NoError(t, err)

	updated, err := svc.UpdateBookingStatus(ctx, booking.ID, domain.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, updated.Status)

	_, err = svc.UpdateBookingStatus(ctx, booking.ID, "boarded")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.UpdateBookingStatus(ctx, "no-such-booking", domain.StatusPending)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetBookingsByFlight(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	flight, err := svc.CreateFlight(ctx, testFlightSpec("SHA900"))
	require.NoError(t, err)
	other, err := svc.CreateFlight(ctx, testFlightSpec("SHA901"))
	require.NoError(t, err)

	_, err = svc.CreateBooking(ctx, testBookingSpec(flight.ID, "1A"))
	require.NoError(t, err)
	_, err = svc.CreateBooking(ctx, testBookingSpec(flight.ID, "1B"))
	require.NoError(t, err)
	_, err = svc.CreateBooking(ctx, testBookingSpec(other.ID, "1A"))
	require.NoError(t, err)

	bookings, err := svc.GetBookingsByFlight(ctx, flight.ID)
	require.NoError(t, err)
	assert.Len(t, bookings, 2)
	for _, b := range bookings {
		require.NotNil(t, b.Flight)
		assert.Equal(t, flight.ID, b.Flight.ID)
	}
}

func TestGetBookingsByFlight_DeletedFlight(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	flight, err := svc.CreateFlight(ctx, testFlightSpec("SHA900"))
	require.NoError(t, err)
	_, err = svc.CreateBooking(ctx, testBookingSpec(flight.ID, "1A"))
	require.NoError(t, err)

	// Deleting a flight with live bookings is allowed; the flight guard
	// in GetBookingsByFlight then reports NotFound.
	require.NoError(t, svc.DeleteFlight(ctx, flight.ID))

	_, err = svc.GetBookingsByFlight(ctx, flight.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSeedInitialFlights_Idempotent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.SeedInitialFlights(ctx))
	require.NoError(t, svc.SeedInitialFlights(ctx))

	flights, err := svc.GetAllFlights(ctx)
	require.NoError(t, err)
	require.Len(t, flights, 3)

	numbers := make([]string, 0, len(flights))
	for _, f := range flights {
		numbers = append(numbers, f.Number)
		assert.Equal(t, "دمشق", f.From)
		assert.True(t, f.IsActive)
		assert.Empty(t, f.OccupiedSeats)
	}
	assert.ElementsMatch(t, []string{"SHA101", "SHA202", "SHA303"}, numbers)
}

func TestSeedInitialFlights_SkipsNonEmptyStore(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateFlight(ctx, testFlightSpec("SHA900"))
	require.NoError(t, err)

	require.NoError(t, svc.SeedInitialFlights(ctx))

	flights, err := svc.GetAllFlights(ctx)
	require.NoError(t, err)
	assert.Len(t, flights, 1)
}

type countingRecorder struct {
	created   int
	cancelled int
}

func (c *countingRecorder) BookingCreated(ctx context.Context, airportID string, booking domain.Booking) {
	c.created++
}

func (c *countingRecorder) BookingCancelled(ctx context.Context, airportID string, booking domain.Booking) {
	c.cancelled++
}

func TestRecorderObservesLifecycle(t *testing.T) {
	rec := &countingRecorder{}
	svc, _ := newTestService(airport.WithRecorder(rec))
	ctx := context.Background()

	flight, err := svc.CreateFlight(ctx, testFlightSpec("SHA900"))
	require.NoError(t, err)
	booking, err := svc.CreateBooking(ctx, testBookingSpec(flight.ID, "1A"))
	require.NoError(t, err)
	require.NoError(t, svc.CancelBooking(ctx, booking.ID))

	assert.Equal(t, 1, rec.created)
	assert.Equal(t, 1, rec.cancelled)
}

func TestDeleteFlight_NotFound(t *testing.T) {
	svc, _ := newTestService()

	err := svc.DeleteFlight(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

package redisstore_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Besher-Hamze/airport-management-system-backend/internal/adapters/redisstore"
	"github.com/Besher-Hamze/airport-management-system-backend/internal/domain"
)

func startRedis(t *testing.T, ctx context.Context) *redis.Client {
	t.Helper()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { container.Terminate(ctx) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatal(err)
	}
	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatal(err)
	}

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestStore_FlightCRUD(t *testing.T) {
	ctx := context.Background()
	client := startRedis(t, ctx)
	store := redisstore.NewStore(client)

	spec := domain.FlightSpec{
		Number: "QTA700", From: "الدوحة", To: "اسطنبول",
		DepartureTime: "11:00", ArrivalTime: "15:30",
		Date: "2025-05-05", BaggageAllowance: 40, Price: 720, Gate: "D21",
	}
	created, err := store.CreateFlight(ctx, spec)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err = store.CreateFlight(ctx, spec)
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected conflict on duplicate number, got %v", err)
	}

	fetched, err := store.GetFlight(ctx, created.ID)
	if err != nil || fetched.To != "اسطنبول" {
		t.Errorf("round trip mismatch: %v %v", fetched, err)
	}

	byNumber, err := store.GetFlightByNumber(ctx, "QTA700")
	if err != nil || byNumber.ID != created.ID {
		t.Errorf("lookup by number failed: %v %v", byNumber, err)
	}

	price := 680.0
	updated, err := store.UpdateFlight(ctx, created.ID, domain.FlightPatch{Price: &price})
	if err != nil || updated.Price != 680 {
		t.Errorf("patch not applied: %v %v", updated, err)
	}

	all, err := store.ListFlights(ctx)
	if err != nil || len(all) != 1 {
		t.Errorf("expected 1 flight, got %v %v", all, err)
	}

	if err := store.DeleteFlight(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := store.GetFlightByNumber(ctx, "QTA700"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected number index cleared after delete, got %v", err)
	}

	// Number becomes reusable once the flight is gone.
	if _, err := store.CreateFlight(ctx, spec); err != nil {
		t.Errorf("expected number reuse after delete, got %v", err)
	}
}

func TestStore_BookingCRUD(t *testing.T) {
	ctx := context.Background()
	client := startRedis(t, ctx)
	store := redisstore.NewStore(client)

	flight, err := store.CreateFlight(ctx, domain.FlightSpec{
		Number: "QTA701", From: "الدوحة", To: "لندن",
		DepartureTime: "23:45", ArrivalTime: "05:10",
		Date: "2025-05-06", BaggageAllowance: 35, Price: 940,
	})
	if err != nil {
		t.Fatal(err)
	}

	created, err := store.CreateBooking(ctx, domain.Booking{
		BookingNumber: "QTA-TEST001",
		FlightID:      flight.ID,
		FirstName:     "Sara",
		LastName:      "Mansour",
		Passport:      "Q9988776",
		BirthDate:     "1992-02-14",
		Nationality:   "QA",
		Phone:         "+97455001122",
		Email:         "sara@example.com",
		Seat:          "12F",
		Status:        domain.StatusConfirmed,
	})
	if err != nil {
		t.Fatal(err)
	}

	fetched, err := store.GetBooking(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if fetched.Flight == nil || fetched.Flight.Number != "QTA701" {
		t.Errorf("expected denormalized flight, got %+v", fetched.Flight)
	}

	byNumber, err := store.GetBookingByNumber(ctx, "QTA-TEST001")
	if err != nil || byNumber.ID != created.ID {
		t.Errorf("lookup by number failed: %v %v", byNumber, err)
	}

	updated, err := store.UpdateBookingStatus(ctx, created.ID, domain.StatusCancelled)
	if err != nil || updated.Status != domain.StatusCancelled {
		t.Errorf("status not updated: %v %v", updated, err)
	}

	byFlight, err := store.ListBookingsByFlight(ctx, flight.ID)
	if err != nil || len(byFlight) != 1 {
		t.Errorf("expected 1 booking for flight, got %v %v", byFlight, err)
	}

	if _, err := store.GetBooking(ctx, "missing-id"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected invalid input for malformed id, got %v", err)
	}
	if _, err := store.GetBooking(ctx, "0b2d7a64-95f2-4c0f-8a37-6f6f1f2d9c11"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found for absent id, got %v", err)
	}
}

package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Besher-Hamze/airport-management-system-backend/internal/adapters/postgres"
	"github.com/Besher-Hamze/airport-management-system-backend/internal/domain"
)

func startPostgres(t *testing.T, ctx context.Context) *pgxpool.Pool {
	t.Helper()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image: "postgres:16-alpine",
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "emirates_airport",
			},
			ExposedPorts: []string{"5432/tcp"},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(time.Minute),
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
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatal(err)
	}

	dsn := fmt.Sprintf("postgres://postgres:postgres@%s:%s/emirates_airport?sslmode=disable", host, port.Port())
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func TestStore_FlightCRUD(t *testing.T) {
	ctx := context.Background()
	pool := startPostgres(t, ctx)

	store := postgres.NewStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatal(err)
	}

	spec := domain.FlightSpec{
		Number: "EMA900", From: "دبي", To: "لندن",
		DepartureTime: "09:30", ArrivalTime: "13:45",
		Date: "2025-03-10", BaggageAllowance: 35, Price: 650, Gate: "A12",
	}
	created, err := store.CreateFlight(ctx, spec)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !created.IsActive || len(created.OccupiedSeats) != 0 {
		t.Errorf("unexpected defaults: %+v", created)
	}

	_, err = store.CreateFlight(ctx, spec)
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected conflict on duplicate number, got %v", err)
	}

	fetched, err := store.GetFlight(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if fetched.Number != "EMA900" || fetched.From != "دبي" {
		t.Errorf("round trip mismatch: %+v", fetched)
	}

	byNumber, err := store.GetFlightByNumber(ctx, "EMA900")
	if err != nil || byNumber.ID != created.ID {
		t.Errorf("lookup by number failed: %v %v", byNumber, err)
	}

	_, err = store.GetFlight(ctx, "not-a-uuid")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected invalid input for malformed id, got %v", err)
	}

	seats := []string{"1A", "1B"}
	gate := "C03"
	updated, err := store.UpdateFlight(ctx, created.ID, domain.FlightPatch{Gate: &gate, OccupiedSeats: &seats})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Gate != "C03" || len(updated.OccupiedSeats) != 2 {
		t.Errorf("patch not applied: %+v", updated)
	}
	if updated.Number != "EMA900" {
		t.Errorf("unpatched field changed: %+v", updated)
	}

	if err := store.DeleteFlight(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteFlight(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found on second delete, got %v", err)
	}
}

func TestStore_BookingCRUD(t *testing.T) {
	ctx := context.Background()
	pool := startPostgres(t, ctx)

	store := postgres.NewStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatal(err)
	}

	flight, err := store.CreateFlight(ctx, domain.FlightSpec{
		Number: "EMA901", From: "دبي", To: "باريس",
		DepartureTime: "14:15", ArrivalTime: "18:30",
		Date: "2025-03-12", BaggageAllowance: 30, Price: 580,
	})
	if err != nil {
		t.Fatal(err)
	}

	booking := domain.Booking{
		BookingNumber: "EMA-TEST001",
		FlightID:      flight.ID,
		FirstName:     "Lina",
		LastName:      "Aziz",
		Passport:      "E1112223",
		BirthDate:     "1995-07-21",
		Nationality:   "AE",
		Phone:         "+971500011122",
		Email:         "lina@example.com",
		Seat:          "2C",
		Status:        domain.StatusConfirmed,
	}
	created, err := store.CreateBooking(ctx, booking)
	if err != nil {
		t.Fatal(err)
	}

	fetched, err := store.GetBooking(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if fetched.Flight == nil || fetched.Flight.ID != flight.ID {
		t.Errorf("expected denormalized flight, got %+v", fetched.Flight)
	}

	byNumber, err := store.GetBookingByNumber(ctx, "EMA-TEST001")
	if err != nil || byNumber.ID != created.ID {
		t.Errorf("lookup by number failed: %v %v", byNumber, err)
	}

	updated, err := store.UpdateBookingStatus(ctx, created.ID, domain.StatusCancelled)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != domain.StatusCancelled {
		t.Errorf("status not updated: %+v", updated)
	}

	byFlight, err := store.ListBookingsByFlight(ctx, flight.ID)
	if err != nil || len(byFlight) != 1 {
		t.Errorf("expected 1 booking for flight, got %v %v", byFlight, err)
	}

	// Deleting the flight leaves the booking behind with a nil join.
	if err := store.DeleteFlight(ctx, flight.ID); err != nil {
		t.Fatal(err)
	}
	orphan, err := store.GetBooking(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if orphan.Flight != nil {
		t.Errorf("expected nil flight after delete, got %+v", orphan.Flight)
	}
}

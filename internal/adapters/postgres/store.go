package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Besher-Hamze/airport-management-system-backend/internal/domain"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

// Store backs the Emirates airport with PostgreSQL. Flight and booking
// ids are UUID strings; a string that does not parse surfaces as
// domain.ErrInvalidInput.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the tables when they do not exist yet. The
// unique index on flights.number backs the duplicate-number conflict.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS flights (
			id UUID PRIMARY KEY,
			number TEXT NOT NULL UNIQUE,
			from_location TEXT NOT NULL,
			to_location TEXT NOT NULL,
			departure_time TEXT NOT NULL,
			arrival_time TEXT NOT NULL,
			date TEXT NOT NULL,
			baggage_allowance INT NOT NULL,
			price NUMERIC(10,2) NOT NULL,
			gate TEXT,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			occupied_seats TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS bookings (
			id UUID PRIMARY KEY,
			booking_number TEXT NOT NULL UNIQUE,
			flight_id UUID NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			passport TEXT NOT NULL,
			birth_date TEXT NOT NULL,
			nationality TEXT NOT NULL,
			phone TEXT NOT NULL,
			email TEXT NOT NULL,
			seat TEXT NOT NULL,
			status TEXT NOT NULL,
			passport_file TEXT,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
	`)
	return err
}

const flightColumns = `id, number, from_location, to_location, departure_time, arrival_time, date, baggage_allowance, price, gate, is_active, occupied_seats, created_at, updated_at`

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	var gate *string
	err := row.Scan(&f.ID, &f.Number, &f.From, &f.To, &f.DepartureTime, &f.ArrivalTime, &f.Date,
		&f.BaggageAllowance, &f.Price, &gate, &f.IsActive, &f.OccupiedSeats, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if gate != nil {
		f.Gate = *gate
	}
	if f.OccupiedSeats == nil {
		f.OccupiedSeats = []string{}
	}
	return &f, nil
}

func parseID(kind, id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("invalid %s id %s: %w", kind, id, domain.ErrInvalidInput)
	}
	return parsed, nil
}

func (s *Store) ListFlights(ctx context.Context) ([]domain.Flight, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (s *Store) GetFlight(ctx context.Context, id string) (*domain.Flight, error) {
	fid, err := parseID("flight", id)
	if err != nil {
		return nil, err
	}
	f, err := scanFlight(s.pool.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id = $1`, fid))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("flight %s: %w", id, domain.ErrNotFound)
	}
	return f, err
}

func (s *Store) GetFlightByNumber(ctx context.Context, number string) (*domain.Flight, error) {
	f, err := scanFlight(s.pool.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE number = $1`, number))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("flight number %s: %w", number, domain.ErrNotFound)
	}
	return f, err
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
	_, err := s.pool.Exec(ctx, `
		INSERT INTO flights (`+flightColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, f.ID, f.Number, f.From, f.To, f.DepartureTime, f.ArrivalTime, f.Date,
		f.BaggageAllowance, f.Price, f.Gate, f.IsActive, f.OccupiedSeats, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("flight number %s already exists: %w", spec.Number, domain.ErrConflict)
		}
		return nil, err
	}
	return &f, nil
}

func (s *Store) UpdateFlight(ctx context.Context, id string, patch domain.FlightPatch) (*domain.Flight, error) {
	current, err := s.GetFlight(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(current)
	current.UpdatedAt = time.Now()

	_, err = s.pool.Exec(ctx, `
		UPDATE flights SET number = $2, from_location = $3, to_location = $4,
			departure_time = $5, arrival_time = $6, date = $7, baggage_allowance = $8,
			price = $9, gate = $10, is_active = $11, occupied_seats = $12, updated_at = $13
		WHERE id = $1
	`, current.ID, current.Number, current.From, current.To, current.DepartureTime,
		current.ArrivalTime, current.Date, current.BaggageAllowance, current.Price,
		current.Gate, current.IsActive, current.OccupiedSeats, current.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("flight number %s already exists: %w", current.Number, domain.ErrConflict)
		}
		return nil, err
	}
	return current, nil
}

func (s *Store) DeleteFlight(ctx context.Context, id string) error {
	fid, err := parseID("flight", id)
	if err != nil {
		return err
	}
	res, err := s.pool.Exec(ctx, `DELETE FROM flights WHERE id = $1`, fid)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("flight %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

const bookingColumns = `id, booking_number, flight_id, first_name, last_name, passport, birth_date, nationality, phone, email, seat, status, passport_file, created_at, updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	var passportFile *string
	err := row.Scan(&b.ID, &b.BookingNumber, &b.FlightID, &b.FirstName, &b.LastName,
		&b.Passport, &b.BirthDate, &b.Nationality, &b.Phone, &b.Email, &b.Seat,
		&b.Status, &passportFile, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if passportFile != nil {
		b.PassportFile = *passportFile
	}
	return &b, nil
}

func (s *Store) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.collectBookings(ctx, rows)
}

func (s *Store) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	bid, err := parseID("booking", id)
	if err != nil {
		return nil, err
	}
	b, err := scanBooking(s.pool.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, bid))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	s.attachFlight(ctx, b)
	return b, nil
}

func (s *Store) GetBookingByNumber(ctx context.Context, number string) (*domain.Booking, error) {
	b, err := scanBooking(s.pool.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE booking_number = $1`, number))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("booking number %s: %w", number, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	s.attachFlight(ctx, b)
	return b, nil
}

func (s *Store) CreateBooking(ctx context.Context, booking domain.Booking) (*domain.Booking, error) {
	if _, err := parseID("flight", booking.FlightID); err != nil {
		return nil, err
	}
	now := time.Now()
	booking.ID = uuid.NewString()
	booking.Flight = nil
	booking.CreatedAt = now
	booking.UpdatedAt = now

	_, err := s.pool.Exec(ctx, `
		INSERT INTO bookings (`+bookingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, booking.ID, booking.BookingNumber, booking.FlightID, booking.FirstName, booking.LastName,
		booking.Passport, booking.BirthDate, booking.Nationality, booking.Phone, booking.Email,
		booking.Seat, booking.Status, booking.PassportFile, booking.CreatedAt, booking.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("booking number %s already exists: %w", booking.BookingNumber, domain.ErrConflict)
		}
		return nil, err
	}
	return &booking, nil
}

func (s *Store) UpdateBookingStatus(ctx context.Context, id, status string) (*domain.Booking, error) {
	bid, err := parseID("booking", id)
	if err != nil {
		return nil, err
	}
	res, err := s.pool.Exec(ctx, `UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1`, bid, status, time.Now())
	if err != nil {
		return nil, err
	}
	if res.RowsAffected() == 0 {
		return nil, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
	}
	return s.GetBooking(ctx, id)
}

func (s *Store) ListBookingsByFlight(ctx context.Context, flightID string) ([]domain.Booking, error) {
	fid, err := parseID("flight", flightID)
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE flight_id = $1 ORDER BY created_at`, fid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.collectBookings(ctx, rows)
}

func (s *Store) collectBookings(ctx context.Context, rows pgx.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range bookings {
		s.attachFlight(ctx, &bookings[i])
	}
	return bookings, nil
}

// attachFlight denormalizes the referenced flight; bookings whose
// flight was deleted keep a nil Flight.
func (s *Store) attachFlight(ctx context.Context, booking *domain.Booking) {
	flight, err := s.GetFlight(ctx, booking.FlightID)
	if err != nil {
		return
	}
	booking.Flight = flight
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

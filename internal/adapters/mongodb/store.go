package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/Besher-Hamze/airport-management-system-backend/internal/domain"
	"github.com/Besher-Hamze/airport-management-system-backend/internal/observability"
	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store backs the Sham airport with MongoDB. Flight ids are ObjectID
// hex strings; a hex string that does not parse surfaces as
// domain.ErrInvalidInput.
type Store struct {
	flights  *mongo.Collection
	bookings *mongo.Collection
	logger   observability.Logger
}

func NewStore(db *mongo.Database, logger observability.Logger) *Store {
	return &Store{
		flights:  db.Collection("flights"),
		bookings: db.Collection("bookings"),
		logger:   logger,
	}
}

type flightDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Number           string             `bson:"number"`
	From             string             `bson:"from"`
	To               string             `bson:"to"`
	DepartureTime    string             `bson:"departureTime"`
	ArrivalTime      string             `bson:"arrivalTime"`
	Date             string             `bson:"date"`
	BaggageAllowance int                `bson:"baggageAllowance"`
	Price            float64            `bson:"price"`
	Gate             string             `bson:"gate,omitempty"`
	IsActive         bool               `bson:"isActive"`
	OccupiedSeats    []string           `bson:"occupiedSeats"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}

func (d flightDoc) toDomain() domain.Flight {
	seats := d.OccupiedSeats
	if seats == nil {
		seats = []string{}
	}
	return domain.Flight{
		ID:               d.ID.Hex(),
		Number:           d.Number,
		From:             d.From,
		To:               d.To,
		DepartureTime:    d.DepartureTime,
		ArrivalTime:      d.ArrivalTime,
		Date:             d.Date,
		BaggageAllowance: d.BaggageAllowance,
		Price:            d.Price,
		Gate:             d.Gate,
		IsActive:         d.IsActive,
		OccupiedSeats:    seats,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

type bookingDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	BookingNumber string             `bson:"bookingNumber"`
	Flight        primitive.ObjectID `bson:"flight"`
	FirstName     string             `bson:"firstName"`
	LastName      string             `bson:"lastName"`
	Passport      string             `bson:"passport"`
	BirthDate     string             `bson:"birthDate"`
	Nationality   string             `bson:"nationality"`
	Phone         string             `bson:"phone"`
	Email         string             `bson:"email"`
	Seat          string             `bson:"seat"`
	Status        string             `bson:"status"`
	PassportFile  string             `bson:"passportFile,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func (d bookingDoc) toDomain() domain.Booking {
	return domain.Booking{
		ID:            d.ID.Hex(),
		BookingNumber: d.BookingNumber,
		FlightID:      d.Flight.Hex(),
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		Passport:      d.Passport,
		BirthDate:     d.BirthDate,
		Nationality:   d.Nationality,
		Phone:         d.Phone,
		Email:         d.Email,
		Seat:          d.Seat,
		Status:        d.Status,
		PassportFile:  d.PassportFile,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func parseID(kind, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid %s id %s: %w", kind, id, domain.ErrInvalidInput)
	}
	return oid, nil
}

func (s *Store) ListFlights(ctx context.Context) ([]domain.Flight, error) {
	cur, err := s.flights.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	flights := make([]domain.Flight, 0)
	for cur.Next(ctx) {
		var doc flightDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		flights = append(flights, doc.toDomain())
	}
	return flights, cur.Err()
}

func (s *Store) GetFlight(ctx context.Context, id string) (*domain.Flight, error) {
	oid, err := parseID("flight", id)
	if err != nil {
		return nil, err
	}
	var doc flightDoc
	err = s.flights.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("flight %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	flight := doc.toDomain()
	return &flight, nil
}

func (s *Store) GetFlightByNumber(ctx context.Context, number string) (*domain.Flight, error) {
	var doc flightDoc
	err := s.flights.FindOne(ctx, bson.M{"number": number}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("flight number %s: %w", number, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	flight := doc.toDomain()
	return &flight, nil
}

func (s *Store) CreateFlight(ctx context.Context, spec domain.FlightSpec) (*domain.Flight, error) {
	count, err := s.flights.CountDocuments(ctx, bson.M{"number": spec.Number})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("flight number %s already exists: %w", spec.Number, domain.ErrConflict)
	}

	now := time.Now()
	seats := spec.OccupiedSeats
	if seats == nil {
		seats = []string{}
	}
	doc := flightDoc{
		ID:               primitive.NewObjectID(),
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
	if _, err := s.flights.InsertOne(ctx, doc); err != nil {
		s.logger.WithError(err).Error("failed to insert flight")
		return nil, err
	}
	flight := doc.toDomain()
	return &flight, nil
}

func (s *Store) UpdateFlight(ctx context.Context, id string, patch domain.FlightPatch) (*domain.Flight, error) {
	oid, err := parseID("flight", id)
	if err != nil {
		return nil, err
	}

	current, err := s.GetFlight(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Number != nil && *patch.Number != current.Number {
		count, err := s.flights.CountDocuments(ctx, bson.M{"number": *patch.Number, "_id": bson.M{"$ne": oid}})
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, fmt.Errorf("flight number %s already exists: %w", *patch.Number, domain.ErrConflict)
		}
	}

	patch.Apply(current)
	current.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"number":           current.Number,
		"from":             current.From,
		"to":               current.To,
		"departureTime":    current.DepartureTime,
		"arrivalTime":      current.ArrivalTime,
		"date":             current.Date,
		"baggageAllowance": current.BaggageAllowance,
		"price":            current.Price,
		"gate":             current.Gate,
		"isActive":         current.IsActive,
		"occupiedSeats":    current.OccupiedSeats,
		"updatedAt":        current.UpdatedAt,
	}}
	if _, err := s.flights.UpdateByID(ctx, oid, update); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *Store) DeleteFlight(ctx context.Context, id string) error {
	oid, err := parseID("flight", id)
	if err != nil {
		return err
	}
	res, err := s.flights.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("flight %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (s *Store) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.findBookings(ctx, bson.M{})
}

func (s *Store) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	oid, err := parseID("booking", id)
	if err != nil {
		return nil, err
	}
	var doc bookingDoc
	err = s.bookings.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	booking := doc.toDomain()
	s.attachFlight(ctx, &booking)
	return &booking, nil
}

func (s *Store) GetBookingByNumber(ctx context.Context, number string) (*domain.Booking, error) {
	var doc bookingDoc
	err := s.bookings.FindOne(ctx, bson.M{"bookingNumber": number}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("booking number %s: %w", number, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	booking := doc.toDomain()
	s.attachFlight(ctx, &booking)
	return &booking, nil
}

func (s *Store) CreateBooking(ctx context.Context, booking domain.Booking) (*domain.Booking, error) {
	flightOID, err := parseID("flight", booking.FlightID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	doc := bookingDoc{
		ID:            primitive.NewObjectID(),
		BookingNumber: booking.BookingNumber,
		Flight:        flightOID,
		FirstName:     booking.FirstName,
		LastName:      booking.LastName,
		Passport:      booking.Passport,
		BirthDate:     booking.BirthDate,
		Nationality:   booking.Nationality,
		Phone:         booking.Phone,
		Email:         booking.Email,
		Seat:          booking.Seat,
		Status:        booking.Status,
		PassportFile:  booking.PassportFile,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := s.bookings.InsertOne(ctx, doc); err != nil {
		s.logger.WithError(err).Error("failed to insert booking")
		return nil, err
	}
	created := doc.toDomain()
	return &created, nil
}

func (s *Store) UpdateBookingStatus(ctx context.Context, id, status string) (*domain.Booking, error) {
	oid, err := parseID("booking", id)
	if err != nil {
		return nil, err
	}
	res, err := s.bookings.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
	}
	return s.GetBooking(ctx, id)
}

func (s *Store) ListBookingsByFlight(ctx context.Context, flightID string) ([]domain.Booking, error) {
	oid, err := parseID("flight", flightID)
	if err != nil {
		return nil, err
	}
	return s.findBookings(ctx, bson.M{"flight": oid})
}

func (s *Store) findBookings(ctx context.Context, filter bson.M) ([]domain.Booking, error) {
	cur, err := s.bookings.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	bookings := make([]domain.Booking, 0)
	for cur.Next(ctx) {
		var doc bookingDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		bookings = append(bookings, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	for i := range bookings {
		s.attachFlight(ctx, &bookings[i])
	}
	return bookings, nil
}

// attachFlight denormalizes the referenced flight; a booking whose
// flight was deleted keeps a nil Flight.
func (s *Store) attachFlight(ctx context.Context, booking *domain.Booking) {
	flight, err := s.GetFlight(ctx, booking.FlightID)
	if err != nil {
		return
	}
	booking.Flight = flight
}

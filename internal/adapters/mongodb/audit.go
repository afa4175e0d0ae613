package mongodb

import (
	"context"
	"time"

	"github.com/Besher-Hamze/airport-management-system-backend/internal/domain"
	"github.com/Besher-Hamze/airport-management-system-backend/internal/observability"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AuditTrail records booking lifecycle events in a capped-style
// collection, one document per create or cancel.
type AuditTrail struct {
	coll   *mongo.Collection
	logger observability.Logger
}

func NewAuditTrail(db *mongo.Database, logger observability.Logger) *AuditTrail {
	return &AuditTrail{
		coll:   db.Collection("booking_audit"),
		logger: logger,
	}
}

type auditRecord struct {
	ID            uuid.UUID `bson:"_id"`
	Action        string    `bson:"action"`
	Airport       string    `bson:"airport"`
	BookingNumber string    `bson:"booking_number"`
	Timestamp     time.Time `bson:"timestamp"`
	Data          bson.M    `bson:"data"`
}

func (a *AuditTrail) log(ctx context.Context, action, airportID string, booking domain.Booking) {
	rec := auditRecord{
		ID:            uuid.New(),
		Action:        action,
		Airport:       airportID,
		BookingNumber: booking.BookingNumber,
		Timestamp:     time.Now(),
		Data: bson.M{
			"flight_id": booking.FlightID,
			"seat":      booking.Seat,
			"status":    booking.Status,
		},
	}
	if _, err := a.coll.InsertOne(ctx, rec); err != nil {
		a.logger.WithError(err).Error("failed to insert booking audit record")
	}
}

func (a *AuditTrail) BookingCreated(ctx context.Context, airportID string, booking domain.Booking) {
	a.log(ctx, "booking.created", airportID, booking)
}

func (a *AuditTrail) BookingCancelled(ctx context.Context, airportID string, booking domain.Booking) {
	a.log(ctx, "booking.cancelled", airportID, booking)
}

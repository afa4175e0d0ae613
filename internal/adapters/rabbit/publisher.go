package rabbit

import (
	"context"
	"encoding/json"

	"github.com/Besher-Hamze/airport-management-system-backend/internal/domain"
	"github.com/Besher-Hamze/airport-management-system-backend/internal/observability"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher emits booking lifecycle events on a topic exchange with
// routing keys of the form {airport}.booking.{created|cancelled}.
// Publish failures are logged, never propagated to the caller.
type Publisher struct {
	ch     *amqp.Channel
	logger observability.Logger
}

func NewPublisher(conn *amqp.Connection, logger observability.Logger) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	err = ch.ExchangeDeclare("airport.events", "topic", true, false, false, false, nil)
	if err != nil {
		return nil, err
	}
	return &Publisher{ch: ch, logger: logger}, nil
}

func (p *Publisher) publish(ctx context.Context, key string, booking domain.Booking) {
	payload, _ := json.Marshal(map[string]interface{}{
		"bookingNumber": booking.BookingNumber,
		"flightId":      booking.FlightID,
		"seat":          booking.Seat,
		"status":        booking.Status,
	})
	msg := amqp.Publishing{
		MessageId:   uuid.New().String(),
		ContentType: "application/json",
		Body:        payload,
	}
	if err := p.ch.PublishWithContext(ctx, "airport.events", key, false, false, msg); err != nil {
		p.logger.WithError(err).WithField("routingKey", key).Error("failed to publish booking event")
	}
}

func (p *Publisher) BookingCreated(ctx context.Context, airportID string, booking domain.Booking) {
	p.publish(ctx, airportID+".booking.created", booking)
}

func (p *Publisher) BookingCancelled(ctx context.Context, airportID string, booking domain.Booking) {
	p.publish(ctx, airportID+".booking.cancelled", booking)
}

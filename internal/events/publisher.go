package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/campushub/campus-services-backend/internal/reservation"
)

const DefaultQueue = "reservation.events"

type EventType string

const (
	EventReservationCreated       EventType = "ReservationCreated"
	EventReservationStatusChanged EventType = "ReservationStatusChanged"
)

// Envelope wraps every published event.
type Envelope struct {
	Type       EventType       `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

type ReservationPayload struct {
	ID           string `json:"id"`
	ResourceKind string `json:"resource_kind"`
	ResourceID   string `json:"resource_id"`
	RequesterID  string `json:"requester_id"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Status       string `json:"status"`
}

type StatusChangedPayload struct {
	ReservationPayload
	PreviousStatus string `json:"previous_status"`
}

// Publisher pushes reservation events onto a durable RabbitMQ queue for
// downstream consumers (mailers, dashboards). It satisfies
// reservation.Notifier.
type Publisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

func NewPublisher(url, queue string) (*Publisher, error) {
	if queue == "" {
		queue = DefaultQueue
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &Publisher{conn: conn, ch: ch, queue: queue}, nil
}

func (p *Publisher) Close() error {
	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}

func (p *Publisher) publish(ctx context.Context, eventType EventType, payload any) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	body, err := json.Marshal(Envelope{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payloadBytes,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	err = p.ch.PublishWithContext(
		ctx,
		"",
		p.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

func newReservationPayload(r *reservation.Reservation) ReservationPayload {
	return ReservationPayload{
		ID:           r.ID,
		ResourceKind: string(r.ResourceKind),
		ResourceID:   r.ResourceID,
		RequesterID:  r.RequesterID,
		Date:         r.Date,
		StartTime:    r.Start.String(),
		EndTime:      r.End.String(),
		Status:       string(r.Status),
	}
}

func (p *Publisher) ReservationCreated(ctx context.Context, r *reservation.Reservation) error {
	return p.publish(ctx, EventReservationCreated, newReservationPayload(r))
}

func (p *Publisher) ReservationStatusChanged(ctx context.Context, r *reservation.Reservation, previous reservation.Status) error {
	return p.publish(ctx, EventReservationStatusChanged, StatusChangedPayload{
		ReservationPayload: newReservationPayload(r),
		PreviousStatus:     string(previous),
	})
}

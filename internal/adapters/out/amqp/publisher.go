// Package amqp implements the event publisher port on RabbitMQ. Events go to
// a durable topic exchange with routing keys like "order.placed", so
// notification consumers bind to the slices they care about.
package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	exchangeName = "marketplace.events"

	routingKeyOrderPlaced        = "order.placed"
	routingKeyOrderStatusChanged = "order.status_changed"
	routingKeyGuestMigrated      = "session.guest_migrated"
)

// Publisher delivers domain events to a RabbitMQ topic exchange.
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher dials the broker, opens a channel and declares the durable
// events exchange.
func NewPublisher(url string) (*Publisher, error) {
	if url == "" {
		return nil, errs.NewValueIsRequiredError("url")
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errs.NewServiceUnavailableErrorWithCause("rabbitmq", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.NewServiceUnavailableErrorWithCause("rabbitmq", err)
	}

	if err = ch.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.NewServiceUnavailableErrorWithCause("rabbitmq", err)
	}

	return &Publisher{conn: conn, ch: ch}, nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// PublishOrderPlaced emits an order placement event.
func (p *Publisher) PublishOrderPlaced(ctx context.Context, event ports.OrderPlacedEvent) error {
	return p.publish(ctx, routingKeyOrderPlaced, event)
}

// PublishOrderStatusChanged emits a fulfillment transition event.
func (p *Publisher) PublishOrderStatusChanged(ctx context.Context, event ports.OrderStatusChangedEvent) error {
	return p.publish(ctx, routingKeyOrderStatusChanged, event)
}

// PublishGuestMigrated emits a guest-to-user migration event.
func (p *Publisher) PublishGuestMigrated(ctx context.Context, event ports.GuestMigratedEvent) error {
	return p.publish(ctx, routingKeyGuestMigrated, event)
}

func (p *Publisher) publish(ctx context.Context, key string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", key, err)
	}

	err = p.ch.PublishWithContext(ctx, exchangeName, key, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return errs.NewServiceUnavailableErrorWithCause("rabbitmq", err)
	}

	return nil
}

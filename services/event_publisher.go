package services

import (
	"context"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/yeremiapane/restaurant-reservations/models"
)

const eventsQueue = "reservations.events"

// EventPublisher hands committed outbox events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event models.ReservationEvent) error
	Close() error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, models.ReservationEvent) error { return nil }
func (NopPublisher) Close() error                                         { return nil }

// AMQPPublisher sends events to a durable RabbitMQ queue as persistent JSON
// messages over one long-lived connection. The connection is opened on first
// use and reopened after a failed publish.
type AMQPPublisher struct {
	url string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewEventPublisher returns an AMQP publisher, or a no-op one when url is empty.
func NewEventPublisher(url string) EventPublisher {
	if url == "" {
		return NopPublisher{}
	}
	return &AMQPPublisher{url: url}
}

func (p *AMQPPublisher) Publish(ctx context.Context, event models.ReservationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx, "", eventsQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.EventID,
		Type:         event.EventType,
		Timestamp:    time.Now().UTC(),
		Body:         event.Payload,
	})
	if err != nil {
		p.reset()
	}
	return err
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var err error
	if p.ch != nil {
		err = p.ch.Close()
	}
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	p.ch, p.conn = nil, nil
	if err == amqp.ErrClosed {
		return nil
	}
	return err
}

// channel must be called with p.mu held.
func (p *AMQPPublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(eventsQueue, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, err
	}

	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *AMQPPublisher) reset() {
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn, p.ch = nil, nil
}

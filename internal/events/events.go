package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// Event types published by the API.
const (
	UserRegistered     = "user.registered"
	OrderCreated       = "order.created"
	OrderStatusChanged = "order.status_changed"
	BookingCreated     = "booking.created"
)

// Event is a domain notification. Key selects the partition.
type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	Key        string    `json:"-"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// New builds an event stamped with a fresh id and the current time.
func New(eventType, key string, payload any) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		Key:        key,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Publisher delivers events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
	Close() error
}

// messageWriter is the subset of *kafka.Writer used by the publisher.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	writer messageWriter
	topic  string
	closed atomic.Bool
	logger zerolog.Logger
}

// NewKafkaPublisher creates a publisher writing JSON events to topic. Writes
// are batched in the background and delivery failures are logged.
func NewKafkaPublisher(brokers []string, topic string, logger zerolog.Logger) Publisher {
	p := newKafkaPublisher(nil, topic, logger)
	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		MaxAttempts:  3,
		Async:        true,
		Completion:   p.delivered,
	}
	return p
}

func newKafkaPublisher(writer messageWriter, topic string, logger zerolog.Logger) *kafkaPublisher {
	return &kafkaPublisher{
		writer: writer,
		topic:  topic,
		logger: logger.With().Str("component", "events").Str("topic", topic).Logger(),
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, events ...Event) error {
	if p.closed.Load() {
		return fmt.Errorf("publisher is closed")
	}
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, len(events))
	for i, evt := range events {
		value, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("failed to encode %s event: %w", evt.Type, err)
		}
		msgs[i] = kafka.Message{
			Key:   []byte(evt.Key),
			Value: value,
			Headers: []kafka.Header{
				{Key: "event-type", Value: []byte(evt.Type)},
			},
			Time: evt.OccurredAt,
		}
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("failed to write events to %s: %w", p.topic, err)
	}

	p.logger.Debug().Int("count", len(events)).Str("type", events[0].Type).Msg("events published")
	return nil
}

// delivered is called by an async writer once a batch is written or given up on.
func (p *kafkaPublisher) delivered(msgs []kafka.Message, err error) {
	if err != nil {
		p.logger.Warn().Err(err).Int("count", len(msgs)).Msg("failed to deliver events")
	}
}

func (p *kafkaPublisher) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}

type nopPublisher struct{}

// NewNopPublisher returns a Publisher that drops every event.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, ...Event) error { return nil }
func (nopPublisher) Close() error                            { return nil }

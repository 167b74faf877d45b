// Package kafka publishes amendment domain events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/pkg/errs"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	defaultWriteTimeout = 10 * time.Second
	headerEventName     = "event-name"
)

// Config selects the brokers and the topic amendment events are written to.
type Config struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// Writer is the subset of *kafkago.Writer used by the publisher.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// NewWriter builds a synchronous writer that hashes the message key, so all
// events of one amendment land on the same partition in order.
func NewWriter(cfg Config) (*kafkago.Writer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errs.NewValueIsRequiredError("kafka brokers")
	}
	if cfg.Topic == "" {
		return nil, errs.NewValueIsRequiredError("kafka topic")
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}

	return &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: kafkago.RequireAll,
	}, nil
}

// Envelope is the JSON value of every message.
type Envelope struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	AggregateID string    `json:"aggregateId"`
	OccurredAt  time.Time `json:"occurredAt"`
	Payload     any       `json:"payload"`
}

// Publisher implements ports.EventPublisher on a Kafka writer.
type Publisher struct {
	writer Writer
	logger *zap.Logger
}

func NewPublisher(writer Writer, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		writer: writer,
		logger: logger.With(zap.String("component", "kafka_publisher")),
	}
}

// Publish writes all events in one batch keyed by aggregate id. Failures are
// returned as IntegrationError.
func (p *Publisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]kafkago.Message, 0, len(events))
	for _, event := range events {
		message, err := encode(event)
		if err != nil {
			return errs.NewIntegrationError("kafka", err)
		}
		messages = append(messages, message)
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		return errs.NewIntegrationError("kafka", err)
	}

	p.logger.Debug("events published", zap.Int("count", len(messages)))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func encode(event kernel.DomainEvent) (kafkago.Message, error) {
	if event == nil {
		return kafkago.Message{}, errors.New("nil event")
	}

	value, err := json.Marshal(Envelope{
		ID:          event.EventID().String(),
		Name:        event.EventName(),
		AggregateID: event.AggregateID().String(),
		OccurredAt:  event.OccurredAt().UTC(),
		Payload:     event.Payload(),
	})
	if err != nil {
		return kafkago.Message{}, err
	}

	return kafkago.Message{
		Key:   []byte(event.AggregateID().String()),
		Value: value,
		Time:  event.OccurredAt(),
		Headers: []kafkago.Header{
			{Key: headerEventName, Value: []byte(event.EventName())},
		},
	}, nil
}

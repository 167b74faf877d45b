// Package events holds the event publishers that do not need a broker and the
// metrics decorator wrapped around every publisher.
package events

import (
	"context"

	"amendments/internal/core/domain/model/kernel"

	"go.uber.org/zap"
)

// LogPublisher writes every event as an info log line. It is used when no
// Kafka brokers are configured.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogPublisher{logger: logger.With(zap.String("component", "event_log"))}
}

func (p *LogPublisher) Publish(_ context.Context, events ...kernel.DomainEvent) error {
	for _, e := range events {
		p.logger.Info("domain event",
			zap.String("event", e.EventName()),
			zap.String("event_id", e.EventID().String()),
			zap.String("aggregate_id", e.AggregateID().String()),
			zap.Time("occurred_at", e.OccurredAt()),
			zap.Any("payload", e.Payload()),
		)
	}
	return nil
}

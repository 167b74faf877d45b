package ports

import (
	"context"

	"amendments/internal/core/domain/model/kernel"
)

// EventPublisher delivers committed domain events to the notification sink.
// Failures are reported to the caller for logging; they never undo the transition.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent) error
}

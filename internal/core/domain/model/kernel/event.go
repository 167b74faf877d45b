package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate and published after the transaction that
// produced it commits.
type DomainEvent interface {
	EventID() UUID
	EventName() string
	AggregateID() UUID
	OccurredAt() time.Time
	// Payload is the JSON-serialisable body handed to publishers.
	Payload() any
}

// EventSource is implemented by aggregates that record domain events.
// PullDomainEvents returns the recorded events and forgets them.
type EventSource interface {
	PullDomainEvents() []DomainEvent
}

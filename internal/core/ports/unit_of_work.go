package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command so transactions never leak between requests.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of a command. Aggregates loaded or
// stored through its repositories are tracked; their domain events are
// published once Commit succeeds.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error

	// Rollback is a no-op after a successful Commit, so it is safe to defer.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	AmendmentRepository() AmendmentRepository
}

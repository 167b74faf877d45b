// Package commands contains the state-changing amendment use cases.
// Every handler follows the same pattern: validate the command, open a unit of
// work, load and guard the aggregates, mutate them, persist and commit.
package commands

import (
	"context"
	"time"

	"amendments/internal/core/domain/model/amendment"
	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/core/domain/model/order"
	"amendments/internal/core/domain/services"
	"amendments/internal/core/ports"
)

type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// UoW spans orders and amendments, so that approve+apply and
	// create+numbering are atomic.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	//   // ... mutate and store
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepository() ports.OrderRepository
		AmendmentRepository() ports.AmendmentRepository
	}

	// UoWFactory creates a unit of work per command.
	UoWFactory interface {
		Create() UoW
	}
)

// Collaborators of the orchestrator. They are injected so tests and
// alternative rule sets can replace them.
type (
	Validator interface {
		ValidateCreation(
			o *order.Order,
			proposer kernel.UUID,
			t amendment.Type,
			changes []amendment.Change,
			pending []*amendment.Amendment,
			now time.Time,
		) error
		ValidateUpdate(a *amendment.Amendment, company kernel.UUID, now time.Time) error
		ValidateApproval(a *amendment.Amendment, company kernel.UUID, now time.Time) error
		ValidateCancellation(a *amendment.Amendment, company kernel.UUID, now time.Time) error
		ValidateReceivedQuantityAdjustment(o *order.Order, company kernel.UUID) error
		ValidateProposalOrder(o *order.Order) error
	}

	ImpactAssessor interface {
		Assess(changes []amendment.Change, o *order.Order, now time.Time) (*amendment.ImpactAssessment, error)
	}

	NumberGenerator interface {
		Generate(ctx context.Context, counter services.AmendmentCounter, orderNumber string) (amendment.Number, error)
	}
)

// Dependencies bundles the domain services shared by the handlers.
type Dependencies struct {
	Validator Validator
	Assessor  ImpactAssessor
	Numbers   NumberGenerator
	Clock     kernel.Clock
}

// DefaultDependencies wires the standard domain services.
func DefaultDependencies(clock kernel.Clock) Dependencies {
	return Dependencies{
		Validator: services.NewAmendmentValidator(),
		Assessor:  services.NewImpactAssessor(),
		Numbers:   services.NewNumberGenerator(),
		Clock:     clock,
	}
}

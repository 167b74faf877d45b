package commands

import (
	"context"

	"amendments/internal/core/domain/model/amendment"
	"amendments/internal/core/domain/model/order"
)

// AutoApprovalNotes is recorded on self-approved received quantity adjustments.
const AutoApprovalNotes = "auto-approved"

// AdjustReceivedQuantityCommandHandler is the buyer's fast path: it opens a
// received_quantity_adjustment with high priority and no expiration, approves
// it on the buyer's own authority and applies it, in one transaction.
type AdjustReceivedQuantityCommandHandler struct {
	uowFactory UoWFactory
	deps       Dependencies
}

func NewAdjustReceivedQuantityCommandHandler(
	uowFactory UoWFactory,
	deps Dependencies,
) AdjustReceivedQuantityCommandHandler {
	return AdjustReceivedQuantityCommandHandler{uowFactory: uowFactory, deps: deps}
}

func (h AdjustReceivedQuantityCommandHandler) Handle(
	ctx context.Context,
	command AdjustReceivedQuantityCommand,
) (*amendment.Amendment, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	buyer := command.BuyerCompanyID()
	a, o, err := h.deps.open(ctx, uow, draft{
		orderID:  command.OrderID(),
		proposer: buyer,
		typ:      amendment.TypeReceivedQuantityAdjustment,
		reason:   command.Reason(),
		priority: amendment.PriorityHigh,
		requests: []ChangeRequest{{
			Field:    order.FieldReceivedQuantity,
			NewValue: order.NumberValue(command.Quantity()),
		}},
		notes: command.notes,
	}, func(o *order.Order) error {
		return h.deps.Validator.ValidateReceivedQuantityAdjustment(o, buyer)
	})
	if err != nil {
		return nil, err
	}

	now := h.deps.Clock.Now()
	if err = a.Approve(AutoApprovalNotes, now); err != nil {
		return nil, err
	}
	if err = a.ApplyTo(o, now); err != nil {
		return nil, err
	}
	if err = a.MarkApplied(now); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.AmendmentRepository().Add(ctx, a); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

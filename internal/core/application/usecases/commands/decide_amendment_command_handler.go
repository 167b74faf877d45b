package commands

import (
	"context"
	"time"

	"amendments/internal/core/domain/model/amendment"
)

// DecideAmendmentCommandHandler approves or rejects a pending amendment.
//
// On approval every change is written to the order, the order is stored and
// the amendment is marked applied, all before the single commit. Any failure
// rolls back both, so an amendment is never left approved but unapplied.
type DecideAmendmentCommandHandler struct {
	uowFactory UoWFactory
	deps       Dependencies
}

func NewDecideAmendmentCommandHandler(uowFactory UoWFactory, deps Dependencies) DecideAmendmentCommandHandler {
	return DecideAmendmentCommandHandler{uowFactory: uowFactory, deps: deps}
}

func (h DecideAmendmentCommandHandler) Handle(
	ctx context.Context,
	command DecideAmendmentCommand,
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

	now := h.deps.Clock.Now()
	amendments := uow.AmendmentRepository()

	a, err := amendments.Get(ctx, command.AmendmentID())
	if err != nil {
		return nil, err
	}

	if err = h.deps.Validator.ValidateApproval(a, command.CompanyID(), now); err != nil {
		return nil, err
	}

	if command.Approved() {
		if err = h.approveAndApply(ctx, uow, a, command.Notes(), now); err != nil {
			return nil, err
		}
	} else if err = a.Reject(command.Notes(), now); err != nil {
		return nil, err
	}

	if err = amendments.Update(ctx, a); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

func (h DecideAmendmentCommandHandler) approveAndApply(
	ctx context.Context,
	uow UoW,
	a *amendment.Amendment,
	notes string,
	now time.Time,
) error {
	orders := uow.OrderRepository()

	o, err := orders.GetForUpdate(ctx, a.OrderID())
	if err != nil {
		return err
	}

	if err = a.Approve(notes, now); err != nil {
		return err
	}
	if err = a.ApplyTo(o, now); err != nil {
		return err
	}
	if err = orders.Update(ctx, o); err != nil {
		return err
	}
	return a.MarkApplied(now)
}

package commands

import (
	"context"

	"amendments/internal/core/domain/model/amendment"
)

// CreateAmendmentCommandHandler opens amendments.
//
// The order row is locked for the whole transaction, so the pending-conflict
// check, number generation and insert cannot interleave with a concurrent
// proposal on the same order.
type CreateAmendmentCommandHandler struct {
	uowFactory UoWFactory
	deps       Dependencies
}

func NewCreateAmendmentCommandHandler(uowFactory UoWFactory, deps Dependencies) CreateAmendmentCommandHandler {
	return CreateAmendmentCommandHandler{uowFactory: uowFactory, deps: deps}
}

func (h CreateAmendmentCommandHandler) Handle(
	ctx context.Context,
	command CreateAmendmentCommand,
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

	a, _, err := h.deps.open(ctx, uow, command.draft(), nil)
	if err != nil {
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

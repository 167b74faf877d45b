package commands

import (
	"context"

	"amendments/internal/core/domain/model/amendment"
	"amendments/internal/core/domain/model/order"
)

// ProposeChangesCommandHandler opens a batch pre-confirmation amendment.
type ProposeChangesCommandHandler struct {
	uowFactory UoWFactory
	deps       Dependencies
}

func NewProposeChangesCommandHandler(uowFactory UoWFactory, deps Dependencies) ProposeChangesCommandHandler {
	return ProposeChangesCommandHandler{uowFactory: uowFactory, deps: deps}
}

func (h ProposeChangesCommandHandler) Handle(
	ctx context.Context,
	command ProposeChangesCommand,
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

	a, _, err := h.deps.open(ctx, uow, command.draft(), func(o *order.Order) error {
		return h.deps.Validator.ValidateProposalOrder(o)
	})
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

package commands

import (
	"context"

	"amendments/internal/core/domain/model/amendment"
)

type CancelAmendmentCommandHandler struct {
	uowFactory UoWFactory
	deps       Dependencies
}

func NewCancelAmendmentCommandHandler(uowFactory UoWFactory, deps Dependencies) CancelAmendmentCommandHandler {
	return CancelAmendmentCommandHandler{uowFactory: uowFactory, deps: deps}
}

func (h CancelAmendmentCommandHandler) Handle(
	ctx context.Context,
	command CancelAmendmentCommand,
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

	if err = h.deps.Validator.ValidateCancellation(a, command.CompanyID(), now); err != nil {
		return nil, err
	}

	if err = a.Cancel(now); err != nil {
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

package commands

import (
	"context"
	"time"

	"amendments/internal/core/domain/model/amendment"
	"amendments/internal/pkg/optional"
)

// UpdateAmendmentCommandHandler applies the proposer's patch to a pending amendment.
type UpdateAmendmentCommandHandler struct {
	uowFactory UoWFactory
	deps       Dependencies
}

func NewUpdateAmendmentCommandHandler(uowFactory UoWFactory, deps Dependencies) UpdateAmendmentCommandHandler {
	return UpdateAmendmentCommandHandler{uowFactory: uowFactory, deps: deps}
}

func (h UpdateAmendmentCommandHandler) Handle(
	ctx context.Context,
	command UpdateAmendmentCommand,
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

	if err = h.deps.Validator.ValidateUpdate(a, command.CompanyID(), now); err != nil {
		return nil, err
	}

	if err = a.Revise(toRevision(command.Patch(), now), now); err != nil {
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

func toRevision(p AmendmentPatch, now time.Time) amendment.Revision {
	r := amendment.Revision{
		Priority:            p.Priority,
		Notes:               p.Notes,
		SupportingDocuments: p.SupportingDocuments,
	}
	switch {
	case p.ExpiresInHours.IsNull():
		r.ExpiresAt = optional.Null[time.Time]()
	case p.ExpiresInHours.IsSet():
		hours, _ := p.ExpiresInHours.Get()
		r.ExpiresAt = optional.Of(*expiresAt(now, &hours))
	}
	return r
}

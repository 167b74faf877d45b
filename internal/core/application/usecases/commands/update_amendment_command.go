package commands

import (
	"errors"

	"amendments/internal/core/domain/model/amendment"
	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/pkg/guard"
	"amendments/internal/pkg/optional"
)

var ErrUpdateAmendmentCommandIsNotConstructed = errors.New(
	"UpdateAmendmentCommand must be created via NewUpdateAmendmentCommand constructor",
)

// AmendmentPatch lists the fields the proposer may revise. Omitted fields are
// kept; a null ExpiresInHours removes the expiration.
type AmendmentPatch struct {
	Priority            optional.Value[amendment.Priority]
	Notes               optional.Value[string]
	SupportingDocuments optional.Value[[]string]
	ExpiresInHours      optional.Value[int]
}

// UpdateAmendmentCommand revises a pending amendment. The expiration is
// recomputed from the time of the update.
type UpdateAmendmentCommand struct {
	amendmentID kernel.UUID
	companyID   kernel.UUID
	patch       AmendmentPatch

	guard guard.ConstructorGuard
}

func NewUpdateAmendmentCommand(amendmentID, companyID kernel.UUID, patch AmendmentPatch) (UpdateAmendmentCommand, error) {
	var hoursErr error
	if hours, ok := patch.ExpiresInHours.Get(); ok {
		hoursErr = validateExpiresInHours(&hours)
	}
	var priorityErr error
	if patch.Priority.IsSet() {
		p, _ := patch.Priority.Get()
		priorityErr = p.Validate()
	}

	if err := errors.Join(amendmentID.Validate(), companyID.Validate(), hoursErr, priorityErr); err != nil {
		return UpdateAmendmentCommand{}, err
	}

	if docs, ok := patch.SupportingDocuments.Get(); ok {
		patch.SupportingDocuments = optional.Of(copyStrings(docs))
	}

	return UpdateAmendmentCommand{
		amendmentID: amendmentID,
		companyID:   companyID,
		patch:       patch,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateAmendmentCommand) Validate() error {
	return c.guard.Validate(ErrUpdateAmendmentCommandIsNotConstructed)
}

func (c UpdateAmendmentCommand) AmendmentID() kernel.UUID {
	return c.amendmentID
}

func (c UpdateAmendmentCommand) CompanyID() kernel.UUID {
	return c.companyID
}

func (c UpdateAmendmentCommand) Patch() AmendmentPatch {
	return c.patch
}

package commands

import (
	"errors"

	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/pkg/guard"
)

var ErrCancelAmendmentCommandIsNotConstructed = errors.New(
	"CancelAmendmentCommand must be created via NewCancelAmendmentCommand constructor",
)

// CancelAmendmentCommand withdraws a pending amendment on behalf of its proposer.
type CancelAmendmentCommand struct {
	amendmentID kernel.UUID
	companyID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelAmendmentCommand(amendmentID, companyID kernel.UUID) (CancelAmendmentCommand, error) {
	if err := errors.Join(amendmentID.Validate(), companyID.Validate()); err != nil {
		return CancelAmendmentCommand{}, err
	}
	return CancelAmendmentCommand{
		amendmentID: amendmentID,
		companyID:   companyID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CancelAmendmentCommand) Validate() error {
	return c.guard.Validate(ErrCancelAmendmentCommandIsNotConstructed)
}

func (c CancelAmendmentCommand) AmendmentID() kernel.UUID {
	return c.amendmentID
}

func (c CancelAmendmentCommand) CompanyID() kernel.UUID {
	return c.companyID
}

package commands

import (
	"errors"
	"strings"

	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/pkg/guard"
)

var ErrDecideAmendmentCommandIsNotConstructed = errors.New(
	"DecideAmendmentCommand must be created via NewDecideAmendmentCommand constructor",
)

// DecideAmendmentCommand carries the approver's decision. Approval applies the
// amendment to the order in the same transaction.
type DecideAmendmentCommand struct {
	amendmentID kernel.UUID
	companyID   kernel.UUID
	approved    bool
	notes       string

	guard guard.ConstructorGuard
}

func NewDecideAmendmentCommand(amendmentID, companyID kernel.UUID, approved bool, notes string) (DecideAmendmentCommand, error) {
	if err := errors.Join(amendmentID.Validate(), companyID.Validate()); err != nil {
		return DecideAmendmentCommand{}, err
	}

	return DecideAmendmentCommand{
		amendmentID: amendmentID,
		companyID:   companyID,
		approved:    approved,
		notes:       strings.TrimSpace(notes),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c DecideAmendmentCommand) Validate() error {
	return c.guard.Validate(ErrDecideAmendmentCommandIsNotConstructed)
}

func (c DecideAmendmentCommand) AmendmentID() kernel.UUID {
	return c.amendmentID
}

func (c DecideAmendmentCommand) CompanyID() kernel.UUID {
	return c.companyID
}

func (c DecideAmendmentCommand) Approved() bool {
	return c.approved
}

func (c DecideAmendmentCommand) Notes() string {
	return c.notes
}

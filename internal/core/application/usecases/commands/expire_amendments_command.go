package commands

import (
	"errors"

	"amendments/internal/pkg/errs"
	"amendments/internal/pkg/guard"
)

var ErrExpireAmendmentsCommandIsNotConstructed = errors.New(
	"ExpireAmendmentsCommand must be created via NewExpireAmendmentsCommand constructor",
)

// ExpireAmendmentsCommand persists the expired status of at most batchSize
// overdue pending amendments.
type ExpireAmendmentsCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewExpireAmendmentsCommand(batchSize int) (ExpireAmendmentsCommand, error) {
	if batchSize <= 0 {
		return ExpireAmendmentsCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, "unbounded")
	}
	return ExpireAmendmentsCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c ExpireAmendmentsCommand) Validate() error {
	return c.guard.Validate(ErrExpireAmendmentsCommandIsNotConstructed)
}

func (c ExpireAmendmentsCommand) BatchSize() int {
	return c.batchSize
}

package queries

import (
	"errors"

	"amendments/internal/core/domain/model/amendment"
	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/pkg/guard"
)

var ErrGetAmendmentByNumberQueryIsNotConstructed = errors.New(
	"GetAmendmentByNumberQuery must be created via NewGetAmendmentByNumberQuery constructor",
)

// GetAmendmentByNumberQuery reads an amendment by its AMD-<order>-<seq> number.
type GetAmendmentByNumberQuery struct {
	number    amendment.Number
	companyID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetAmendmentByNumberQuery(number string, companyID kernel.UUID) (GetAmendmentByNumberQuery, error) {
	n, numberErr := amendment.ParseNumber(number)
	if err := errors.Join(numberErr, companyID.Validate()); err != nil {
		return GetAmendmentByNumberQuery{}, err
	}
	return GetAmendmentByNumberQuery{number: n, companyID: companyID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAmendmentByNumberQuery) Validate() error {
	return q.guard.Validate(ErrGetAmendmentByNumberQueryIsNotConstructed)
}

func (q GetAmendmentByNumberQuery) Number() amendment.Number {
	return q.number
}

func (q GetAmendmentByNumberQuery) CompanyID() kernel.UUID {
	return q.companyID
}

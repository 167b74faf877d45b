package queries

import (
	"errors"

	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/pkg/guard"
)

var ErrGetAmendmentQueryIsNotConstructed = errors.New(
	"GetAmendmentQuery must be created via NewGetAmendmentQuery constructor",
)

// GetAmendmentQuery reads one amendment on behalf of a company.
//
// Example:
//
//	query, err := NewGetAmendmentQuery(amendmentID, companyID)
//	view, err := handler.Handle(ctx, query)
//	fmt.Println(view.EffectiveStatus)
type GetAmendmentQuery struct {
	amendmentID kernel.UUID
	companyID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetAmendmentQuery(amendmentID, companyID kernel.UUID) (GetAmendmentQuery, error) {
	if err := errors.Join(amendmentID.Validate(), companyID.Validate()); err != nil {
		return GetAmendmentQuery{}, err
	}
	return GetAmendmentQuery{amendmentID: amendmentID, companyID: companyID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAmendmentQuery) Validate() error {
	return q.guard.Validate(ErrGetAmendmentQueryIsNotConstructed)
}

func (q GetAmendmentQuery) AmendmentID() kernel.UUID {
	return q.amendmentID
}

func (q GetAmendmentQuery) CompanyID() kernel.UUID {
	return q.companyID
}

package queries

import (
	"errors"
	"fmt"
	"time"

	"amendments/internal/core/domain/model/amendment"
	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/pkg/errs"
	"amendments/internal/pkg/guard"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

var ErrListAmendmentsQueryIsNotConstructed = errors.New(
	"ListAmendmentsQuery must be created via NewListAmendmentsQuery constructor",
)

// ListAmendmentsParams are the optional filters of a listing. Page is 1-based.
type ListAmendmentsParams struct {
	OrderID                *kernel.UUID
	Types                  []amendment.Type
	Statuses               []amendment.Status
	Priorities             []amendment.Priority
	ProposedByCompanyID    *kernel.UUID
	RequiresApprovalFromID *kernel.UUID
	ProposedFrom           *time.Time
	ProposedTo             *time.Time
	ExpiresFrom            *time.Time
	ExpiresTo              *time.Time
	Page                   int
	Limit                  int
}

// ListAmendmentsQuery lists the amendments a company proposed or has to approve.
// Status filters match the effective status.
type ListAmendmentsQuery struct {
	companyID kernel.UUID
	params    ListAmendmentsParams

	guard guard.ConstructorGuard
}

func NewListAmendmentsQuery(companyID kernel.UUID, p ListAmendmentsParams) (ListAmendmentsQuery, error) {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.Limit == 0 {
		p.Limit = DefaultPageLimit
	}

	var pageErr, limitErr error
	if p.Page < 1 {
		pageErr = errs.NewValueIsOutOfRangeError("page", p.Page, 1, "unbounded")
	}
	if p.Limit < 1 || p.Limit > MaxPageLimit {
		limitErr = errs.NewValueIsOutOfRangeError("limit", p.Limit, 1, MaxPageLimit)
	}

	if err := errors.Join(
		companyID.Validate(),
		pageErr,
		limitErr,
		validateEach(p.Types),
		validateEach(p.Statuses),
		validateEach(p.Priorities),
		validateRange("proposed", p.ProposedFrom, p.ProposedTo),
		validateRange("expires", p.ExpiresFrom, p.ExpiresTo),
	); err != nil {
		return ListAmendmentsQuery{}, err
	}

	return ListAmendmentsQuery{companyID: companyID, params: p, guard: guard.NewConstructorGuard()}, nil
}

func (q ListAmendmentsQuery) Validate() error {
	return q.guard.Validate(ErrListAmendmentsQueryIsNotConstructed)
}

func (q ListAmendmentsQuery) CompanyID() kernel.UUID {
	return q.companyID
}

func (q ListAmendmentsQuery) Params() ListAmendmentsParams {
	return q.params
}

func validateEach[E interface{ Validate() error }](values []E) error {
	var err error
	for _, v := range values {
		err = errors.Join(err, v.Validate())
	}
	return err
}

func validateRange(name string, from, to *time.Time) error {
	if from != nil && to != nil && from.After(*to) {
		return errs.NewValueIsInvalidErrorWithCause(name+"From", fmt.Errorf("must not be after %sTo", name))
	}
	return nil
}

// ListAmendmentsQueryResponse is one page of views.
type ListAmendmentsQueryResponse struct {
	Items      []AmendmentView
	TotalCount int64
	Page       int
	Limit      int
	TotalPages int
}

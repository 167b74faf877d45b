package ports

import (
	"context"
	"time"

	"amendments/internal/core/domain/model/amendment"
	"amendments/internal/core/domain/model/kernel"
)

// AmendmentFilter narrows a company-scoped listing. Zero values do not filter.
type AmendmentFilter struct {
	// CompanyID is mandatory: only amendments the company proposed or must approve are returned.
	CompanyID kernel.UUID

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

	// Now resolves the effective status: a pending amendment past its
	// expiration matches StatusExpired, not StatusPending.
	Now time.Time

	Page  int
	Limit int
}

// AmendmentPage is one page of a listing.
type AmendmentPage struct {
	Items      []*amendment.Amendment
	TotalCount int64
	Page       int
	Limit      int
}

// TotalPages is the number of pages for the current limit.
func (p AmendmentPage) TotalPages() int {
	if p.Limit <= 0 {
		return 0
	}
	return int((p.TotalCount + int64(p.Limit) - 1) / int64(p.Limit))
}

type AmendmentRepository interface {
	Add(ctx context.Context, aggregate *amendment.Amendment) error

	// Update writes the aggregate if its version still matches the stored one
	// and increments the version. A stale version yields ConcurrencyConflictError.
	Update(ctx context.Context, aggregate *amendment.Amendment) error

	Delete(ctx context.Context, id kernel.UUID) error

	Get(ctx context.Context, id kernel.UUID) (*amendment.Amendment, error)

	GetByNumber(ctx context.Context, number amendment.Number) (*amendment.Amendment, error)

	// GetAllPendingByOrder returns amendments of the order stored as pending, expired or not.
	GetAllPendingByOrder(ctx context.Context, orderID kernel.UUID) ([]*amendment.Amendment, error)

	// GetAllPendingExpiredAt returns at most limit pending amendments whose expiration is before now.
	GetAllPendingExpiredAt(ctx context.Context, now time.Time, limit int) ([]*amendment.Amendment, error)

	CountByNumberPrefix(ctx context.Context, prefix string) (int64, error)

	List(ctx context.Context, filter AmendmentFilter) (AmendmentPage, error)
}

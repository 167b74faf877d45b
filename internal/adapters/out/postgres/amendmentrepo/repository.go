package amendmentrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"amendments/internal/adapters/out/postgres/pgerr"
	"amendments/internal/core/domain/model/amendment"
	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/core/ports"
	"amendments/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAmendmentRepository implements ports.AmendmentRepository using GORM.
// Writes are guarded by the version column.
type GormAmendmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAmendmentRepository creates a repository. tracker may be nil for read-only use.
func NewGormAmendmentRepository(db *gorm.DB, tracker aggregateTracker) *GormAmendmentRepository {
	return &GormAmendmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the amendment and its changes. A duplicate number surfaces as
// ConcurrencyConflictError.
func (r *GormAmendmentRepository) Add(ctx context.Context, aggregate *amendment.Amendment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "amendment "+dto.Number)
	}

	r.track(aggregate)
	return nil
}

// Update writes the mutable columns where the stored version still equals the
// aggregate's, then increments the version on both sides. Changes are
// immutable after creation and are not rewritten.
func (r *GormAmendmentRepository) Update(ctx context.Context, aggregate *amendment.Amendment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&AmendmentDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"priority":             dto.Priority,
			"status":               dto.Status,
			"approved_at":          dto.ApprovedAt,
			"applied_at":           dto.AppliedAt,
			"expires_at":           dto.ExpiresAt,
			"notes":                dto.Notes,
			"approval_notes":       dto.ApprovalNotes,
			"supporting_documents": dto.SupportingDocuments,
			"requires_erp_sync":    dto.RequiresERPSync,
			"erp_sync_status":      dto.ERPSyncStatus,
			"updated_at":           dto.UpdatedAt,
			"version":              gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return pgerr.Translate(result.Error, "amendment "+dto.Number)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&AmendmentDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("amendment", aggregate.ID().String())
		}
		return errs.NewConcurrencyConflictError("amendment " + dto.Number)
	}

	aggregate.IncrementVersion()
	r.track(aggregate)
	return nil
}

func (r *GormAmendmentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&AmendmentDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("amendment", id.String())
	}
	return nil
}

func (r *GormAmendmentRepository) Get(ctx context.Context, id kernel.UUID) (*amendment.Amendment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, id.String(), "id = ?", id.Bytes())
}

func (r *GormAmendmentRepository) GetByNumber(ctx context.Context, number amendment.Number) (*amendment.Amendment, error) {
	if number.IsZero() {
		return nil, errs.NewValueIsRequiredError("amendment number")
	}
	return r.first(ctx, number.String(), "number = ?", number.String())
}

func (r *GormAmendmentRepository) GetAllPendingByOrder(ctx context.Context, orderID kernel.UUID) ([]*amendment.Amendment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AmendmentDTO
	err := r.withChanges(ctx).
		Where("order_id = ? AND status = ?", orderID.Bytes(), amendment.StatusPending.String()).
		Order("proposed_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	return toDomainAll(dtos)
}

// GetAllPendingExpiredAt locks the selected rows and skips rows locked by a
// concurrent sweep.
func (r *GormAmendmentRepository) GetAllPendingExpiredAt(ctx context.Context, now time.Time, limit int) ([]*amendment.Amendment, error) {
	var dtos []AmendmentDTO
	err := r.withChanges(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", amendment.StatusPending.String(), now).
		Order("expires_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	return toDomainAll(dtos)
}

func (r *GormAmendmentRepository) CountByNumberPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&AmendmentDTO{}).
		Where("number LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").
		Count(&count).Error
	return count, err
}

// List returns one page of the company's amendments, newest first.
func (r *GormAmendmentRepository) List(ctx context.Context, filter ports.AmendmentFilter) (ports.AmendmentPage, error) {
	if err := filter.CompanyID.Validate(); err != nil {
		return ports.AmendmentPage{}, err
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	query := r.db.WithContext(ctx).Model(&AmendmentDTO{}).Scopes(filtered(filter))

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return ports.AmendmentPage{}, err
	}

	var dtos []AmendmentDTO
	err := query.Session(&gorm.Session{}).
		Preload("Changes", byPosition).
		Order("proposed_at DESC").
		Order("number DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&dtos).Error
	if err != nil {
		return ports.AmendmentPage{}, err
	}

	items, err := toDomainAll(dtos)
	if err != nil {
		return ports.AmendmentPage{}, err
	}
	return ports.AmendmentPage{Items: items, TotalCount: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func filtered(f ports.AmendmentFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		company := f.CompanyID.Bytes()
		db = db.Where("(proposed_by_company_id = ? OR requires_approval_from_company_id = ?)", company, company)

		if f.OrderID != nil {
			db = db.Where("order_id = ?", f.OrderID.Bytes())
		}
		if len(f.Types) > 0 {
			db = db.Where("type IN ?", names(f.Types))
		}
		if len(f.Priorities) > 0 {
			db = db.Where("priority IN ?", names(f.Priorities))
		}
		if len(f.Statuses) > 0 {
			sql, args := effectiveStatusCondition(f.Statuses, f.Now)
			db = db.Where(sql, args...)
		}
		if f.ProposedByCompanyID != nil {
			db = db.Where("proposed_by_company_id = ?", f.ProposedByCompanyID.Bytes())
		}
		if f.RequiresApprovalFromID != nil {
			db = db.Where("requires_approval_from_company_id = ?", f.RequiresApprovalFromID.Bytes())
		}
		if f.ProposedFrom != nil {
			db = db.Where("proposed_at >= ?", *f.ProposedFrom)
		}
		if f.ProposedTo != nil {
			db = db.Where("proposed_at <= ?", *f.ProposedTo)
		}
		if f.ExpiresFrom != nil {
			db = db.Where("expires_at >= ?", *f.ExpiresFrom)
		}
		if f.ExpiresTo != nil {
			db = db.Where("expires_at <= ?", *f.ExpiresTo)
		}
		return db
	}
}

// effectiveStatusCondition matches stored pending rows past their expiration
// as expired instead of pending.
func effectiveStatusCondition(statuses []amendment.Status, now time.Time) (string, []any) {
	var (
		parts []string
		args  []any
	)
	for _, s := range statuses {
		switch s {
		case amendment.StatusPending:
			parts = append(parts, "(status = ? AND (expires_at IS NULL OR expires_at >= ?))")
			args = append(args, s.String(), now)
		case amendment.StatusExpired:
			parts = append(parts, "(status = ? OR (status = ? AND expires_at < ?))")
			args = append(args, s.String(), amendment.StatusPending.String(), now)
		default:
			parts = append(parts, "status = ?")
			args = append(args, s.String())
		}
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

func (r *GormAmendmentRepository) first(ctx context.Context, ref, cond string, args ...any) (*amendment.Amendment, error) {
	var dto AmendmentDTO
	if err := r.withChanges(ctx).Where(cond, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("amendment", ref)
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormAmendmentRepository) withChanges(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Changes", byPosition)
}

func (r *GormAmendmentRepository) track(aggregate *amendment.Amendment) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}

func toDomainAll(dtos []AmendmentDTO) ([]*amendment.Amendment, error) {
	out := make([]*amendment.Amendment, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func names[E interface{ String() string }](values []E) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.String())
	}
	return out
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

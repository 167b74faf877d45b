package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"amendments/internal/core/domain/model/amendment"
	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/core/domain/model/order"
	"amendments/internal/pkg/errs"
)

const (
	MinExpiresInHours = 1
	MaxExpiresInHours = 8760
)

// ChangeRequest is a requested field change. The old value is captured from
// the order when the amendment is opened.
type ChangeRequest struct {
	Field    order.Field
	NewValue order.Value
	Reason   string
}

func validateChangeRequests(requests []ChangeRequest) error {
	if len(requests) == 0 {
		return errs.NewValueIsRequiredError("changes")
	}
	for i, r := range requests {
		if err := r.Field.Validate(); err != nil {
			return fmt.Errorf("changes[%d]: %w", i, err)
		}
		if r.NewValue.IsZero() {
			return errs.NewValueIsRequiredError(fmt.Sprintf("changes[%d].newValue", i))
		}
	}
	return nil
}

func validateExpiresInHours(hours *int) error {
	if hours == nil {
		return nil
	}
	if *hours < MinExpiresInHours || *hours > MaxExpiresInHours {
		return errs.NewValueIsOutOfRangeError("expiresInHours", *hours, MinExpiresInHours, MaxExpiresInHours)
	}
	return nil
}

func expiresAt(now time.Time, hours *int) *time.Time {
	if hours == nil {
		return nil
	}
	at := now.Add(time.Duration(*hours) * time.Hour)
	return &at
}

func copyStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// draft is a fully specified proposal before numbering and assessment.
type draft struct {
	orderID             kernel.UUID
	proposer            kernel.UUID
	typ                 amendment.Type
	reason              amendment.Reason
	priority            amendment.Priority
	requests            []ChangeRequest
	notes               string
	supportingDocuments []string
	expiresInHours      *int
}

// open runs the creation pipeline inside uow: lock the order, validate against
// the stored pending amendments, number, assess, and build the pending aggregate.
// The amendment is not stored; callers may still transition it first.
func (d Dependencies) open(ctx context.Context, uow UoW, dr draft, check func(*order.Order) error) (*amendment.Amendment, *order.Order, error) {
	now := d.Clock.Now()

	o, err := uow.OrderRepository().GetForUpdate(ctx, dr.orderID)
	if err != nil {
		return nil, nil, err
	}
	if check != nil {
		if err = check(o); err != nil {
			return nil, nil, err
		}
	}

	amendments := uow.AmendmentRepository()
	pending, err := amendments.GetAllPendingByOrder(ctx, o.ID())
	if err != nil {
		return nil, nil, err
	}

	changes := make([]amendment.Change, 0, len(dr.requests))
	for _, r := range dr.requests {
		c, err := amendment.ChangeFromOrder(o, r.Field, r.NewValue, r.Reason)
		if err != nil {
			return nil, nil, err
		}
		changes = append(changes, c)
	}

	if err = d.Validator.ValidateCreation(o, dr.proposer, dr.typ, changes, pending, now); err != nil {
		return nil, nil, err
	}

	approver, err := o.CounterpartyOf(dr.proposer)
	if err != nil {
		return nil, nil, err
	}

	number, err := d.Numbers.Generate(ctx, amendments, o.Number())
	if err != nil {
		return nil, nil, err
	}

	impact, err := d.Assessor.Assess(changes, o, now)
	if err != nil {
		return nil, nil, err
	}

	a, err := amendment.Propose(amendment.Proposal{
		ID:                   kernel.NewUUID(),
		OrderID:              o.ID(),
		Number:               number,
		Type:                 dr.typ,
		Reason:               dr.reason,
		Priority:             dr.priority,
		Changes:              changes,
		ProposedBy:           dr.proposer,
		RequiresApprovalFrom: approver,
		Notes:                dr.notes,
		SupportingDocuments:  dr.supportingDocuments,
		ExpiresAt:            expiresAt(now, dr.expiresInHours),
		Impact:               impact,
	}, now)
	if err != nil {
		return nil, nil, err
	}
	return a, o, nil
}

package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"amendments/internal/core/domain/model/amendment"
	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/core/domain/model/order"
	"amendments/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Business rule names reported in BusinessRuleViolationError.
const (
	RuleSinglePendingPerType        = "single_pending_amendment_per_type"
	RuleReceivedQuantityIsExclusive = "received_quantity_adjustment_is_exclusive"
)

var (
	compositionMinTotal = decimal.NewFromInt(99)
	compositionMaxTotal = decimal.NewFromInt(101)
)

// AmendmentValidator guards every state-changing amendment operation.
//
// Checks run in a fixed order so callers get the most relevant failure:
// expiration first, then permission, then status, then content and conflicts.
type AmendmentValidator struct{}

func NewAmendmentValidator() AmendmentValidator {
	return AmendmentValidator{}
}

// ValidateCreation checks that proposer may open an amendment of type t with
// changes on o. pending holds the amendments of o currently stored as pending.
func (v AmendmentValidator) ValidateCreation(
	o *order.Order,
	proposer kernel.UUID,
	t amendment.Type,
	changes []amendment.Change,
	pending []*amendment.Amendment,
	now time.Time,
) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := t.Validate(); err != nil {
		return err
	}
	if !o.IsParty(proposer) {
		return errs.NewPermissionDeniedError(
			fmt.Sprintf("company %s", proposer),
			fmt.Sprintf("propose amendments to order %s", o.Number()),
		)
	}
	if err := v.ValidateOrderStatus(o, t); err != nil {
		return err
	}
	if err := v.ValidateChanges(t, changes); err != nil {
		return err
	}
	return v.ValidateNoConflict(t, pending, now)
}

// ValidateOrderStatus checks that the order lifecycle admits amendments of type t.
func (v AmendmentValidator) ValidateOrderStatus(o *order.Order, t amendment.Type) error {
	allowed := t.AllowedOrderStatuses()
	if !o.Status().IsIn(allowed...) {
		return errs.NewStatusConflictError("order", o.Status().String(), order.Names(allowed...)...)
	}
	return nil
}

// ValidateChanges checks type/field compatibility, uniqueness and field constraints.
// All field errors are reported together.
func (v AmendmentValidator) ValidateChanges(t amendment.Type, changes []amendment.Change) error {
	if len(changes) == 0 {
		return errs.NewValueIsRequiredError("changes")
	}

	var fieldErrs []error
	seen := make(map[order.Field]bool, len(changes))
	for _, c := range changes {
		switch {
		case seen[c.Field()]:
			fieldErrs = append(fieldErrs, errs.NewValueIsInvalidErrorWithCause(
				c.Field().String(), errors.New("field is changed more than once"),
			))
		case !t.AllowsField(c.Field()):
			fieldErrs = append(fieldErrs, errs.NewValueIsInvalidErrorWithCause(
				c.Field().String(), fmt.Errorf("%s amendments cannot change %s", t, c.Field()),
			))
		default:
			fieldErrs = append(fieldErrs, v.ValidateNewValue(c.Field(), c.NewValue()))
		}
		seen[c.Field()] = true
	}
	return errors.Join(fieldErrs...)
}

// ValidateNewValue enforces the per-field constraints on a proposed value.
func (v AmendmentValidator) ValidateNewValue(field order.Field, value order.Value) error {
	if value.Kind() != field.Kind() {
		return errs.NewValueIsInvalidErrorWithCause(
			field.String(), fmt.Errorf("expected a %s value, got %s", field.Kind(), value.Kind()),
		)
	}

	switch field {
	case order.FieldQuantity, order.FieldUnitPrice:
		if value.IsNull() {
			return errs.NewValueIsRequiredError(field.String())
		}
		if !value.Number().IsPositive() {
			return errs.NewValueIsInvalidErrorWithCause(
				field.String(), fmt.Errorf("%s is not greater than 0", value.Number()),
			)
		}
	case order.FieldReceivedQuantity:
		if value.IsNull() {
			return errs.NewValueIsRequiredError(field.String())
		}
		if value.Number().IsNegative() {
			return errs.NewValueIsInvalidErrorWithCause(
				field.String(), fmt.Errorf("%s is negative", value.Number()),
			)
		}
	case order.FieldDeliveryDate:
		if value.IsNull() {
			return errs.NewValueIsRequiredError(field.String())
		}
	case order.FieldDeliveryLocation:
		if value.IsNull() || strings.TrimSpace(value.Text()) == "" {
			return errs.NewValueIsRequiredError(field.String())
		}
	case order.FieldComposition:
		if value.IsNull() || value.Composition().IsEmpty() {
			return nil
		}
		total := value.Composition().Total()
		if total.LessThan(compositionMinTotal) || total.GreaterThan(compositionMaxTotal) {
			return errs.NewValueIsOutOfRangeError("composition total", total, compositionMinTotal, compositionMaxTotal)
		}
	case order.FieldUnknown:
		return field.Validate()
	}
	return nil
}

// ValidateNoConflict rejects a new amendment of type t when a conflicting one is
// still effectively pending. Lazily expired amendments do not block.
func (v AmendmentValidator) ValidateNoConflict(t amendment.Type, pending []*amendment.Amendment, now time.Time) error {
	for _, p := range pending {
		if p.EffectiveStatus(now) != amendment.StatusPending {
			continue
		}
		switch {
		case p.Type() == t:
			return errs.NewBusinessRuleViolationError(
				RuleSinglePendingPerType,
				fmt.Sprintf("amendment %s of type %s is already pending", p.Number(), t),
			)
		case p.Type() == amendment.TypeReceivedQuantityAdjustment:
			return errs.NewBusinessRuleViolationError(
				RuleReceivedQuantityIsExclusive,
				fmt.Sprintf("received quantity adjustment %s must be resolved first", p.Number()),
			)
		case t == amendment.TypeReceivedQuantityAdjustment:
			return errs.NewBusinessRuleViolationError(
				RuleReceivedQuantityIsExclusive,
				fmt.Sprintf("amendment %s must be resolved before adjusting the received quantity", p.Number()),
			)
		}
	}
	return nil
}

// ValidateUpdate allows only the proposer to revise a pending amendment.
func (v AmendmentValidator) ValidateUpdate(a *amendment.Amendment, company kernel.UUID, now time.Time) error {
	return v.validateAction(a, now, company, a.ProposedBy(), "update")
}

// ValidateApproval allows only the designated approver to decide on a pending amendment.
func (v AmendmentValidator) ValidateApproval(a *amendment.Amendment, company kernel.UUID, now time.Time) error {
	return v.validateAction(a, now, company, a.RequiresApprovalFrom(), "approve or reject")
}

// ValidateCancellation allows only the proposer to withdraw a pending amendment.
func (v AmendmentValidator) ValidateCancellation(a *amendment.Amendment, company kernel.UUID, now time.Time) error {
	return v.validateAction(a, now, company, a.ProposedBy(), "cancel")
}

// ValidateReceivedQuantityAdjustment allows only the buyer to report receipt of a shipped or delivered order.
func (v AmendmentValidator) ValidateReceivedQuantityAdjustment(o *order.Order, company kernel.UUID) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !o.IsBuyer(company) {
		return errs.NewPermissionDeniedError(
			fmt.Sprintf("company %s", company),
			fmt.Sprintf("adjust the received quantity of order %s", o.Number()),
		)
	}
	if !o.Status().IsIn(order.Shipped, order.Delivered) {
		return errs.NewStatusConflictError("order", o.Status().String(), order.Names(order.Shipped, order.Delivered)...)
	}
	return nil
}

// ValidateProposalOrder requires the order terms to still be negotiable.
func (v AmendmentValidator) ValidateProposalOrder(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !o.Status().IsPreConfirmation() {
		return errs.NewStatusConflictError("order", o.Status().String(), order.Names(order.Draft, order.Pending)...)
	}
	return nil
}

func (v AmendmentValidator) validateAction(
	a *amendment.Amendment,
	now time.Time,
	company, required kernel.UUID,
	action string,
) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.IsExpired(now) {
		return errs.NewExpiredError("amendment", a.Number().String(), *a.ExpiresAt())
	}
	if !company.IsEqual(required) {
		return errs.NewPermissionDeniedError(
			fmt.Sprintf("company %s", company),
			fmt.Sprintf("%s amendment %s", action, a.Number()),
		)
	}
	return a.Status().ValidateMutable()
}

package commands

import (
	"errors"

	"amendments/internal/core/domain/model/amendment"
	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/core/domain/model/order"
	"amendments/internal/pkg/errs"
	"amendments/internal/pkg/guard"
)

var ErrProposeChangesCommandIsNotConstructed = errors.New(
	"ProposeChangesCommand must be created via NewProposeChangesCommand constructor",
)

// ProposedFields is the batch of pre-confirmation field values. Unset fields are not proposed.
type ProposedFields struct {
	Quantity         *order.Value
	UnitPrice        *order.Value
	DeliveryDate     *order.Value
	DeliveryLocation *order.Value
	Composition      *order.Value
}

func (f ProposedFields) requests() []ChangeRequest {
	var out []ChangeRequest
	for _, entry := range []struct {
		field order.Field
		value *order.Value
	}{
		{order.FieldQuantity, f.Quantity},
		{order.FieldUnitPrice, f.UnitPrice},
		{order.FieldDeliveryDate, f.DeliveryDate},
		{order.FieldDeliveryLocation, f.DeliveryLocation},
		{order.FieldComposition, f.Composition},
	} {
		if entry.value != nil {
			out = append(out, ChangeRequest{Field: entry.field, NewValue: *entry.value})
		}
	}
	return out
}

// ProposeChangesCommand opens one multi-field amendment on a draft or pending
// order. Its type is derived from the populated fields (see amendment.TypeForFields).
type ProposeChangesCommand struct {
	orderID        kernel.UUID
	proposerID     kernel.UUID
	typ            amendment.Type
	reason         amendment.Reason
	priority       amendment.Priority
	requests       []ChangeRequest
	notes          string
	expiresInHours *int

	guard guard.ConstructorGuard
}

func NewProposeChangesCommand(
	orderID, proposerID kernel.UUID,
	fields ProposedFields,
	reason amendment.Reason,
	priority amendment.Priority,
	notes string,
	expiresInHours *int,
) (ProposeChangesCommand, error) {
	if reason == amendment.ReasonUnknown {
		reason = amendment.ReasonBuyerRequest
	}
	if priority == amendment.PriorityUnknown {
		priority = amendment.PriorityMedium
	}

	requests := fields.requests()
	var fieldsErr error
	if len(requests) == 0 {
		fieldsErr = errs.NewValueIsRequiredErrorWithCause("fields", errors.New("at least one field must be proposed"))
	}

	if err := errors.Join(
		orderID.Validate(),
		proposerID.Validate(),
		reason.Validate(),
		priority.Validate(),
		fieldsErr,
		validateExpiresInHours(expiresInHours),
	); err != nil {
		return ProposeChangesCommand{}, err
	}

	changed := make([]order.Field, 0, len(requests))
	for _, r := range requests {
		changed = append(changed, r.Field)
	}
	typ, _ := amendment.TypeForFields(changed)

	return ProposeChangesCommand{
		orderID:        orderID,
		proposerID:     proposerID,
		typ:            typ,
		reason:         reason,
		priority:       priority,
		requests:       requests,
		notes:          notes,
		expiresInHours: expiresInHours,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c ProposeChangesCommand) Validate() error {
	return c.guard.Validate(ErrProposeChangesCommandIsNotConstructed)
}

// Type is the label derived from the populated fields.
func (c ProposeChangesCommand) Type() amendment.Type {
	return c.typ
}

func (c ProposeChangesCommand) Changes() []ChangeRequest {
	return append([]ChangeRequest(nil), c.requests...)
}

func (c ProposeChangesCommand) draft() draft {
	return draft{
		orderID:        c.orderID,
		proposer:       c.proposerID,
		typ:            c.typ,
		reason:         c.reason,
		priority:       c.priority,
		requests:       c.requests,
		notes:          c.notes,
		expiresInHours: c.expiresInHours,
	}
}

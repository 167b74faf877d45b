package amendment

import (
	"fmt"
	"strings"

	"amendments/internal/core/domain/model/order"
	"amendments/internal/pkg/errs"
)

// Change is one field modification carried by an amendment. OldValue is the
// order's value at proposal time.
type Change struct {
	field    order.Field
	oldValue order.Value
	newValue order.Value
	reason   string
}

func NewChange(field order.Field, oldValue, newValue order.Value, reason string) (Change, error) {
	if err := field.Validate(); err != nil {
		return Change{}, err
	}
	for _, v := range []order.Value{oldValue, newValue} {
		if v.Kind() != field.Kind() {
			return Change{}, errs.NewValueIsInvalidErrorWithCause(
				field.String(),
				fmt.Errorf("expected a %s value, got %s", field.Kind(), v.Kind()),
			)
		}
	}
	return Change{
		field:    field,
		oldValue: oldValue,
		newValue: newValue,
		reason:   strings.TrimSpace(reason),
	}, nil
}

// ChangeFromOrder captures the current order value of field as the old value.
func ChangeFromOrder(o *order.Order, field order.Field, newValue order.Value, reason string) (Change, error) {
	return NewChange(field, o.Value(field), newValue, reason)
}

func (c Change) Field() order.Field {
	return c.field
}

func (c Change) OldValue() order.Value {
	return c.oldValue
}

func (c Change) NewValue() order.Value {
	return c.newValue
}

func (c Change) Reason() string {
	return c.reason
}

// Description renders "<field>: <old> → <new>".
func (c Change) Description() string {
	return fmt.Sprintf("%s: %s → %s", c.field, c.oldValue, c.newValue)
}

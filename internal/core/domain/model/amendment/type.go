package amendment

import (
	"amendments/internal/core/domain/model/order"
)

// Type classifies what an amendment changes.
type Type int

const (
	TypeUnknown Type = iota
	TypeQuantityChange
	TypePriceChange
	TypeDeliveryDateChange
	TypeDeliveryLocationChange
	TypeCompositionChange
	TypeReceivedQuantityAdjustment
	TypeDeliveryConfirmation
	TypeCancellation
	TypePartialDelivery
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeQuantityChange:             "quantity_change",
		TypePriceChange:                "price_change",
		TypeDeliveryDateChange:         "delivery_date_change",
		TypeDeliveryLocationChange:     "delivery_location_change",
		TypeCompositionChange:          "composition_change",
		TypeReceivedQuantityAdjustment: "received_quantity_adjustment",
		TypeDeliveryConfirmation:       "delivery_confirmation",
		TypeCancellation:               "cancellation",
		TypePartialDelivery:            "partial_delivery",
	}
}

func ParseType(s string) (Type, error) {
	return parseEnum(getTypeStrings(), "amendment type", s)
}

func (t Type) String() string {
	return enumName(getTypeStrings(), t)
}

func (t Type) Validate() error {
	return validateEnum(getTypeStrings(), "amendment type", t)
}

// IsPostConfirmation reports whether the type records what happened after the
// order was confirmed. Such amendments only carry receivedQuantity changes.
func (t Type) IsPostConfirmation() bool {
	switch t {
	case TypeReceivedQuantityAdjustment, TypeDeliveryConfirmation, TypePartialDelivery:
		return true
	default:
		return false
	}
}

// AllowedOrderStatuses lists the order statuses in which an amendment of this type may be proposed.
func (t Type) AllowedOrderStatuses() []order.Status {
	if t.IsPostConfirmation() {
		return []order.Status{order.Confirmed, order.InTransit, order.Shipped, order.Delivered}
	}
	return []order.Status{order.Draft, order.Pending}
}

// AllowsField reports whether an amendment of this type may change field.
func (t Type) AllowsField(field order.Field) bool {
	if t.IsPostConfirmation() {
		return field == order.FieldReceivedQuantity
	}
	return field != order.FieldReceivedQuantity && field.Validate() == nil
}

// TypeForFields picks the label of a multi-field pre-confirmation proposal:
// the first populated field in the order unitPrice, deliveryDate,
// deliveryLocation, composition, quantity decides.
func TypeForFields(fields []order.Field) (Type, bool) {
	present := make(map[order.Field]bool, len(fields))
	for _, f := range fields {
		present[f] = true
	}

	precedence := []struct {
		field order.Field
		typ   Type
	}{
		{order.FieldUnitPrice, TypePriceChange},
		{order.FieldDeliveryDate, TypeDeliveryDateChange},
		{order.FieldDeliveryLocation, TypeDeliveryLocationChange},
		{order.FieldComposition, TypeCompositionChange},
		{order.FieldQuantity, TypeQuantityChange},
	}
	for _, p := range precedence {
		if present[p.field] {
			return p.typ, true
		}
	}
	return TypeUnknown, false
}

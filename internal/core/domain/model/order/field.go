package order

import (
	"fmt"

	"amendments/internal/pkg/errs"
)

// Field enumerates the order attributes an amendment may change.
type Field int

const (
	FieldUnknown Field = iota
	FieldQuantity
	FieldUnitPrice
	FieldDeliveryDate
	FieldDeliveryLocation
	FieldComposition
	FieldReceivedQuantity
)

// Kind is the value shape carried by a Field.
type Kind int

const (
	KindUnknown Kind = iota
	KindNumber
	KindDate
	KindText
	KindComposition
)

func getFieldStrings() map[Field]string {
	return map[Field]string{
		FieldQuantity:         "quantity",
		FieldUnitPrice:        "unitPrice",
		FieldDeliveryDate:     "deliveryDate",
		FieldDeliveryLocation: "deliveryLocation",
		FieldComposition:      "composition",
		FieldReceivedQuantity: "receivedQuantity",
	}
}

// Fields returns every amendable field in declaration order.
func Fields() []Field {
	return []Field{
		FieldQuantity,
		FieldUnitPrice,
		FieldDeliveryDate,
		FieldDeliveryLocation,
		FieldComposition,
		FieldReceivedQuantity,
	}
}

// ParseField resolves the wire name of a field, e.g. "unitPrice".
func ParseField(name string) (Field, error) {
	for f, s := range getFieldStrings() {
		if s == name {
			return f, nil
		}
	}
	return FieldUnknown, errs.NewValueIsInvalidErrorWithCause(
		"fieldName",
		fmt.Errorf("%q is not a mutable order field", name),
	)
}

func (f Field) String() string {
	if s, ok := getFieldStrings()[f]; ok {
		return s
	}
	return "unknown"
}

func (f Field) Validate() error {
	if _, ok := getFieldStrings()[f]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("fieldName", fmt.Errorf("%d is not a valid field", f))
	}
	return nil
}

// Kind reports the value shape stored in the field.
func (f Field) Kind() Kind {
	switch f {
	case FieldQuantity, FieldUnitPrice, FieldReceivedQuantity:
		return KindNumber
	case FieldDeliveryDate:
		return KindDate
	case FieldDeliveryLocation:
		return KindText
	case FieldComposition:
		return KindComposition
	case FieldUnknown:
		return KindUnknown
	}
	return KindUnknown
}

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindText:
		return "text"
	case KindComposition:
		return "composition"
	case KindUnknown:
		return "unknown"
	}
	return "unknown"
}

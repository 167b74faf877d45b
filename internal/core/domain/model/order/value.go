package order

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"amendments/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date encoding used for delivery dates.
const DateLayout = "2006-01-02"

// Value is a tagged union holding the content of one Field. A null value has a
// kind but no content and represents an unset order attribute, such as a
// received quantity that was never recorded.
type Value struct {
	kind        Kind
	null        bool
	number      decimal.Decimal
	date        time.Time
	text        string
	composition Composition
}

func NumberValue(d decimal.Decimal) Value {
	return Value{kind: KindNumber, number: d}
}

// DateValue truncates t to a UTC calendar date.
func DateValue(t time.Time) Value {
	y, m, d := t.Date()
	return Value{kind: KindDate, date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func TextValue(s string) Value {
	return Value{kind: KindText, text: s}
}

func CompositionValue(c Composition) Value {
	return Value{kind: KindComposition, composition: c}
}

// NullValue is the absent value of the given kind.
func NullValue(kind Kind) Value {
	return Value{kind: kind, null: true}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.null
}

// IsZero reports whether v is the uninitialised Value{}.
func (v Value) IsZero() bool {
	return v.kind == KindUnknown
}

func (v Value) Text() string {
	return v.text
}

func (v Value) Date() time.Time {
	return v.date
}

func (v Value) Number() decimal.Decimal {
	return v.number
}

func (v Value) Composition() Composition {
	return v.composition
}

func (v Value) IsEqual(other Value) bool {
	if v.kind != other.kind || v.null != other.null {
		return false
	}
	if v.null {
		return true
	}
	switch v.kind {
	case KindNumber:
		return v.number.Equal(other.number)
	case KindDate:
		return v.date.Equal(other.date)
	case KindText:
		return v.text == other.text
	case KindComposition:
		return v.composition.IsEqual(other.composition)
	case KindUnknown:
		return true
	}
	return false
}

// String renders the value for human-readable descriptions. Null renders as "none".
func (v Value) String() string {
	if v.null {
		return "none"
	}
	switch v.kind {
	case KindNumber:
		return v.number.String()
	case KindDate:
		return v.date.Format(DateLayout)
	case KindText:
		return v.text
	case KindComposition:
		return v.composition.String()
	case KindUnknown:
		return ""
	}
	return ""
}

// Encode returns the canonical persisted form and false for null values.
// Numbers use their decimal string, dates use DateLayout, compositions are JSON objects.
func (v Value) Encode() (string, bool) {
	if v.null || v.kind == KindUnknown {
		return "", false
	}
	switch v.kind {
	case KindNumber:
		return v.number.String(), true
	case KindDate:
		return v.date.Format(DateLayout), true
	case KindText:
		return v.text, true
	case KindComposition:
		raw, err := json.Marshal(v.composition)
		if err != nil {
			return "", false
		}
		return string(raw), true
	case KindUnknown:
	}
	return "", false
}

// DecodeValue is the inverse of Value.Encode for a value of the given field.
// A nil raw value decodes to the field's null value.
func DecodeValue(field Field, raw *string) (Value, error) {
	kind := field.Kind()
	if kind == KindUnknown {
		return Value{}, field.Validate()
	}
	if raw == nil {
		return NullValue(kind), nil
	}
	return parseValue(field, *raw)
}

// ParseJSONValue converts a JSON request payload into a Value for field.
// Numbers may be sent as JSON numbers or strings, dates as "YYYY-MM-DD" or
// RFC 3339 timestamps, compositions as an object of percentages. JSON null
// yields the field's null value.
func ParseJSONValue(field Field, data json.RawMessage) (Value, error) {
	kind := field.Kind()
	if kind == KindUnknown {
		return Value{}, field.Validate()
	}
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return NullValue(kind), nil
	}

	switch kind {
	case KindNumber:
		var d decimal.Decimal
		if err := d.UnmarshalJSON([]byte(trimmed)); err != nil {
			return Value{}, errs.NewValueIsInvalidErrorWithCause(field.String(), err)
		}
		return NumberValue(d), nil
	case KindComposition:
		var c Composition
		if err := c.UnmarshalJSON([]byte(trimmed)); err != nil {
			return Value{}, err
		}
		return CompositionValue(c), nil
	case KindDate, KindText:
		var s string
		if err := json.Unmarshal([]byte(trimmed), &s); err != nil {
			return Value{}, errs.NewValueIsInvalidErrorWithCause(field.String(), fmt.Errorf("expected a string: %w", err))
		}
		return parseValue(field, s)
	case KindUnknown:
	}
	return Value{}, field.Validate()
}

func parseValue(field Field, raw string) (Value, error) {
	switch field.Kind() {
	case KindNumber:
		d, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return Value{}, errs.NewValueIsInvalidErrorWithCause(field.String(), err)
		}
		return NumberValue(d), nil
	case KindDate:
		s := strings.TrimSpace(raw)
		if t, err := time.Parse(DateLayout, s); err == nil {
			return DateValue(t), nil
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return Value{}, errs.NewValueIsInvalidErrorWithCause(field.String(), err)
		}
		return DateValue(t.UTC()), nil
	case KindText:
		return TextValue(raw), nil
	case KindComposition:
		var c Composition
		if err := c.UnmarshalJSON([]byte(raw)); err != nil {
			return Value{}, err
		}
		return CompositionValue(c), nil
	case KindUnknown:
	}
	return Value{}, field.Validate()
}

// MarshalJSON renders numbers as strings, dates as "YYYY-MM-DD", compositions as objects and null as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.null || v.kind == KindUnknown {
		return []byte("null"), nil
	}
	if v.kind == KindComposition {
		return json.Marshal(v.composition)
	}
	s, _ := v.Encode()
	return json.Marshal(s)
}

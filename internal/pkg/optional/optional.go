// Package optional models patch fields that distinguish "omitted" from "explicitly cleared".
package optional

import (
	"bytes"
	"encoding/json"
)

// Value is a three-state field: omitted, set to null, or set to a value.
// The zero Value is omitted.
type Value[T any] struct {
	set   bool
	null  bool
	value T
}

// Of returns a Value carrying v.
func Of[T any](v T) Value[T] {
	return Value[T]{set: true, value: v}
}

// Null returns a Value that was explicitly cleared.
func Null[T any]() Value[T] {
	return Value[T]{set: true, null: true}
}

// IsSet reports whether the field was provided at all, null included.
func (v Value[T]) IsSet() bool {
	return v.set
}

// IsNull reports whether the field was provided as an explicit null.
func (v Value[T]) IsNull() bool {
	return v.set && v.null
}

// Get returns the carried value and true when the field was set to a non-null value.
func (v Value[T]) Get() (T, bool) {
	if !v.set || v.null {
		var zero T
		return zero, false
	}
	return v.value, true
}

// OrElse returns the carried value or fallback when omitted or null.
func (v Value[T]) OrElse(fallback T) T {
	if val, ok := v.Get(); ok {
		return val
	}
	return fallback
}

// UnmarshalJSON is only invoked for keys present in the document, which is what
// makes omitted and null distinguishable.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	v.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		v.null = true
		var zero T
		v.value = zero
		return nil
	}
	v.null = false
	return json.Unmarshal(data, &v.value)
}

func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.set || v.null {
		return []byte("null"), nil
	}
	return json.Marshal(v.value)
}

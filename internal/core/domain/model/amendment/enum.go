package amendment

import (
	"fmt"

	"amendments/internal/pkg/errs"
)

// enumName and parseEnum back the string conversions of every enum in this package.
func enumName[E comparable](names map[E]string, v E) string {
	if s, ok := names[v]; ok {
		return s
	}
	return "unknown"
}

func parseEnum[E comparable](names map[E]string, param, raw string) (E, error) {
	for v, s := range names {
		if s == raw {
			return v, nil
		}
	}
	var zero E
	return zero, errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%q is not a valid %s", raw, param))
}

func validateEnum[E comparable](names map[E]string, param string, v E) error {
	if _, ok := names[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%v is not a valid %s", v, param))
	}
	return nil
}

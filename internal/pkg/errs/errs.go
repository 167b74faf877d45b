package errs

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrObjectNotFound       = errors.New("object not found")
	ErrValueIsInvalid       = errors.New("value is invalid")
	ErrValueIsOutOfRange    = errors.New("value is out of range")
	ErrValueIsRequired      = errors.New("value is required")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrStatusConflict       = errors.New("status conflict")
	ErrBusinessRuleViolated = errors.New("business rule violated")
	ErrExpired              = errors.New("expired")
	ErrConcurrencyConflict  = errors.New("concurrency conflict")
	ErrIntegrationFailed    = errors.New("integration failed")
)

// IsValidation reports whether err belongs to the input validation family.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsOutOfRange)
}

func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.Join(strings.Fields(s), " ")
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// ObjectNotFoundError is returned when a lookup by identifier yields nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// PermissionDeniedError means the calling company is not the party allowed to perform Action.
type PermissionDeniedError struct {
	Subject string
	Action  string
}

func NewPermissionDeniedError(subject, action string) *PermissionDeniedError {
	return &PermissionDeniedError{Subject: subject, Action: action}
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("%s: %s may not %s", ErrPermissionDenied, e.Subject, e.Action)
}

func (e *PermissionDeniedError) Unwrap() error {
	return ErrPermissionDenied
}

// StatusConflictError names the current status of Entity and the statuses that would have allowed the action.
type StatusConflictError struct {
	Entity  string
	Current string
	Allowed []string
}

func NewStatusConflictError(entity, current string, allowed ...string) *StatusConflictError {
	return &StatusConflictError{Entity: entity, Current: current, Allowed: allowed}
}

func (e *StatusConflictError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("%s: %s is %s, no further transitions are allowed", ErrStatusConflict, e.Entity, e.Current)
	}
	return fmt.Sprintf("%s: %s is %s, allowed statuses are %s",
		ErrStatusConflict, e.Entity, e.Current, strings.Join(e.Allowed, ", "))
}

func (e *StatusConflictError) Unwrap() error {
	return ErrStatusConflict
}

type BusinessRuleViolationError struct {
	Rule   string
	Detail string
}

func NewBusinessRuleViolationError(rule, detail string) *BusinessRuleViolationError {
	return &BusinessRuleViolationError{Rule: rule, Detail: detail}
}

func (e *BusinessRuleViolationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", ErrBusinessRuleViolated, e.Rule)
	}
	return fmt.Sprintf("%s: %s: %s", ErrBusinessRuleViolated, e.Rule, e.Detail)
}

func (e *BusinessRuleViolationError) Unwrap() error {
	return ErrBusinessRuleViolated
}

type ExpiredError struct {
	Entity    string
	Reference string
	ExpiredAt time.Time
}

func NewExpiredError(entity, reference string, expiredAt time.Time) *ExpiredError {
	return &ExpiredError{Entity: entity, Reference: reference, ExpiredAt: expiredAt}
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("%s: %s %s expired at %s",
		ErrExpired, e.Entity, e.Reference, e.ExpiredAt.UTC().Format(time.RFC3339))
}

func (e *ExpiredError) Unwrap() error {
	return ErrExpired
}

// ConcurrencyConflictError is returned when a write loses against a concurrent one at commit time.
type ConcurrencyConflictError struct {
	Entity string
	Cause  error
}

func NewConcurrencyConflictError(entity string) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{Entity: entity}
}

func NewConcurrencyConflictErrorWithCause(entity string, cause error) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{Entity: entity, Cause: cause}
}

func (e *ConcurrencyConflictError) Error() string {
	return withCause(fmt.Sprintf("%s: %s was modified concurrently", ErrConcurrencyConflict, e.Entity), e.Cause)
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrencyConflict
}

type IntegrationError struct {
	System string
	Cause  error
}

func NewIntegrationError(system string, cause error) *IntegrationError {
	return &IntegrationError{System: system, Cause: cause}
}

func (e *IntegrationError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrIntegrationFailed, e.System), e.Cause)
}

func (e *IntegrationError) Unwrap() error {
	return ErrIntegrationFailed
}

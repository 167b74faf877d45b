// Package errs provides the error taxonomy shared by the amendment engine.
//
// Every error type follows the same shape:
//   - a sentinel error variable (e.g. ErrStatusConflict) used for classification with errors.Is
//   - a struct carrying the details of the failure
//   - constructors, with and without a cause where a cause makes sense
//   - an Unwrap method returning the sentinel
//
// Families:
//   - validation: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError (see IsValidation)
//   - lookups: ObjectNotFoundError
//   - authorization: PermissionDeniedError
//   - lifecycle: StatusConflictError, ExpiredError
//   - business rules: BusinessRuleViolationError
//   - persistence races: ConcurrencyConflictError
//   - external systems: IntegrationError
//
// Boundary layers translate the sentinels into client-facing codes; nothing in this
// package knows about transports.
package errs

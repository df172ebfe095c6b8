// Package errs provides standardized error types for the repair-order service.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The central type is DomainError, which carries the {operation, order_id,
// code, message} payload reported in batch responses. Every DomainError
// unwraps to a sentinel error keyed by its ErrorCode, so call sites can
// classify failures with errors.Is without inspecting the code field.
//
// The package also includes general-purpose validation errors:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is present but invalid
//   - ObjectNotFoundError: an object cannot be located
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
package errs

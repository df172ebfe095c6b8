package errs

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies a domain failure. Codes are stable identifiers that
// travel with the batch response and must not be renamed.
type ErrorCode string

const (
	CodeInvalidOperation             ErrorCode = "INVALID_OPERATION"
	CodeOrderCancelled               ErrorCode = "ORDER_CANCELLED"
	CodeSequenceError                ErrorCode = "SEQUENCE_ERROR"
	CodeNotAllowedAfterAuthorization ErrorCode = "NOT_ALLOWED_AFTER_AUTHORIZATION"
	CodeNoServices                   ErrorCode = "NO_SERVICES"
	CodeRequiresReauth               ErrorCode = "REQUIRES_REAUTH"
)

// Sentinel errors, one per ErrorCode. DomainError.Unwrap returns the sentinel
// matching its code so callers can classify failures with errors.Is.
var (
	ErrInvalidOperation             = errors.New("invalid operation")
	ErrOrderCancelled               = errors.New("order is cancelled")
	ErrSequenceError                = errors.New("invalid status transition")
	ErrNotAllowedAfterAuthorization = errors.New("services cannot be modified after authorization")
	ErrNoServices                   = errors.New("no services to authorize")
	ErrRequiresReauth               = errors.New("real cost exceeds the authorized limit")
)

var sentinelByCode = map[ErrorCode]error{
	CodeInvalidOperation:             ErrInvalidOperation,
	CodeOrderCancelled:               ErrOrderCancelled,
	CodeSequenceError:                ErrSequenceError,
	CodeNotAllowedAfterAuthorization: ErrNotAllowedAfterAuthorization,
	CodeNoServices:                   ErrNoServices,
	CodeRequiresReauth:               ErrRequiresReauth,
}

// DomainError is a typed domain failure. It carries the operation that
// triggered it, the order it concerns, a stable code, and a human-readable
// message. A DomainError aborts only the command that raised it; the batch
// dispatcher records it and continues.
type DomainError struct {
	Operation string
	OrderID   string
	Code      ErrorCode
	Message   string
}

// NewDomainError creates a domain failure for the given operation and order.
func NewDomainError(operation, orderID string, code ErrorCode, message string) *DomainError {
	return &DomainError{
		Operation: operation,
		OrderID:   orderID,
		Code:      code,
		Message:   message,
	}
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s (op: %s, order: %s)", e.Code, sanitize(e.Message), e.Operation, e.OrderID)
}

func (e *DomainError) Unwrap() error {
	if sentinel, ok := sentinelByCode[e.Code]; ok {
		return sentinel
	}
	return ErrInvalidOperation
}

// ErrValueIsRequired indicates a required value was not provided.
var ErrValueIsRequired = errors.New("value is required")

// ValueIsRequiredError is returned when a required parameter is missing.
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
	if e.Cause != nil {
		return fmt.Sprintf("value is required: %s (cause: %s)", e.ParamName, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("value is required: %s", e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ErrValueIsInvalid indicates a value failed validation.
var ErrValueIsInvalid = errors.New("value is invalid")

// ValueIsInvalidError is returned when a parameter is present but invalid.
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
	if e.Cause != nil {
		return fmt.Sprintf("value is invalid: %s (cause: %s)", e.ParamName, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("value is invalid: %s", e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ErrObjectNotFound indicates a lookup failed to locate an object.
var ErrObjectNotFound = errors.New("object not found")

// ObjectNotFoundError is returned when an object cannot be located by id.
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
		return fmt.Sprintf("object not found: param is: %s, ID is: %v (cause: %s)",
			e.ParamName, e.ID, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("object not found: %v", e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// sanitize collapses newlines so error messages stay single-line in logs.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}

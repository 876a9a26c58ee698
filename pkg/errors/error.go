// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid months, unknown fields, bad configuration
//   - Data/Resource errors (200-299): Data not found, query failures, unavailable sources
//   - Report errors (300-399): Report computation failures
//   - Output errors (400-499): Writer and renderer failures
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeInvalidMonth, "month must be between 1 and 12")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeUnknownField, "unknown field %q", name)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeQueryFailed, "failed to execute query", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeUnknownField) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error if it's an *Error type.
// Returns ErrCodeUnknown if the error is not an *Error type.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// RequestError represents a report request that cannot be served,
// carrying the offending (year, month, field) triple so callers can
// see exactly which entry of a request list aborted the run.
type RequestError struct {
	Index int    // Position of the request in the submitted list
	Year  int    // Requested year
	Month int    // Requested month, possibly outside 1..12
	Field string // Requested field name
	Cause error  // Underlying validation error
}

// NewRequestError creates a new RequestError for the request at the given index.
func NewRequestError(index, year, month int, field string, cause error) *RequestError {
	return &RequestError{
		Index: index,
		Year:  year,
		Month: month,
		Field: field,
		Cause: cause,
	}
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("request %d (%04d-%02d %s): %v", e.Index, e.Year, e.Month, e.Field, e.Cause)
}

// Unwrap returns the underlying validation error, keeping the error
// code visible to GetCode and HasCode through the chain.
func (e *RequestError) Unwrap() error {
	return e.Cause
}

// IsRequestError checks if an error is a RequestError.
// It uses errors.As to check the error chain.
func IsRequestError(err error) bool {
	var requestErr *RequestError

	return errors.As(err, &requestErr)
}

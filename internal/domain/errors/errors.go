package errors

import (
	"net/http"

	"minmod/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Is matches any BaseError carrying the same error code, including WithDetails copies.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)

	return ok && t.errorCode == e.errorCode
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// ErrNoData is returned when the backend returned no site for any requested commodity
	ErrNoData = NewBaseError(
		http.StatusNotFound,
		"NO_DATA",
		"No grade-tonnage data available for the selected commodities",
		"",
	)

	// ErrAllFiltered is returned when sites were returned but none survived normalization
	ErrAllFiltered = NewBaseError(
		http.StatusUnprocessableEntity,
		"ALL_ROWS_FILTERED",
		"All returned sites lack a valid location, tonnage or grade",
		"",
	)

	ErrInvalidCommodity = NewBaseError(
		http.StatusBadRequest,
		"INVALID_COMMODITY",
		"At least one commodity is required",
		"",
	)

	ErrInvalidThreshold = NewBaseError(
		http.StatusBadRequest,
		"INVALID_THRESHOLD",
		"Proximity threshold must be a finite, non-negative number",
		"",
	)

	// ErrTooManySites guards the O(n^2) distance matrix computation
	ErrTooManySites = NewBaseError(
		http.StatusRequestEntityTooLarge,
		"TOO_MANY_SITES",
		"Too many sites to aggregate in one request",
		"",
	)
)

// UpstreamError represents a failure of the MinMod data service, implementing the AppError interface
type UpstreamError struct {
	err     error
	details string
}

// NewUpstreamError creates a data-service related error
func NewUpstreamError(err error, details string) AppError {
	return &UpstreamError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *UpstreamError) Error() string {
	return errors.Wrap(e.err, "data service request failed").Error()
}

// Unwrap returns the underlying cause
func (e *UpstreamError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *UpstreamError) HTTPCode() int {
	return http.StatusBadGateway
}

// ErrorCode returns the business error code
func (e *UpstreamError) ErrorCode() string {
	return "UPSTREAM_UNAVAILABLE"
}

// Message returns the user-friendly error message
func (e *UpstreamError) Message() string {
	return "The MinMod data service could not be reached"
}

// Details returns detailed error information
func (e *UpstreamError) Details() string {
	return e.details
}

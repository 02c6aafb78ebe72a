// Package errors defines the structured error type used at the service boundary.
// Engine code degrades to fallback values instead of failing; these errors surface
// only from request validation, startup wiring and diagnostic operations.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Code identifies a class of failure independent of its message
type Code string

const (
	CodeInvalidRequest     Code = "invalid_request"
	CodeNotFound           Code = "not_found"
	CodeRateLimitExceeded  Code = "rate_limit_exceeded"
	CodeInternal           Code = "internal_error"
	CodeServiceUnavailable Code = "service_unavailable"
	CodeReferenceLoad      Code = "reference_load_failed"
	CodeCache              Code = "cache_error"
	CodeUpstream           Code = "upstream_error"
)

const (
	countryCodeHint = "Country code must be a valid ISO-3 code (e.g., USA, CHN, GBR)"
	sectorCodeHint  = "Sector code must be a valid OECD sector code (e.g., B06, C10-C12)"
)

// ================================================================================
// AppError
// ================================================================================

// AppError represents a structured application error
type AppError struct {
	Code        Code
	HTTPStatus  int
	Message     string
	Description string
	Details     map[string]string
	cause       error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.cause
}

// WithError attaches a cause to the error chain
func (e *AppError) WithError(cause error) *AppError {
	e.cause = cause
	return e
}

// WithDetail adds a single key-value detail
func (e *AppError) WithDetail(key, value string) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// StatusText returns the canonical reason phrase for the error's HTTP status
func (e *AppError) StatusText() string {
	return http.StatusText(e.HTTPStatus)
}

// ================================================================================
// Error Constructor
// ================================================================================

// New creates a new AppError with the specified parameters
func New(code Code, httpStatus int, message, description string) *AppError {
	return &AppError{
		Code:        code,
		HTTPStatus:  httpStatus,
		Message:     message,
		Description: description,
	}
}

// ================================================================================
// Predefined Error Constructors
// ================================================================================

// ErrInvalidRequest creates an invalid_request error
func ErrInvalidRequest(message, description string) *AppError {
	return New(CodeInvalidRequest, http.StatusBadRequest, message, description)
}

// ErrMissingCountry reports an absent country query parameter
func ErrMissingCountry() *AppError {
	return ErrInvalidRequest("Missing required parameter: country", countryCodeHint)
}

// ErrMissingSector reports an absent sector query parameter
func ErrMissingSector() *AppError {
	return ErrInvalidRequest("Missing required parameter: sector", sectorCodeHint)
}

// ErrUnknownCountry reports a country code absent from the reference tables
func ErrUnknownCountry(code string) *AppError {
	return ErrInvalidRequest(fmt.Sprintf("Invalid country code: %s", code), countryCodeHint).
		WithDetail("country", code)
}

// ErrUnknownSector reports a sector code absent from the reference tables
func ErrUnknownSector(code string) *AppError {
	return ErrInvalidRequest(fmt.Sprintf("Invalid sector code: %s", code), sectorCodeHint).
		WithDetail("sector", code)
}

// ErrInternalServer creates a generic internal error
func ErrInternalServer(message string) *AppError {
	return New(CodeInternal, http.StatusInternalServerError, message, "")
}

// ErrRateLimited is returned when a client exceeds its request budget
func ErrRateLimited(scope string) *AppError {
	return New(CodeRateLimitExceeded, http.StatusTooManyRequests,
		"Rate limit exceeded", "Too many requests, retry later").
		WithDetail("scope", scope)
}

// ErrReferenceLoad wraps failures while loading reference tables
func ErrReferenceLoad(source string, cause error) *AppError {
	return New(CodeReferenceLoad, http.StatusInternalServerError,
		fmt.Sprintf("failed to load reference tables from %s", source), "").
		WithError(cause)
}

// ErrCache wraps failures of the shared expected-loss store
func ErrCache(op string, cause error) *AppError {
	return New(CodeCache, http.StatusServiceUnavailable,
		fmt.Sprintf("cache operation %s failed", op), "").
		WithError(cause)
}

// ErrUpstream describes an unusable hazard-service reply
func ErrUpstream(message string) *AppError {
	return New(CodeUpstream, http.StatusBadGateway, message, "")
}

// ErrNotFound creates a not_found error for a route or resource
func ErrNotFound(resource string) *AppError {
	return New(CodeNotFound, http.StatusNotFound, fmt.Sprintf("%s not found", resource), "")
}

// ================================================================================
// Helpers
// ================================================================================

// AsAppError extracts an *AppError from an error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HTTPStatus returns the status an error should be reported with
func HTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// Is reports whether err carries the given code
func Is(err error, code Code) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

//Personal.AI order the ending

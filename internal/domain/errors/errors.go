// Package errors defines the application's error taxonomy. Every failure a
// caller can observe maps to one of the AppError values below; the delivery
// layer translates them to transport status codes.
package errors

import (
	"net/http"

	"passport/internal/errors"
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

// Is matches two BaseErrors by business code, so copies produced by
// WithDetails still compare equal to their predefined value.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)

	return ok && other.errorCode == e.errorCode
}

// WithDetails returns a copy of the error carrying detailed information
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
	// ErrInvalidInput covers malformed or out-of-range request data. Caller
	// error; never retried.
	ErrInvalidInput = NewBaseError(
		http.StatusBadRequest,
		"INVALID_INPUT",
		"invalid request data",
		"",
	)

	// ErrDuplicateIdentity covers uniqueness collisions on email or platform ID.
	// The orchestrator retries the lookup once to resolve create races; if the
	// collision persists it is surfaced.
	ErrDuplicateIdentity = NewBaseError(
		http.StatusConflict,
		"DUPLICATE_IDENTITY",
		"identity already registered",
		"",
	)

	// ErrInvalidCredentials covers wrong passwords, unknown or expired tokens,
	// and missing profiles. Surfaced identically regardless of which check
	// failed so callers cannot probe for account existence.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"invalid credentials",
		"",
	)

	// ErrInvalidAssertion covers federated or platform assertion failures:
	// bad signature, wrong audience or issuer, expired or replayed payloads.
	ErrInvalidAssertion = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_ASSERTION",
		"identity assertion rejected",
		"",
	)

	// ErrStoreUnavailable covers credential/token store failures. Safe for the
	// caller to retry; never retried inside the core.
	ErrStoreUnavailable = NewBaseError(
		http.StatusInternalServerError,
		"STORE_UNAVAILABLE",
		"storage backend unavailable",
		"",
	)

	// ErrProfileUnavailable covers profile-collaborator transport failures,
	// as opposed to a profile that is genuinely absent.
	ErrProfileUnavailable = NewBaseError(
		http.StatusInternalServerError,
		"PROFILE_UNAVAILABLE",
		"profile service unavailable",
		"",
	)

	// ErrNotFound is the generic missing-resource error for the profile surface.
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"resource not found",
		"",
	)

	// ErrForbidden is returned when an authenticated caller lacks the required role.
	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"access denied",
		"",
	)

	// ErrInternal is the fallback for unexpected failures.
	ErrInternal = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)
)

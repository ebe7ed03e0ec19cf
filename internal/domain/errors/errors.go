package errors

import (
	"net/http"

	"libris/internal/errors"
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
	// ErrAuthenticationFailed covers both an unknown login and a wrong
	// password. The message is deliberately generic so the two cases are
	// indistinguishable to a caller probing for valid logins.
	ErrAuthenticationFailed = NewBaseError(
		http.StatusUnauthorized,
		"AUTHENTICATION_FAILED",
		"incorrect login or password",
		"",
	)

	// ErrInvalidClient covers both an unknown client id and a wrong client
	// secret at the token endpoint, again without distinguishing the two.
	ErrInvalidClient = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CLIENT",
		"invalid client",
		"",
	)

	// ErrInvalidGrant is returned for a grant the client may use but whose
	// payload does not check out (bad code, bad refresh token).
	ErrInvalidGrant = NewBaseError(
		http.StatusBadRequest,
		"INVALID_GRANT",
		"invalid grant",
		"",
	)

	// ErrUnsupportedGrantType is returned for a grant type the client is not
	// registered for or the server does not implement.
	ErrUnsupportedGrantType = NewBaseError(
		http.StatusBadRequest,
		"UNSUPPORTED_GRANT_TYPE",
		"unsupported grant type",
		"",
	)

	// ErrInvalidToken is surfaced when no valid credential is present on a
	// request: expired token, bad signature, malformed header.
	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"invalid or expired token",
		"",
	)

	// ErrAccessDenied is the 403 counterpart: the caller is authenticated
	// but lacks the role an endpoint requires.
	ErrAccessDenied = NewBaseError(
		http.StatusForbidden,
		"ACCESS_DENIED",
		"access denied",
		"",
	)

	ErrFederatedAssertionInvalid = NewBaseError(
		http.StatusUnauthorized,
		"FEDERATED_ASSERTION_INVALID",
		"federated login assertion rejected",
		"",
	)

	ErrDuplicateRecord = NewBaseError(
		http.StatusConflict,
		"DUPLICATE_RECORD",
		"record already exists",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"resource not found",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	ErrNotImplemented = NewBaseError(
		http.StatusNotImplemented,
		"NOT_IMPLEMENTED",
		"operation not supported",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)
)

// DatabaseExecuteError represents a store/infrastructure failure. It is kept
// distinct from the authentication taxonomy so monitoring can separate "bad
// password" from "store is down"; resolvers never coerce it into
// ErrAuthenticationFailed.
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// Unwrap exposes the underlying driver error for errors.Is/As checks.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// Package errors provides structured error handling with machine codes.
package errors

import (
	stderrors "errors"
	"net/http"
)

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Internal message (for logs)
	Metadata map[string]string // Additional context
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a simple domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var domainErr *Error
	if stderrors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// HTTPStatus maps a domain error code to the HTTP status the web surface
// reports for it. Unknown codes map to 500.
func HTTPStatus(err error) int {
	var domainErr *Error
	if !stderrors.As(err, &domainErr) {
		return http.StatusInternalServerError
	}
	switch domainErr.Code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeCatalogInvalidCategory, CodeCatalogInvalidKind, CodeProfileInvalidRole,
		CodeEditUnknownField, CodeIntentInvalid:
		return http.StatusBadRequest
	case CodeIntentUnknown:
		return http.StatusNotFound
	case CodeEditSaveInFlight:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

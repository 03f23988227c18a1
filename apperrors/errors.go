// Package apperrors is the error taxonomy shared by the store, the handlers and
// the global error middleware. Every error that reaches the HTTP boundary is
// either an *AppError or gets rendered as a generic DatabaseError.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	pkgerrors "github.com/pkg/errors"
)

// Kind classifies an AppError. It doubles as the machine-readable code sent to clients.
type Kind string

const (
	KindValidation     Kind = "VALIDATION_ERROR"
	KindAuthentication Kind = "AUTHENTICATION_ERROR"
	KindAuthorization  Kind = "AUTHORIZATION_ERROR"
	KindNotFound       Kind = "NOT_FOUND"
	KindConflict       Kind = "CONFLICT"
	KindDatabase       Kind = "DATABASE_ERROR"
)

// Status returns the HTTP status for the kind.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// AppError is a classified application error.
type AppError struct {
	Kind    Kind   `json:"code"`
	Message string `json:"message"`

	// FieldErrors carries per-field binding failures.
	FieldErrors []FieldError `json:"fields,omitempty"`

	// Err is the wrapped cause; never rendered in production.
	Err error `json:"-"`
}

// FieldError describes one field that failed validation.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// HTTPStatus is the response status for this error.
func (e *AppError) HTTPStatus() int { return e.Kind.Status() }

// New creates an AppError of the given kind.
func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// Validation creates a 400 error.
func Validation(format string, args ...any) *AppError {
	return New(KindValidation, fmt.Sprintf(format, args...))
}

// Authentication creates a 401 error.
func Authentication(format string, args ...any) *AppError {
	return New(KindAuthentication, fmt.Sprintf(format, args...))
}

// Authorization creates a 403 error.
func Authorization(format string, args ...any) *AppError {
	return New(KindAuthorization, fmt.Sprintf(format, args...))
}

// NotFound creates a 404 error.
func NotFound(format string, args ...any) *AppError {
	return New(KindNotFound, fmt.Sprintf(format, args...))
}

// Conflict creates a 409 error.
func Conflict(format string, args ...any) *AppError {
	return New(KindConflict, fmt.Sprintf(format, args...))
}

// Database wraps a store failure. The cause keeps a stack trace for development mode.
func Database(err error, message string) *AppError {
	return &AppError{
		Kind:    KindDatabase,
		Message: message,
		Err:     pkgerrors.WithStack(err),
	}
}

// WithCause attaches the underlying error.
func (e *AppError) WithCause(err error) *AppError {
	if e == nil {
		return e
	}
	e.Err = err
	return e
}

// WithFieldErrors attaches field-level details.
func (e *AppError) WithFieldErrors(fields []FieldError) *AppError {
	if e == nil || len(fields) == 0 {
		return e
	}
	e.FieldErrors = fields
	return e
}

// IsAppError reports whether err wraps an AppError and returns it.
func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the kind of err, KindDatabase for unclassified errors and "" for nil.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	if appErr, ok := IsAppError(err); ok {
		return appErr.Kind
	}
	return KindDatabase
}

// Is reports whether err is an AppError of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

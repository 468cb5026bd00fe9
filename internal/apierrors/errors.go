// Package apierrors defines the boundary error taxonomy returned to API
// clients. Services return *APIError for expected failures; anything else is
// mapped to an internal server error at the handler layer.
package apierrors

import (
	"net/http"

	"github.com/dtroode/habitkeeper-server/internal/model"
)

// APIError is a request-scoped error carrying the HTTP status to respond
// with. Completion, when set, is attached to the error response body.
type APIError struct {
	HTTPCode   int
	Message    string
	Completion *model.Completion
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// New creates an APIError with the given status code and message.
func New(code int, message string) *APIError {
	return &APIError{HTTPCode: code, Message: message}
}

// NewErrValidation reports malformed or missing input.
func NewErrValidation(message string) *APIError {
	return New(http.StatusBadRequest, message)
}

// NewErrEmailIsTaken reports a signup attempt with an already registered email.
func NewErrEmailIsTaken() *APIError {
	return New(http.StatusBadRequest, "User already exists")
}

// NewErrPasswordTooShort reports a password below the minimum length.
func NewErrPasswordTooShort() *APIError {
	return New(http.StatusBadRequest, "Password must be at least 6 characters")
}

// NewErrInvalidCredentials reports a failed login. Unknown email and wrong
// password are deliberately indistinguishable.
func NewErrInvalidCredentials() *APIError {
	return New(http.StatusUnauthorized, "Invalid credentials")
}

// NewErrInvalidHabitID reports a syntactically malformed habit identifier.
func NewErrInvalidHabitID() *APIError {
	return New(http.StatusBadRequest, "Invalid habit ID")
}

// NewErrInvalidDate reports a date that does not match YYYY-MM-DD.
func NewErrInvalidDate() *APIError {
	return New(http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
}

// NewErrMissingDate reports an absent date query parameter.
func NewErrMissingDate() *APIError {
	return New(http.StatusBadRequest, "Date parameter is required (format: YYYY-MM-DD)")
}

// NewErrHabitNotFound reports a habit that does not exist or is not owned by
// the caller. The two cases are deliberately merged so that habit existence
// is never leaked to non-owners.
func NewErrHabitNotFound() *APIError {
	return New(http.StatusNotFound, "Habit not found")
}

// NewErrAlreadyCompleted reports a second completion attempt for the same
// day. The conflicting existing record is attached for the caller.
func NewErrAlreadyCompleted(existing model.Completion) *APIError {
	return &APIError{
		HTTPCode:   http.StatusBadRequest,
		Message:    "Habit already completed for today",
		Completion: &existing,
	}
}

// NewErrMissingAuthorizationToken reports an absent bearer token.
func NewErrMissingAuthorizationToken() *APIError {
	return New(http.StatusUnauthorized, "Missing authorization token")
}

// NewErrInvalidAuthorizationToken reports an invalid or expired bearer token.
func NewErrInvalidAuthorizationToken() *APIError {
	return New(http.StatusUnauthorized, "Invalid or expired token")
}

// Package apperr defines the application error taxonomy. Every failure that is
// allowed to reach a handler carries an HTTP status classification and a
// user-facing message; anything else is a plain error and maps to 500.
package apperr

import (
	"errors"
	"net/http"
)

type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	// Token missing, expired and already-used are deliberately collapsed into
	// one message so callers cannot probe which of the three happened.
	ErrInvalidToken = &Error{Status: http.StatusUnauthorized, Message: "Invalid or expired token"}

	// Collision-retry exhaustion when minting a token. An operational problem
	// (entropy, runaway table), not a user error.
	ErrGenerateUniqueTokenFailed = &Error{Status: http.StatusInternalServerError, Message: "Failed to generate a unique token"}

	// The entity type handed to the search engine has no searchable columns
	// configured. A programming defect, not caller input.
	ErrSearchColumnsNotDefined = &Error{Status: http.StatusInternalServerError, Message: "Search columns are not defined for this resource"}

	// Search was requested but every provided term was empty.
	ErrSearchNoValues = &Error{Status: http.StatusBadRequest, Message: "Search requires at least one non-empty term"}

	ErrOperationFailed  = &Error{Status: http.StatusInternalServerError, Message: "Operation failed"}
	ErrUserNotFound     = &Error{Status: http.StatusNotFound, Message: "User not found"}
	ErrUnconfirmedEmail = &Error{Status: http.StatusForbidden, Message: "Please verify your email before logging in"}
)

// Status returns the HTTP classification for err, or 500 for anything
// that is not an *Error.
func Status(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// Message returns the user-facing message for err. Unexpected errors are
// masked so internal details never leak to the client.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal server error"
}

package apperr

import (
	"errors"
	"net/http"
)

// Kind is a stable, machine-checkable error category. Handlers dispatch
// on the kind, never on the message text.
type Kind string

const (
	// MissingCredentials is returned when a login omits the username or password.
	MissingCredentials Kind = "missing_credentials"

	// InvalidCredentials is returned when the password matches neither role secret.
	InvalidCredentials Kind = "invalid_credentials"

	// MissingToken is returned when a protected call carries no session token.
	MissingToken Kind = "missing_token"

	// InvalidToken is returned when no session matches the presented token.
	InvalidToken Kind = "invalid_token"

	// Blacklisted is returned when the principal is on the exclusion list,
	// whether at login or on a later authenticated call.
	Blacklisted Kind = "blacklisted"

	// Forbidden is returned for role or ownership violations.
	Forbidden Kind = "forbidden"

	// InvalidType is returned for a ping type outside the known set.
	InvalidType Kind = "invalid_type"

	// NotFound is returned when a ping id matches nothing.
	NotFound Kind = "not_found"
)

// Error pairs a kind for dispatch with a message for humans.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// New builds an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf extracts the kind from err, or "" when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Status maps an error onto the HTTP status the surface reports for it.
func Status(err error) int {
	switch KindOf(err) {
	case MissingCredentials, InvalidType:
		return http.StatusBadRequest
	case InvalidCredentials, MissingToken, InvalidToken:
		return http.StatusUnauthorized
	case Blacklisted, Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

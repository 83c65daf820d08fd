package services

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced to users verbatim; the handler layer maps them onto
// HTTP statuses.
var (
	ErrUnauthorized       = errors.New("Unauthorized")
	ErrTeamNotFound       = errors.New("Team not found")
	ErrUserNotFound       = errors.New("User not found")
	ErrEntryNotFound      = errors.New("Waitlist entry not found")
	ErrRegistrationClosed = errors.New("Registration is closed")
	ErrInvalidCredentials = errors.New("Invalid credentials")
)

// ValidationError is a user-facing rule violation: a run cap exceeded, a
// malformed team, a bad enum value.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

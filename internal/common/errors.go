// Package common defines shared constants and sentinel errors used across
// client and server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Auth errors. ErrInvalidCredentials covers both an unknown
	// username and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrStalePrincipal     = errors.New("token subject no longer exists")
	ErrPermissionDenied   = errors.New("permission denied")

	// ErrStore wraps transient identity store failures so they are never
	// mistaken for credential failures.
	ErrStore = errors.New("identity store unavailable")

	// ErrInvalidInput marks precondition failures such as an empty password.
	ErrInvalidInput = errors.New("invalid input")
)

// IsAuthFailure reports whether err is one of the authentication failures
// that must be reported to the caller as a single "unauthorized" signal.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrStalePrincipal)
}

// Package common defines shared constants and sentinel errors used across
// the medidesk server. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Authentication outcomes. These form the closed set handlers map to
	// transport status codes.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRoleMismatch       = errors.New("account role does not match the requested role")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrStoreUnavailable   = errors.New("account store unavailable")

	// Configuration errors.
	ErrSecretTooShort = errors.New("secret key must be at least 32 characters")
)

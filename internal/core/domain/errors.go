package domain

import "errors"

var (
	// ErrInvalidCredentials covers both "no such user" and "wrong password"
	// so that callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned when the normalized email already maps to a record.
	ErrEmailTaken = errors.New("email already registered")

	// ErrWeakPassword is returned when a password is shorter than MinPasswordLength.
	ErrWeakPassword = errors.New("password too short")

	// ErrInvalidResetCode covers a missing, mismatched, or unknown reset code.
	ErrInvalidResetCode = errors.New("invalid or expired reset code")

	// ErrExpiredResetCode is returned when the supplied code matched but the
	// reset window has elapsed.
	ErrExpiredResetCode = errors.New("reset code expired")

	// ErrUnknownProvider is returned for a provider name outside the supported set.
	ErrUnknownProvider = errors.New("unknown identity provider")

	// ErrUserNotFound is used by internal lookups only; it never surfaces on
	// authentication paths.
	ErrUserNotFound = errors.New("user not found")
)

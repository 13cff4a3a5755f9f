// Package common defines the sentinel errors shared across the task manager
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Validation errors. Field-specific failures wrap ErrValidation so the
	// HTTP layer can translate the whole family at once.
	ErrValidation = errors.New("validation error")

	// Conflict errors (unique email constraint).
	ErrEmailAlreadyRegistered = errors.New("email already registered")

	// Auth errors. ErrUnableToLogin is deliberately generic: it must not
	// reveal whether the email exists or the password was wrong.
	ErrUnableToLogin = errors.New("unable to login")
	ErrInvalidToken  = errors.New("invalid token")

	// Service-level errors (generic/internal flow control).
	ErrInternal = errors.New("internal error")
)

package service

import "errors"

// Error kinds the handlers map onto HTTP statuses. Services wrap these
// with context; handlers match with errors.Is and keep client-facing
// messages generic.
var (
	// ErrValidation marks a missing or malformed required field.
	ErrValidation = errors.New("validation failed")
	// ErrNotAuthorized marks a role or ownership mismatch.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrNotFound marks a missing entity.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable marks a failed or empty AI service call.
	ErrUnavailable = errors.New("AI service unavailable")
)

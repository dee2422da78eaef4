package services

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials is returned by Authenticate on a missing user or a
// secret mismatch. The caller cannot tell which.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError represents missing or malformed caller input. Surfaced at
// the boundary as HTTP 400 with the message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError means a referenced order or user is absent. Surfaced as a
// success-shaped {ok:false} response, not a distinct HTTP status.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

package apperr

import (
	"errors"
	"fmt"
)

// Domain errors shared by repositories, services and handlers.
// Handlers map them to HTTP status codes with errors.Is.
var (
	ErrValidation         = errors.New("validation error")      // 400
	ErrInvalidArgument    = errors.New("invalid argument")      // 400
	ErrConflict           = errors.New("already exists")        // 409
	ErrNotFound           = errors.New("not found")             // 404
	ErrUnauthenticated    = errors.New("unauthenticated")       // 401
	ErrInvalidCredentials = errors.New("invalid credentials")   // 401
	ErrInvalidToken       = fmt.Errorf("invalid token: %w", ErrUnauthenticated)
)

// FieldError is a validation failure for a single named input field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is makes every FieldError match ErrValidation.
func (e *FieldError) Is(target error) bool {
	return target == ErrValidation
}

// Field builds a FieldError.
func Field(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}

// InvalidArgument wraps ErrInvalidArgument with a caller-facing message.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// NotFound wraps ErrNotFound with the name of the missing thing.
func NotFound(what string) error {
	return fmt.Errorf("%s %w", what, ErrNotFound)
}

// Conflict wraps ErrConflict with a caller-facing message.
func Conflict(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrConflict)
}

package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is returned when a domain entity fails validation.
// Every *ValidationError unwraps to it.
var ErrValidation = errors.New("validation failed")

// ValidationError describes a single invalid field on a domain entity.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap returns ErrValidation so callers can match any validation failure.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

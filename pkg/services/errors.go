// Package services contains the caller-facing service layer over sessions:
// starting research runs and answering follow-up questions.
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionNotFound is returned for an unknown session identifier.
	ErrSessionNotFound = errors.New("session not found")

	// ErrResearchNotComplete is returned when Q&A or export is requested
	// before the session reached a terminal status.
	ErrResearchNotComplete = errors.New("research not yet complete")
)

// ValidationError wraps field-specific validation errors.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

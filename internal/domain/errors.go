package domain

import (
	"errors"
	"fmt"
)

// ErrStorageCorrupt marks durable session content that could not be decoded.
// It is logged and replaced by an empty collection, never returned to callers.
var ErrStorageCorrupt = errors.New("storage content is corrupt")

// ValidationError is bad user input. Fields maps a field name to its message
// when the error concerns a form.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (%d fields)", e.Message, len(e.Fields))
}

// NewValidationError creates a ValidationError without field details
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// CollaboratorError wraps a failure of a hosted collaborator (database, broker, cache).
// The local state that triggered the call is left unchanged so the action can be retried.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is or wraps a ValidationError
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsCollaborator reports whether err is or wraps a CollaboratorError
func IsCollaborator(err error) bool {
	var c *CollaboratorError
	return errors.As(err, &c)
}

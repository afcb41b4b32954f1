package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidSortMode = errors.New("invalid sort mode")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NoteError represents a failure resolving a note identifier
type NoteError struct {
	ID     string
	Reason string
}

func (e *NoteError) Error() string {
	return fmt.Sprintf("note %s: %s", e.ID, e.Reason)
}

func (e *NoteError) Is(target error) bool {
	return target == ErrNotFound
}

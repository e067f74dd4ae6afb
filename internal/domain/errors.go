package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared across services and repositories.
var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyRegistered  = errors.New("already registered for event")
	ErrCapacityExceeded   = errors.New("event capacity exceeded")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrRetryLater is returned when a storage-level uniqueness violation is
	// detected at insert time (two near-simultaneous submissions). The caller
	// should ask the user to retry; the stored state is consistent.
	ErrRetryLater = errors.New("processing conflict, retry")
)

// ValidationError carries per-field error message lists for a rejected form.
// It is returned as structured data, never persisted.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msgs := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// NewValidationError returns an empty ValidationError ready to collect field errors.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add appends a message to the error list of the given field.
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// HasErrors reports whether any field error was collected.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

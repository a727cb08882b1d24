package domain

import (
	"errors"
	"fmt"
)

// Error kinds shared across services and repositories. Handlers translate
// them into HTTP status codes: ValidationError -> 400, ErrNotFound -> 404,
// ErrConflict -> 409, anything else -> 500.

// ErrNotFound is returned when a referenced reservation, table or guest
// does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an operation cannot proceed because of the
// current occupancy state: seating an occupied table, finishing a free one,
// seating a non-booked reservation, removing an occupied table, or a table
// too small for the party.
var ErrConflict = errors.New("conflict")

// ValidationError rejects a client payload and names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validationf builds a ValidationError for the given field.
func Validationf(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Conflictf wraps ErrConflict with a human-readable reason.
func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrConflict)...)
}

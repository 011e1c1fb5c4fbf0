package repository

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when the requested record does not exist, or
// vanished between read and write.
var ErrNotFound = errors.New("record not found")

// ValidationError reports required fields missing from a create payload.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// IntegrityError means a persisted record failed to deserialize. This is a
// storage fault, never a not-found.
type IntegrityError struct {
	Table string
	Field string
	Err   error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("corrupt record in %s: field %q: %v", e.Table, e.Field, e.Err)
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}

package domain

import (
	"errors"
	"fmt"
)

// ValidationError is returned when user input violates a model invariant.
// It is never fatal; callers surface Reason to the user for correction.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StorageError is returned when a backing file cannot be read or written
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is or wraps a *ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStorage reports whether err is or wraps a *StorageError
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// ErrNotFound is wrapped by the per-store lookup errors
var ErrNotFound = errors.New("not found")

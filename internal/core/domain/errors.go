package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")

	// ErrEmptyPatch is returned for an update that names no column.
	ErrEmptyPatch error = &ValidationError{Field: "body", Message: "no fields to update"}
)

// ValidationError names the field that failed a presence rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// StorageError wraps any failure reported by the store: constraint
// violations, I/O errors, locked databases.
type StorageError struct {
	Op         string
	Constraint bool
	Err        error
}

func (e *StorageError) Error() string {
	return e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func IsStorageError(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr)
}

package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals that a lookup by id or email matched nothing.
	ErrNotFound = errors.New("record not found")
	// ErrConflict signals a duplicate email on account create or update.
	ErrConflict = errors.New("email already in use")
)

// ValidationError reports a field that failed the creation-time rules.
// Update patches are validated with the same rules, so both paths
// produce the same error shape.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StorageError wraps an I/O failure or a malformed durable document.
// At startup it is fatal; during a request it is surfaced untranslated.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err with the failed operation and backing file path.
func NewStorageError(op, path string, err error) *StorageError {
	return &StorageError{Op: op, Path: path, Err: err}
}

// IsStorage reports whether err is a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

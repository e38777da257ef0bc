// Package apperror defines the error kinds the read services surface to
// their callers. Handlers map them to HTTP statuses with errors.As/Is.
package apperror

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a point lookup matches no record.
var ErrNotFound = errors.New("transaction not found")

// ValidationError reports a malformed or out-of-range request parameter.
type ValidationError struct {
	Param   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Param, e.Message)
}

// Invalid builds a ValidationError for param with a formatted message.
func Invalid(param, format string, args ...any) *ValidationError {
	return &ValidationError{Param: param, Message: fmt.Sprintf(format, args...)}
}

// StorageError wraps a failure of the storage collaborator.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Storage wraps err as a StorageError for op. A nil err stays nil.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

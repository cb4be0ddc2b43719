package core

import (
	"errors"
	"fmt"

	"github.com/jonclaudedotnet/vectorvault/internal/encoding"
)

// Common errors
var (
	// ErrStorageUnavailable is returned when the database location cannot be
	// opened or created.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrNoReferenceVector is returned when a similarity query finds no record
	// near the target timestamp to use as reference.
	ErrNoReferenceVector = errors.New("no reference vector near target timestamp")

	// ErrMalformedInput is returned when a batch fails shape validation. The
	// whole batch is rejected; nothing is stored.
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvalidSourceType is returned when a source type tag is empty or
	// contains reserved characters.
	ErrInvalidSourceType = encoding.ErrInvalidSourceType

	// ErrStoreClosed is returned when trying to use a closed store.
	ErrStoreClosed = errors.New("store is closed")

	// ErrNotFound is returned when a requested batch does not exist.
	ErrNotFound = errors.New("not found")
)

// StoreError wraps errors with operation context.
type StoreError struct {
	Op  string // Operation name
	Err error  // Underlying error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("vectorvault: %v", e.Err)
	}
	return fmt.Sprintf("vectorvault: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target.
func (e *StoreError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// wrapError wraps an error with operation context.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

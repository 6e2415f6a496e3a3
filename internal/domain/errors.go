package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrUpload     = errors.New("upload rejected")
	ErrStore      = errors.New("store failure")

	ErrOrderNotFound    = errors.Wrap(ErrNotFound, "order")
	ErrMenuItemNotFound = errors.Wrap(ErrNotFound, "menu item")
	ErrImageTooLarge    = errors.Wrap(ErrUpload, "image exceeds size limit")
)

// Invalid builds a validation error with a user-facing reason.
func Invalid(format string, args ...interface{}) error {
	return errors.Wrap(ErrValidation, fmt.Sprintf(format, args...))
}

// StoreError wraps a failure coming from persistence or remote storage.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}

// Store returns nil for a nil err so callers can wrap unconditionally.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

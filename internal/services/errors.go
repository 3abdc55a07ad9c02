package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for caller mistakes; match with errors.Is. These are never
// retried automatically.
var (
	ErrInvalidRange     = errors.New("invalid range: end date before start date")
	ErrInvalidAmount    = errors.New("invalid amount: must be greater than zero")
	ErrInvalidFrequency = errors.New("invalid payment frequency")
	ErrEmptySelection   = errors.New("empty selection: no payment ids provided")
	ErrPersistence      = errors.New("persistence failure")
)

// PersistenceError wraps a store failure with the operation that hit it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return ErrPersistence
}

func persistenceErr(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// IsValidationError reports whether the error is due to invalid caller input.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidFrequency) ||
		errors.Is(err, ErrEmptySelection)
}

// ErrorKind returns the machine-checkable kind exposed past the boundary.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRange):
		return "invalid_range"
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrInvalidFrequency):
		return "invalid_frequency"
	case errors.Is(err, ErrEmptySelection):
		return "empty_selection"
	case errors.Is(err, ErrPersistence):
		return "persistence_error"
	default:
		return "internal_error"
	}
}

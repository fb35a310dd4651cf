package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound            = errors.New("resource not found")
	ErrCycleNotFound       = fmt.Errorf("%w: cycle", ErrNotFound)
	ErrPredictionNotFound  = fmt.Errorf("%w: prediction", ErrNotFound)
	ErrObservationNotFound = fmt.Errorf("%w: observation", ErrNotFound)

	// Validation errors
	ErrInvalidCycle       = errors.New("invalid cycle")
	ErrInvalidObservation = errors.New("invalid observation")
	ErrInvalidPrediction  = errors.New("invalid prediction")
	ErrInsufficientData   = errors.New("insufficient data for prediction")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewValidationError(sentinel error, field string, reason string) error {
	return fmt.Errorf("%w: validation failed for %s: %s", sentinel, field, reason)
}

func NewInsufficientDataError(component string, have, want int) error {
	return fmt.Errorf("%w: %s needs at least %d observations, got %d", ErrInsufficientData, component, want, have)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidCycle) ||
		errors.Is(err, ErrInvalidObservation) ||
		errors.Is(err, ErrInvalidPrediction)
}

func IsInsufficientDataError(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}

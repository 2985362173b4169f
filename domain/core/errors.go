package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrItemNotFound     = fmt.Errorf("%w: item", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("%w: category", ErrNotFound)

	// Validation errors
	ErrInvalidItem     = errors.New("invalid item")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidSettings = errors.New("invalid settings")
)

// Error constructors
func NewNotFoundError(resource error, id string) error {
	return fmt.Errorf("%w with id %s", resource, id)
}

func NewValidationError(kind error, field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", kind, field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidItem) ||
		errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrInvalidSettings)
}

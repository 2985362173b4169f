package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Falls back to v4 if the v7 clock read fails
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// CategoryKey identifies a category in the category file
type CategoryKey string

func (k CategoryKey) String() string { return string(k) }

// ParseID parses a path parameter into an item ID
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: item ID cannot be empty", ErrInvalidItem)
	}
	return ID(s), nil
}

// ParseCategoryKey parses a path parameter into a CategoryKey
func ParseCategoryKey(s string) (CategoryKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: category key cannot be empty", ErrInvalidCategory)
	}
	return CategoryKey(s), nil
}

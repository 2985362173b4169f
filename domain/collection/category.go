package collection

import (
	"regexp"
	"strings"

	"collectorsdream/domain/core"
)

// FieldType is the input kind of a category field
type FieldType string

const (
	FieldText   FieldType = "text"
	FieldNumber FieldType = "number"
)

// Valid reports whether t is a known field type
func (t FieldType) Valid() bool {
	return t == FieldText || t == FieldNumber
}

// Field describes one input of a category's entry form
type Field struct {
	Name  string    `json:"name"`
	Label string    `json:"label"`
	Type  FieldType `json:"type"`
}

// Category is a user-defined kind of collectible
type Category struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slug lowercases s and replaces every whitespace run with an underscore.
// It derives both category keys and field names from user input.
func Slug(s string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(s), "_")
}

// NewField builds a field from its label
func NewField(label string, typ FieldType) Field {
	if typ == "" {
		typ = FieldText
	}
	return Field{Name: Slug(label), Label: label, Type: typ}
}

// NewCategory builds a category from a display name and its fields,
// dropping fields with an empty label
func NewCategory(name string, fields ...Field) Category {
	c := Category{Name: name, Fields: make([]Field, 0, len(fields))}
	for _, f := range fields {
		if strings.TrimSpace(f.Label) == "" && strings.TrimSpace(f.Name) == "" {
			continue
		}
		c.Fields = append(c.Fields, f)
	}
	return c
}

// Key returns the key a new category is stored under
func (c Category) Key() core.CategoryKey {
	return core.CategoryKey(Slug(c.Name))
}

// FieldNames returns the field names in declaration order
func (c Category) FieldNames() []string {
	names := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		names[i] = f.Name
	}
	return names
}

// Field looks up a field by name
func (c Category) Field(name string) (Field, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Normalize fills derived values: missing field names come from the label,
// missing labels from the name, missing types default to text
func (c *Category) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	for i := range c.Fields {
		f := &c.Fields[i]
		if f.Name == "" {
			f.Name = Slug(f.Label)
		}
		if f.Label == "" {
			f.Label = f.Name
		}
		if f.Type == "" {
			f.Type = FieldText
		}
	}
}

// Validate checks the category can be saved
func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return core.NewValidationError(core.ErrInvalidCategory, "name", "please enter a category name")
	}
	if len(c.Fields) == 0 {
		return core.NewValidationError(core.ErrInvalidCategory, "fields", "please add at least one field")
	}
	seen := make(map[string]bool, len(c.Fields))
	for _, f := range c.Fields {
		if strings.TrimSpace(f.Name) == "" {
			return core.NewValidationError(core.ErrInvalidCategory, "fields", "field name is required")
		}
		if IsReservedKey(f.Name) {
			return core.NewValidationError(core.ErrInvalidCategory, f.Name, "field name is reserved")
		}
		if !f.Type.Valid() {
			return core.NewValidationError(core.ErrInvalidCategory, f.Name, "unknown field type "+string(f.Type))
		}
		if seen[f.Name] {
			return core.NewValidationError(core.ErrInvalidCategory, f.Name, "duplicate field")
		}
		seen[f.Name] = true
	}
	return nil
}

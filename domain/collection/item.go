package collection

import (
	"bytes"
	"encoding/json"
	"fmt"

	"collectorsdream/domain/core"
)

// Keys that are never stored as item fields. `_id` and `__v` are left over
// from documents written by the old document-store backend.
var reservedKeys = map[string]bool{
	"id":  true,
	"_id": true,
	"__v": true,
}

// IsReservedKey reports whether key is metadata rather than an item field
func IsReservedKey(key string) bool {
	return reservedKeys[key]
}

// Item is a single record in the collection
type Item struct {
	ID        core.ID
	Fields    map[string]any
	CreatedAt core.Timestamp
	UpdatedAt core.Timestamp
}

// NewItem creates an item with a fresh ID from the given fields
func NewItem(fields map[string]any) *Item {
	now := core.Now()
	return &Item{
		ID:        core.NewID(),
		Fields:    CleanFields(fields),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CleanFields copies fields without reserved keys
func CleanFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if IsReservedKey(k) {
			continue
		}
		out[k] = v
	}
	return out
}

// Has reports whether the item carries key, even when its value is null
func (it *Item) Has(key string) bool {
	if key == "id" {
		return !it.ID.IsEmpty()
	}
	_, ok := it.Fields[key]
	return ok
}

// Get returns the value stored under key
func (it *Item) Get(key string) (any, bool) {
	if key == "id" {
		return it.ID.String(), !it.ID.IsEmpty()
	}
	v, ok := it.Fields[key]
	return v, ok
}

// Validate checks the item can be stored
func (it *Item) Validate() error {
	if len(it.Fields) == 0 {
		return core.NewValidationError(core.ErrInvalidItem, "fields", "item has no fields")
	}
	for k := range it.Fields {
		if k == "" {
			return core.NewValidationError(core.ErrInvalidItem, "fields", "empty field name")
		}
	}
	return nil
}

// MarshalJSON flattens the item into `{"id": ..., <fields>}`
func (it Item) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(it.Fields)+1)
	for k, v := range it.Fields {
		out[k] = v
	}
	out["id"] = it.ID.String()
	return json.Marshal(out)
}

// UnmarshalJSON reads a flat JSON object. `id` is picked up when it is a
// string; `_id` and `__v` are dropped.
func (it *Item) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return fmt.Errorf("%w: item must be a JSON object", core.ErrInvalidItem)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", core.ErrInvalidItem, err)
	}
	if id, ok := raw["id"].(string); ok {
		it.ID = core.ID(id)
	}
	it.Fields = CleanFields(raw)
	return nil
}

// EncodeFields serializes the field map for storage
func EncodeFields(fields map[string]any) (string, error) {
	b, err := json.Marshal(CleanFields(fields))
	if err != nil {
		return "", fmt.Errorf("failed to encode item fields: %w", err)
	}
	return string(b), nil
}

// DecodeFields parses a stored field map
func DecodeFields(data string) (map[string]any, error) {
	fields := make(map[string]any)
	if data == "" {
		return fields, nil
	}
	if err := json.Unmarshal([]byte(data), &fields); err != nil {
		return nil, fmt.Errorf("failed to decode item fields: %w", err)
	}
	return CleanFields(fields), nil
}

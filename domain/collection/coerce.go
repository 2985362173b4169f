package collection

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"collectorsdream/domain/core"
)

// Coerce converts submitted values to the types declared by category.
// Number fields accept JSON numbers or numeric strings; text fields are
// trimmed. Keys the category does not declare pass through untouched.
func Coerce(category Category, fields map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		f, ok := category.Field(k)
		if !ok {
			out[k] = v
			continue
		}
		switch f.Type {
		case FieldNumber:
			n, err := toNumber(v)
			if err != nil {
				return nil, core.NewValidationError(core.ErrInvalidItem, f.Label, err.Error())
			}
			out[k] = n
		default:
			if s, ok := v.(string); ok {
				out[k] = strings.TrimSpace(s)
			} else {
				out[k] = v
			}
		}
	}
	return out, nil
}

func toNumber(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case float64:
		return checkFinite(t, v)
	case float32:
		return checkFinite(float64(t), v)
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", t.String())
		}
		return checkFinite(n, v)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil, fmt.Errorf("a number is required")
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", t)
		}
		return checkFinite(n, v)
	}
	return nil, fmt.Errorf("unsupported value %v", v)
}

// NaN and the infinities cannot be stored as JSON
func checkFinite(n float64, raw any) (any, error) {
	if !finite(n) {
		return nil, fmt.Errorf("%q is not a finite number", fmt.Sprint(raw))
	}
	return n, nil
}

func finite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}

// Number extracts a numeric value from a stored field, if it is one
func Number(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, finite(t)
	case float32:
		return float64(t), finite(float64(t))
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		n, err := t.Float64()
		return n, err == nil && finite(n)
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return n, err == nil && finite(n)
	}
	return 0, false
}

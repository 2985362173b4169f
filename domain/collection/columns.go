package collection

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Column is one table column
type Column struct {
	Key   string
	Label string
}

// Columns computes the table columns for items: `id` first, then the
// category's fields in declaration order (when a category is given and at
// least one item carries the field), then every other key in sorted order.
func Columns(items []*Item, category *Category) []Column {
	present := make(map[string]bool)
	for _, it := range items {
		for k := range it.Fields {
			if strings.HasPrefix(k, "_") || IsReservedKey(k) {
				continue
			}
			present[k] = true
		}
	}

	cols := []Column{{Key: "id", Label: "ID"}}
	if category != nil {
		for _, f := range category.Fields {
			if !present[f.Name] {
				continue
			}
			label := f.Label
			if label == "" {
				label = HeaderLabel(f.Name)
			}
			cols = append(cols, Column{Key: f.Name, Label: label})
			delete(present, f.Name)
		}
	}

	rest := make([]string, 0, len(present))
	for k := range present {
		rest = append(rest, k)
	}
	sort.Strings(rest)
	for _, k := range rest {
		cols = append(cols, Column{Key: k, Label: HeaderLabel(k)})
	}
	return cols
}

// HeaderLabel upper-cases the first letter of key
func HeaderLabel(key string) string {
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError {
		return key
	}
	return string(unicode.ToUpper(r)) + key[size:]
}

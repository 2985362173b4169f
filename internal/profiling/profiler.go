// Package profiling summarizes the items of a category field by field.
package profiling

import (
	"fmt"

	"collectorsdream/domain/collection"
)

// FieldSummary describes one category field across the category's items
type FieldSummary struct {
	Name      string               `json:"name"`
	Label     string               `json:"label"`
	Type      collection.FieldType `json:"type"`
	Present   int                  `json:"present"`
	Missing   int                  `json:"missing"`
	Distinct  int                  `json:"distinct"`
	NonNumber int                  `json:"nonNumeric,omitempty"`
	Numeric   *NumericSummary      `json:"numeric,omitempty"`
}

// CategorySummary is the result of Summarize
type CategorySummary struct {
	Name   string         `json:"name"`
	Items  int            `json:"items"`
	Fields []FieldSummary `json:"fields"`
}

// Summarize profiles items, which should already be filtered to the category
func Summarize(category collection.Category, items []*collection.Item) (*CategorySummary, error) {
	summary := &CategorySummary{
		Name:   category.Name,
		Items:  len(items),
		Fields: make([]FieldSummary, 0, len(category.Fields)),
	}

	for _, f := range category.Fields {
		fs := FieldSummary{Name: f.Name, Label: f.Label, Type: f.Type}
		distinct := make(map[string]struct{})
		var numbers []float64

		for _, item := range items {
			v, ok := item.Get(f.Name)
			if !ok || v == nil {
				fs.Missing++
				continue
			}
			fs.Present++
			distinct[fmt.Sprint(v)] = struct{}{}

			if f.Type == collection.FieldNumber {
				if n, ok := collection.Number(v); ok {
					numbers = append(numbers, n)
				} else {
					fs.NonNumber++
				}
			}
		}
		fs.Distinct = len(distinct)

		if len(numbers) > 0 {
			numeric, err := summarizeNumbers(numbers)
			if err != nil {
				return nil, fmt.Errorf("failed to summarize %s: %w", f.Name, err)
			}
			fs.Numeric = numeric
		}
		summary.Fields = append(summary.Fields, fs)
	}

	return summary, nil
}

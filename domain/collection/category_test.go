package collection

import (
	"encoding/json"
	"math"
	"testing"

	"collectorsdream/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	assert.Equal(t, "face_value", Slug("Face Value"))
	assert.Equal(t, "mint_mark_", Slug("Mint  Mark\t"))
	assert.Equal(t, "coins", Slug("COINS"))
}

func TestNewCategoryDerivesNames(t *testing.T) {
	cat := NewCategory("Postage Stamps", NewField("Issue Year", FieldNumber), NewField("", FieldText))

	assert.Equal(t, core.CategoryKey("postage_stamps"), cat.Key())
	require.Len(t, cat.Fields, 1)
	assert.Equal(t, Field{Name: "issue_year", Label: "Issue Year", Type: FieldNumber}, cat.Fields[0])
}

func TestCategoryValidate(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		wantErr  bool
	}{
		{"valid", coinCategory(), false},
		{"missing name", Category{Fields: []Field{NewField("A", FieldText)}}, true},
		{"no fields", Category{Name: "Coins"}, true},
		{"bad type", Category{Name: "Coins", Fields: []Field{{Name: "a", Label: "A", Type: "date"}}}, true},
		{"duplicate field", Category{Name: "Coins", Fields: []Field{NewField("A", FieldText), NewField("a", FieldNumber)}}, true},
		{"reserved field", Category{Name: "Coins", Fields: []Field{NewField("id", FieldText)}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.category.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrInvalidCategory)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCategoryNormalize(t *testing.T) {
	cat := Category{Name: "  Coins ", Fields: []Field{{Label: "Face Value"}, {Name: "year", Type: FieldNumber}}}
	cat.Normalize()

	assert.Equal(t, "Coins", cat.Name)
	assert.Equal(t, Field{Name: "face_value", Label: "Face Value", Type: FieldText}, cat.Fields[0])
	assert.Equal(t, Field{Name: "year", Label: "year", Type: FieldNumber}, cat.Fields[1])
}

func TestCoerce(t *testing.T) {
	cat := coinCategory()

	out, err := Coerce(cat, map[string]any{
		"country": "  France ",
		"year":    "1901",
		"metal":   42.0,
		"notes":   " untouched ",
	})
	require.NoError(t, err)
	assert.Equal(t, "France", out["country"])
	assert.Equal(t, 1901.0, out["year"])
	assert.Equal(t, 42.0, out["metal"])
	assert.Equal(t, " untouched ", out["notes"])

	_, err = Coerce(cat, map[string]any{"year": "MCMI"})
	assert.ErrorIs(t, err, core.ErrInvalidItem)

	_, err = Coerce(cat, map[string]any{"year": ""})
	assert.ErrorIs(t, err, core.ErrInvalidItem)
}

func TestCoerceRejectsNonFinite(t *testing.T) {
	cat := coinCategory()

	for _, v := range []any{"NaN", "Inf", " -Infinity ", json.Number("NaN"), math.Inf(1), math.NaN()} {
		_, err := Coerce(cat, map[string]any{"year": v})
		require.Error(t, err, "value %v", v)
		assert.True(t, core.IsValidationError(err), "value %v", v)
		assert.Contains(t, err.Error(), "finite")
	}
}

func TestNumber(t *testing.T) {
	n, ok := Number(" 12.5 ")
	assert.True(t, ok)
	assert.Equal(t, 12.5, n)

	_, ok = Number("twelve")
	assert.False(t, ok)

	_, ok = Number(true)
	assert.False(t, ok)

	for _, v := range []any{"Inf", "NaN", "-infinity", math.NaN(), math.Inf(-1), json.Number("Inf")} {
		_, ok = Number(v)
		assert.False(t, ok, "value %v", v)
	}
}

func TestSettingsJSON(t *testing.T) {
	var s Settings
	require.NoError(t, json.Unmarshal([]byte(`{"darkMode":true,"pageSize":25}`), &s))
	assert.True(t, s.DarkMode)
	assert.Equal(t, map[string]any{"pageSize": 25.0}, s.Extra)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"darkMode":true,"pageSize":25}`, string(data))

	data, err = json.Marshal(DefaultSettings())
	require.NoError(t, err)
	assert.JSONEq(t, `{"darkMode":false}`, string(data))

	err = json.Unmarshal([]byte(`{"darkMode":"yes"}`), &s)
	assert.ErrorIs(t, err, core.ErrInvalidSettings)
}

package collection

import (
	"encoding/json"
	"testing"

	"collectorsdream/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemJSONFlattensFields(t *testing.T) {
	item := &Item{ID: core.ID("abc"), Fields: map[string]any{"country": "FR", "year": 1901.0}}

	data, err := json.Marshal(item)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"abc","country":"FR","year":1901}`, string(data))
}

func TestItemUnmarshalDropsReservedKeys(t *testing.T) {
	var item Item
	err := json.Unmarshal([]byte(`{"id":"abc","_id":"64f0","__v":0,"country":"FR"}`), &item)
	require.NoError(t, err)

	assert.Equal(t, core.ID("abc"), item.ID)
	assert.Equal(t, map[string]any{"country": "FR"}, item.Fields)
	assert.True(t, item.Has("id"))
	assert.False(t, item.Has("_id"))
}

func TestItemUnmarshalRejectsNonObject(t *testing.T) {
	var item Item
	err := json.Unmarshal([]byte(`[1,2,3]`), &item)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidItem)
}

func TestItemValidate(t *testing.T) {
	assert.Error(t, NewItem(nil).Validate())
	assert.Error(t, NewItem(map[string]any{"": "x"}).Validate())
	assert.NoError(t, NewItem(map[string]any{"country": "FR"}).Validate())
}

func TestEncodeDecodeFields(t *testing.T) {
	encoded, err := EncodeFields(map[string]any{"id": "dropped", "country": "FR"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"country":"FR"}`, encoded)

	decoded, err := DecodeFields(encoded)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"country": "FR"}, decoded)

	empty, err := DecodeFields("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = DecodeFields("{not json")
	assert.Error(t, err)
}

func TestColumns(t *testing.T) {
	cat := coinCategory()
	items := []*Item{
		NewItem(map[string]any{"metal": "gold", "country": "FR", "_internal": true}),
		NewItem(map[string]any{"notes": "worn", "year": 1901.0}),
	}

	cols := Columns(items, &cat)
	keys := make([]string, len(cols))
	for i, c := range cols {
		keys[i] = c.Key
	}
	assert.Equal(t, []string{"id", "country", "year", "metal", "notes"}, keys)
	assert.Equal(t, "Country", cols[1].Label)
	assert.Equal(t, "Notes", cols[4].Label)

	noCat := Columns(items, nil)
	assert.Equal(t, "id", noCat[0].Key)
	assert.Equal(t, "country", noCat[1].Key)
	assert.Len(t, noCat, 5)
}

func TestHeaderLabel(t *testing.T) {
	assert.Equal(t, "Face_value", HeaderLabel("face_value"))
	assert.Equal(t, "Émission", HeaderLabel("émission"))
	assert.Equal(t, "", HeaderLabel(""))
}

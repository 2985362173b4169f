// Package storetest holds behaviour checks shared by every ItemRepository
// implementation.
package storetest

import (
	"context"
	"testing"
	"time"

	"collectorsdream/domain/collection"
	"collectorsdream/domain/core"
	"collectorsdream/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunItemRepositoryTests exercises repo. newRepo must return an empty store.
func RunItemRepositoryTests(t *testing.T, newRepo func(t *testing.T) ports.ItemRepository) {
	t.Run("CreateAndGet", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		item := collection.NewItem(map[string]any{"country": "France", "year": 1901.0, "_id": "legacy"})
		item.ID = ""
		require.NoError(t, repo.Create(ctx, item))
		require.False(t, item.ID.IsEmpty())

		got, err := repo.Get(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, item.ID, got.ID)
		assert.Equal(t, map[string]any{"country": "France", "year": 1901.0}, got.Fields)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("ListInCreationOrder", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		names := []string{"penny", "dime", "quarter"}
		for i, name := range names {
			item := collection.NewItem(map[string]any{"name": name})
			item.ID = ""
			item.CreatedAt = core.NewTimestamp(time.Date(2024, 1, i+1, 0, 0, 0, 0, time.UTC))
			require.NoError(t, repo.Create(ctx, item))
		}

		items, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 3)
		for i, item := range items {
			assert.Equal(t, names[i], item.Fields["name"])
		}

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("ListEmpty", func(t *testing.T) {
		repo := newRepo(t)

		items, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("UpdateReplacesFields", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		item := collection.NewItem(map[string]any{"name": "penny", "grade": "VF"})
		item.ID = ""
		require.NoError(t, repo.Create(ctx, item))

		updated, err := repo.Update(ctx, &collection.Item{ID: item.ID, Fields: map[string]any{"name": "penny", "year": 1943.0}})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "penny", "year": 1943.0}, updated.Fields)
		assert.False(t, updated.UpdatedAt.Before(item.UpdatedAt))
	})

	t.Run("MissingItem", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		missing := missingID(t, repo)

		_, err := repo.Get(ctx, missing)
		assert.ErrorIs(t, err, core.ErrItemNotFound)

		_, err = repo.Update(ctx, &collection.Item{ID: missing, Fields: map[string]any{"a": 1.0}})
		assert.ErrorIs(t, err, core.ErrItemNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, missing), core.ErrItemNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		item := collection.NewItem(map[string]any{"name": "penny"})
		item.ID = ""
		require.NoError(t, repo.Create(ctx, item))
		require.NoError(t, repo.Delete(ctx, item.ID))

		_, err := repo.Get(ctx, item.ID)
		assert.ErrorIs(t, err, core.ErrItemNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, item.ID), core.ErrItemNotFound)
	})
}

// missingID produces an ID in the repository's own format that is not stored
func missingID(t *testing.T, repo ports.ItemRepository) core.ID {
	t.Helper()
	ctx := context.Background()
	item := collection.NewItem(map[string]any{"tmp": true})
	item.ID = ""
	require.NoError(t, repo.Create(ctx, item))
	require.NoError(t, repo.Delete(ctx, item.ID))
	return item.ID
}

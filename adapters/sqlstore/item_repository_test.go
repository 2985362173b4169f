package sqlstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"collectorsdream/domain/collection"
	"collectorsdream/domain/core"
	"collectorsdream/internal/storetest"
	"collectorsdream/ports"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemRepository_SQLite(t *testing.T) {
	storetest.RunItemRepositoryTests(t, func(t *testing.T) ports.ItemRepository {
		db, err := Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "data", "collectors.db"))
		require.NoError(t, err)
		repo := NewItemRepository(db)
		t.Cleanup(func() { repo.Close() })
		return repo
	})
}

func TestItemRepository_Postgres(t *testing.T) {
	dsn := os.Getenv("COLLECTORS_TEST_POSTGRES_URL")
	if dsn == "" {
		t.Skip("COLLECTORS_TEST_POSTGRES_URL not set")
	}

	storetest.RunItemRepositoryTests(t, func(t *testing.T) ports.ItemRepository {
		db, err := Open(context.Background(), "postgres", dsn)
		require.NoError(t, err)
		_, err = db.Exec(`DELETE FROM collection`)
		require.NoError(t, err)
		repo := NewItemRepository(db)
		t.Cleanup(func() { repo.Close() })
		return repo
	})
}

func TestOpenCreatesDataDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "collectors.db")

	db, err := Open(context.Background(), "sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(filepath.Dir(path))
	assert.NoError(t, err)
}

func TestLegacyIntegerIDs(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "legacy.db")

	db, err := Open(ctx, "sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO collection (id, data) VALUES (7, '{"name":"Penny Black","__v":0}')`)
	require.NoError(t, err)

	repo := NewItemRepository(db)
	defer repo.Close()

	item, err := repo.Get(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "7", item.ID.String())
	assert.Equal(t, map[string]any{"name": "Penny Black"}, item.Fields)
	assert.True(t, item.CreatedAt.IsZero())
}

func TestOpenConvertsLegacyIntegerTable(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "legacy.db")

	legacy, err := sqlx.Connect("sqlite", path)
	require.NoError(t, err)
	_, err = legacy.Exec(`CREATE TABLE collection (id INTEGER PRIMARY KEY AUTOINCREMENT, data TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = legacy.Exec(`INSERT INTO collection (data) VALUES ('{"name":"Penny"}')`)
	require.NoError(t, err)
	require.NoError(t, legacy.Close())

	db, err := Open(ctx, "sqlite", path)
	require.NoError(t, err)
	repo := NewItemRepository(db)
	defer repo.Close()

	item := collection.NewItem(map[string]any{"name": "Dime"})
	require.NoError(t, repo.Create(ctx, item))

	got, err := repo.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dime", got.Fields["name"])

	penny, err := repo.Get(ctx, core.ID("1"))
	require.NoError(t, err)
	assert.Equal(t, "Penny", penny.Fields["name"])

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestSQLitePath(t *testing.T) {
	tests := map[string]string{
		"./data/collectors.db":              "./data/collectors.db",
		"file:/tmp/c.db?_busy_timeout=5000": "/tmp/c.db",
		":memory:":                          "",
		"file::memory:?cache=shared":        "",
	}
	for dsn, expected := range tests {
		assert.Equal(t, expected, sqlitePath(dsn), "dsn=%s", dsn)
	}

	assert.Equal(t, "x.db?_journal_mode=WAL&_busy_timeout=5000", sqliteDSN("sqlite3", "x.db"))
	assert.Equal(t, "x.db?mode=ro", sqliteDSN("sqlite", "x.db?mode=ro"))
}

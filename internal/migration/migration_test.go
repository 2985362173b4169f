package migration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Connect("sqlite", filepath.Join(t.TempDir(), "collectors.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	runner := NewRunner()

	require.NoError(t, runner.Run(ctx, db))
	require.NoError(t, runner.Run(ctx, db))

	var versions int
	require.NoError(t, db.Get(&versions, `SELECT COUNT(*) FROM schema_version`))
	assert.Equal(t, 1, versions)

	for _, column := range []string{"id", "data", "created_at", "updated_at"} {
		exists, err := columnExists(ctx, db, "collection", column)
		require.NoError(t, err)
		assert.True(t, exists, "column %s", column)
	}
}

func TestRunUpgradesLegacyTable(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	// Shape written by the first SQLite release
	_, err := db.Exec(`CREATE TABLE collection (id INTEGER PRIMARY KEY AUTOINCREMENT, data TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO collection (data) VALUES ('{"name":"Penny"}')`)
	require.NoError(t, err)

	require.NoError(t, NewRunner().Run(ctx, db))

	var createdAt int64
	require.NoError(t, db.Get(&createdAt, `SELECT created_at FROM collection WHERE id = '1'`))
	assert.Zero(t, createdAt)

	var idType string
	require.NoError(t, db.Get(&idType, `SELECT type FROM pragma_table_info('collection') WHERE name = 'id'`))
	assert.Equal(t, "TEXT", idType)

	var data string
	require.NoError(t, db.Get(&data, `SELECT data FROM collection WHERE id = '1'`))
	assert.JSONEq(t, `{"name":"Penny"}`, data)

	_, err = db.Exec(`INSERT INTO collection (id, data) VALUES ('4a7c0c9e-8d0f-4b7e-9a41-0f3c2b6d1e55', '{"name":"Dime"}')`)
	require.NoError(t, err)

	// A second run sees TEXT ids and leaves the rows alone
	require.NoError(t, NewRunner().Run(ctx, db))
	var rows int
	require.NoError(t, db.Get(&rows, `SELECT COUNT(*) FROM collection`))
	assert.Equal(t, 2, rows)
}

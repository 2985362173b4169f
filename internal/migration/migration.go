package migration

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"collectorsdream/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations for the SQL item stores
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "2.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order. Every step is
// idempotent, so Run is safe on every startup.
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createCollectionTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create collection table")
	}

	if err := r.rebuildIntegerIDTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to convert legacy integer ids")
	}

	if err := r.addTimestampColumns(ctx, db); err != nil {
		return errors.Wrap(err, "failed to add collection timestamp columns")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	if err := r.recordVersion(ctx, db); err != nil {
		return errors.Wrap(err, "failed to record schema version")
	}

	return nil
}

// The table shape matches what the SQLite backend always used: one row per
// item, the item's fields JSON-encoded in data.
func (r *MigrationRunner) createCollectionTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS collection (
			id TEXT PRIMARY KEY,
			data TEXT NOT NULL
		)
	`)
	return err
}

// The first SQLite release declared id INTEGER PRIMARY KEY AUTOINCREMENT,
// which makes id an alias of the rowid and rejects UUID strings. SQLite
// cannot change a column type in place, so the table is copied into the
// current shape and swapped in.
func (r *MigrationRunner) rebuildIntegerIDTable(ctx context.Context, db *sqlx.DB) error {
	if !isSQLite(db) {
		return nil
	}

	var idType string
	err := db.GetContext(ctx, &idType, `SELECT type FROM pragma_table_info('collection') WHERE name = 'id'`)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	if !strings.EqualFold(strings.TrimSpace(idType), "INTEGER") {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	statements := []string{
		`CREATE TABLE collection_new (
			id TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			created_at BIGINT NOT NULL DEFAULT 0,
			updated_at BIGINT NOT NULL DEFAULT 0
		)`,
		`INSERT INTO collection_new (id, data, created_at, updated_at)
			SELECT CAST(id AS TEXT), data, 0, 0 FROM collection`,
		`DROP TABLE collection`,
		`ALTER TABLE collection_new RENAME TO collection`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Databases created by the first SQLite release only have id and data
func (r *MigrationRunner) addTimestampColumns(ctx context.Context, db *sqlx.DB) error {
	for _, column := range []string{"created_at", "updated_at"} {
		exists, err := columnExists(ctx, db, "collection", column)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if _, err := db.ExecContext(ctx, "ALTER TABLE collection ADD COLUMN "+column+" BIGINT NOT NULL DEFAULT 0"); err != nil {
			return err
		}
	}
	return nil
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_collection_created_at ON collection (created_at)`)
	return err
}

func (r *MigrationRunner) recordVersion(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version TEXT PRIMARY KEY,
			applied_at BIGINT NOT NULL
		)
	`); err != nil {
		return err
	}

	var count int
	if err := db.GetContext(ctx, &count, db.Rebind(`SELECT COUNT(*) FROM schema_version WHERE version = ?`), r.version); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err := db.ExecContext(ctx, db.Rebind(`INSERT INTO schema_version (version, applied_at) VALUES (?, ?)`), r.version, nowMillis())
	return err
}

var nowMillis = func() int64 { return time.Now().UnixMilli() }

func isSQLite(db *sqlx.DB) bool {
	switch db.DriverName() {
	case "sqlite", "sqlite3":
		return true
	}
	return false
}

func columnExists(ctx context.Context, db *sqlx.DB, table, column string) (bool, error) {
	var count int
	var err error
	if db.DriverName() == "postgres" {
		err = db.GetContext(ctx, &count, `
			SELECT COUNT(*) FROM information_schema.columns
			WHERE table_name = $1 AND column_name = $2
		`, table, column)
	} else {
		err = db.GetContext(ctx, &count, `SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`, table, column)
	}
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

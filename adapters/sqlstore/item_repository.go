package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"collectorsdream/domain/collection"
	"collectorsdream/domain/core"
	"collectorsdream/ports"

	"github.com/jmoiron/sqlx"
)

// itemRow is the stored shape of an item
type itemRow struct {
	ID        string `db:"id"`
	Data      string `db:"data"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
}

func (r itemRow) toItem() (*collection.Item, error) {
	fields, err := collection.DecodeFields(r.Data)
	if err != nil {
		return nil, fmt.Errorf("item %s: %w", r.ID, err)
	}
	return &collection.Item{
		ID:        core.ID(r.ID),
		Fields:    fields,
		CreatedAt: core.FromUnixMilli(r.CreatedAt),
		UpdatedAt: core.FromUnixMilli(r.UpdatedAt),
	}, nil
}

// itemRepository implements ports.ItemRepository on any sqlx driver
type itemRepository struct {
	db *sqlx.DB
}

// NewItemRepository creates a new SQL item repository. The repository owns
// db and closes it on Close.
func NewItemRepository(db *sqlx.DB) ports.ItemRepository {
	return &itemRepository{db: db}
}

// List retrieves all items, oldest first
func (r *itemRepository) List(ctx context.Context) ([]*collection.Item, error) {
	var rows []itemRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, data, created_at, updated_at
		FROM collection
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}

	items := make([]*collection.Item, 0, len(rows))
	for _, row := range rows {
		item, err := row.toItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Get retrieves an item by its ID
func (r *itemRepository) Get(ctx context.Context, id core.ID) (*collection.Item, error) {
	var row itemRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`
		SELECT id, data, created_at, updated_at
		FROM collection WHERE id = ?
	`), id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.NewNotFoundError(core.ErrItemNotFound, id.String())
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return row.toItem()
}

// Create inserts a new item; an empty ID is filled in
func (r *itemRepository) Create(ctx context.Context, item *collection.Item) error {
	if item.ID.IsEmpty() {
		item.ID = core.NewID()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = core.Now()
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = item.CreatedAt
	}

	data, err := collection.EncodeFields(item.Fields)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO collection (id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`), item.ID.String(), data, item.CreatedAt.UnixMilli(), item.UpdatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// Update replaces the fields of an existing item and returns the stored item
func (r *itemRepository) Update(ctx context.Context, item *collection.Item) (*collection.Item, error) {
	data, err := collection.EncodeFields(item.Fields)
	if err != nil {
		return nil, err
	}

	result, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE collection SET data = ?, updated_at = ? WHERE id = ?
	`), data, core.Now().UnixMilli(), item.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, core.NewNotFoundError(core.ErrItemNotFound, item.ID.String())
	}

	return r.Get(ctx, item.ID)
}

// Delete removes an item from the database
func (r *itemRepository) Delete(ctx context.Context, id core.ID) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM collection WHERE id = ?`), id.String())
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return core.NewNotFoundError(core.ErrItemNotFound, id.String())
	}
	return nil
}

// Count returns the number of stored items
func (r *itemRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM collection`); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

// Close closes the underlying database
func (r *itemRepository) Close() error {
	return r.db.Close()
}

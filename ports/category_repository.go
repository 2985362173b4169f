package ports

import (
	"context"

	"collectorsdream/domain/collection"
	"collectorsdream/domain/core"
)

// CategoryRepository defines the interface for category storage
type CategoryRepository interface {
	List(ctx context.Context) (map[core.CategoryKey]collection.Category, error)
	Get(ctx context.Context, key core.CategoryKey) (collection.Category, error)
	// Save inserts or replaces the category stored under key
	Save(ctx context.Context, key core.CategoryKey, category collection.Category) error
	Delete(ctx context.Context, key core.CategoryKey) error
}

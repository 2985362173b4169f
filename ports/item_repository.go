package ports

import (
	"context"

	"collectorsdream/domain/collection"
	"collectorsdream/domain/core"
)

// ItemRepository defines the interface for collection item storage.
// Implementations return errors wrapping core.ErrItemNotFound for unknown IDs.
type ItemRepository interface {
	// Core CRUD operations
	List(ctx context.Context) ([]*collection.Item, error)
	Get(ctx context.Context, id core.ID) (*collection.Item, error)
	Create(ctx context.Context, item *collection.Item) error
	Update(ctx context.Context, item *collection.Item) (*collection.Item, error)
	Delete(ctx context.Context, id core.ID) error

	Count(ctx context.Context) (int, error)
	Close() error
}

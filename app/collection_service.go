package app

import (
	"context"
	"io"

	"collectorsdream/adapters/excel"
	"collectorsdream/domain/collection"
	"collectorsdream/domain/core"
	"collectorsdream/internal"
	"collectorsdream/internal/errors"
	"collectorsdream/internal/profiling"
	"collectorsdream/ports"
)

// CollectionService orchestrates the item, category and settings stores
type CollectionService struct {
	items      ports.ItemRepository
	categories ports.CategoryRepository
	settings   ports.SettingsRepository
	logger     *internal.Logger
}

// NewCollectionService creates a collection service
func NewCollectionService(items ports.ItemRepository, categories ports.CategoryRepository, settings ports.SettingsRepository, logger *internal.Logger) *CollectionService {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &CollectionService{
		items:      items,
		categories: categories,
		settings:   settings,
		logger:     logger.Named("collection"),
	}
}

// category resolves an optional category key; an empty key yields nil
func (s *CollectionService) category(ctx context.Context, key core.CategoryKey) (*collection.Category, error) {
	if key == "" {
		return nil, nil
	}
	c, err := s.categories.Get(ctx, key)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load category %s", key)
	}
	return &c, nil
}

// ListItems returns every item, or only the items that belong to the
// category under key when key is set
func (s *CollectionService) ListItems(ctx context.Context, key core.CategoryKey) ([]*collection.Item, *collection.Category, error) {
	category, err := s.category(ctx, key)
	if err != nil {
		return nil, nil, err
	}

	items, err := s.items.List(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to list items")
	}
	if category != nil {
		items = collection.Filter(items, *category)
	}
	return items, category, nil
}

// GetItem returns a single item
func (s *CollectionService) GetItem(ctx context.Context, id core.ID) (*collection.Item, error) {
	item, err := s.items.Get(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get item %s", id)
	}
	return item, nil
}

// prepare coerces fields against the category under key, if any
func (s *CollectionService) prepare(ctx context.Context, fields map[string]any, key core.CategoryKey) (map[string]any, error) {
	fields = collection.CleanFields(fields)
	category, err := s.category(ctx, key)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return fields, nil
	}
	return collection.Coerce(*category, fields)
}

// CreateItem stores a new item
func (s *CollectionService) CreateItem(ctx context.Context, fields map[string]any, key core.CategoryKey) (*collection.Item, error) {
	fields, err := s.prepare(ctx, fields, key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create item")
	}

	item := collection.NewItem(fields)
	item.ID = ""
	if err := item.Validate(); err != nil {
		return nil, errors.Wrap(err, "failed to create item")
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, errors.Wrap(err, "failed to create item")
	}

	s.logger.Debug("created item %s with %d fields", item.ID, len(item.Fields))
	return item, nil
}

// UpdateItem replaces an item's fields
func (s *CollectionService) UpdateItem(ctx context.Context, id core.ID, fields map[string]any, key core.CategoryKey) (*collection.Item, error) {
	fields, err := s.prepare(ctx, fields, key)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update item %s", id)
	}

	item := &collection.Item{ID: id, Fields: fields}
	if err := item.Validate(); err != nil {
		return nil, errors.Wrapf(err, "failed to update item %s", id)
	}
	updated, err := s.items.Update(ctx, item)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update item %s", id)
	}
	return updated, nil
}

// DeleteItem removes an item
func (s *CollectionService) DeleteItem(ctx context.Context, id core.ID) error {
	if err := s.items.Delete(ctx, id); err != nil {
		return errors.Wrapf(err, "failed to delete item %s", id)
	}
	s.logger.Debug("deleted item %s", id)
	return nil
}

// CountItems returns the number of stored items
func (s *CollectionService) CountItems(ctx context.Context) (int, error) {
	n, err := s.items.Count(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count items")
	}
	return n, nil
}

// ImportItems reads a spreadsheet and stores one item per data row. Every
// row is checked before anything is written.
func (s *CollectionService) ImportItems(ctx context.Context, r io.Reader, fileType string, key core.CategoryKey) ([]*collection.Item, error) {
	category, err := s.category(ctx, key)
	if err != nil {
		return nil, err
	}

	rows, err := excel.NewDataReader(r, fileType, category).ReadItems()
	if err != nil {
		return nil, errors.Wrap(errors.InvalidInput(err.Error()), "failed to import items")
	}

	items := make([]*collection.Item, 0, len(rows))
	for i, fields := range rows {
		if category != nil {
			if fields, err = collection.Coerce(*category, fields); err != nil {
				return nil, errors.Wrapf(err, "failed to import row %d", i+2)
			}
		}
		item := collection.NewItem(fields)
		item.ID = ""
		items = append(items, item)
	}

	for _, item := range items {
		if err := s.items.Create(ctx, item); err != nil {
			return nil, errors.Wrap(err, "failed to import items")
		}
	}

	s.logger.Info("imported %d items", len(items))
	return items, nil
}

// ExportItems writes the items listed under key (or all items) as a workbook
func (s *CollectionService) ExportItems(ctx context.Context, w io.Writer, key core.CategoryKey) error {
	items, category, err := s.ListItems(ctx, key)
	if err != nil {
		return err
	}

	sheet := excel.DefaultSheet
	if category != nil {
		sheet = category.Name
	}
	if err := excel.Export(w, sheet, items, category); err != nil {
		return errors.Wrap(err, "failed to export items")
	}
	return nil
}

// SummarizeCategory profiles the items that belong to the category under key
func (s *CollectionService) SummarizeCategory(ctx context.Context, key core.CategoryKey) (*profiling.CategorySummary, error) {
	if key == "" {
		return nil, errors.InvalidInput("category key is required")
	}
	items, category, err := s.ListItems(ctx, key)
	if err != nil {
		return nil, err
	}
	summary, err := profiling.Summarize(*category, items)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to summarize category %s", key)
	}
	return summary, nil
}

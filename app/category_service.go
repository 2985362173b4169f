package app

import (
	"context"

	"collectorsdream/domain/collection"
	"collectorsdream/domain/core"
	"collectorsdream/internal/errors"
)

// ListCategories returns every category by key
func (s *CollectionService) ListCategories(ctx context.Context) (map[core.CategoryKey]collection.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}
	return categories, nil
}

// SaveCategory validates and stores category. An empty key means a new
// category, stored under the slug of its name. Items are never touched:
// renaming a field leaves existing items with the old key.
func (s *CollectionService) SaveCategory(ctx context.Context, key core.CategoryKey, category collection.Category) (core.CategoryKey, error) {
	category.Normalize()
	if err := category.Validate(); err != nil {
		return "", errors.Wrap(err, "failed to save category")
	}
	if key == "" {
		key = category.Key()
	}

	if err := s.categories.Save(ctx, key, category); err != nil {
		return "", errors.Wrap(err, "failed to save category")
	}
	s.logger.Info("saved category %s (%d fields)", key, len(category.Fields))
	return key, nil
}

// DeleteCategory removes a category; its items stay in the collection
func (s *CollectionService) DeleteCategory(ctx context.Context, key core.CategoryKey) error {
	if err := s.categories.Delete(ctx, key); err != nil {
		return errors.Wrapf(err, "failed to delete category %s", key)
	}
	s.logger.Info("deleted category %s", key)
	return nil
}

// LoadSettings returns the UI preferences
func (s *CollectionService) LoadSettings(ctx context.Context) (collection.Settings, error) {
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return collection.Settings{}, errors.Wrap(err, "failed to load settings")
	}
	return settings, nil
}

// SaveSettings stores the UI preferences
func (s *CollectionService) SaveSettings(ctx context.Context, settings collection.Settings) error {
	if err := s.settings.Save(ctx, settings); err != nil {
		return errors.Wrap(err, "failed to save settings")
	}
	return nil
}

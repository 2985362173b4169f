package jsonfile

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"collectorsdream/domain/collection"
	"collectorsdream/domain/core"
	"collectorsdream/internal"
	"collectorsdream/ports"

	"github.com/fsnotify/fsnotify"
)

var _ ports.CategoryRepository = (*CategoryStore)(nil)

// CategoryStore keeps categories in a single JSON object keyed by category
// key. Without a running Watch every read goes back to the file, so edits
// made outside the app are always visible; with Watch running reads are
// served from memory and the watcher reloads on change.
type CategoryStore struct {
	path   string
	logger *internal.Logger

	mu       sync.RWMutex
	cache    map[core.CategoryKey]collection.Category
	loaded   bool
	watching bool
}

// NewCategoryStore creates a store backed by path. The file is created on
// the first save.
func NewCategoryStore(path string, logger *internal.Logger) *CategoryStore {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &CategoryStore{
		path:   absPath(path),
		logger: logger.Named("categories"),
		cache:  make(map[core.CategoryKey]collection.Category),
	}
}

// Path returns the backing file
func (s *CategoryStore) Path() string {
	return s.path
}

func (s *CategoryStore) readFile() (map[core.CategoryKey]collection.Category, error) {
	categories := make(map[core.CategoryKey]collection.Category)
	if _, err := readJSON(s.path, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = make(map[core.CategoryKey]collection.Category)
	}
	return categories, nil
}

// Reload replaces the in-memory copy with the file contents. On error the
// previous copy is kept.
func (s *CategoryStore) Reload() error {
	categories, err := s.readFile()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cache = categories
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// snapshot returns a copy of the current categories
func (s *CategoryStore) snapshot() (map[core.CategoryKey]collection.Category, error) {
	s.mu.RLock()
	if s.watching && s.loaded {
		out := maps.Clone(s.cache)
		s.mu.RUnlock()
		return out, nil
	}
	s.mu.RUnlock()

	if err := s.Reload(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.cache), nil
}

// List returns every category by key
func (s *CategoryStore) List(ctx context.Context) (map[core.CategoryKey]collection.Category, error) {
	return s.snapshot()
}

// Get returns the category stored under key
func (s *CategoryStore) Get(ctx context.Context, key core.CategoryKey) (collection.Category, error) {
	categories, err := s.snapshot()
	if err != nil {
		return collection.Category{}, err
	}
	category, ok := categories[key]
	if !ok {
		return collection.Category{}, core.NewNotFoundError(core.ErrCategoryNotFound, key.String())
	}
	return category, nil
}

// Save inserts or replaces the category under key
func (s *CategoryStore) Save(ctx context.Context, key core.CategoryKey, category collection.Category) error {
	return s.modify(func(categories map[core.CategoryKey]collection.Category) error {
		categories[key] = category
		return nil
	})
}

// Delete removes the category under key
func (s *CategoryStore) Delete(ctx context.Context, key core.CategoryKey) error {
	return s.modify(func(categories map[core.CategoryKey]collection.Category) error {
		if _, ok := categories[key]; !ok {
			return core.NewNotFoundError(core.ErrCategoryNotFound, key.String())
		}
		delete(categories, key)
		return nil
	})
}

// modify runs a read-modify-write cycle under the write lock
func (s *CategoryStore) modify(fn func(map[core.CategoryKey]collection.Category) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories, err := s.readFile()
	if err != nil {
		return err
	}
	if err := fn(categories); err != nil {
		return err
	}
	if err := writeJSON(s.path, categories); err != nil {
		return err
	}
	s.cache = categories
	s.loaded = true
	return nil
}

// Watching reports whether Watch is currently running
func (s *CategoryStore) Watching() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.watching
}

func (s *CategoryStore) setWatching(v bool) {
	s.mu.Lock()
	s.watching = v
	s.mu.Unlock()
}

// Watch reloads the categories whenever the file changes on disk. It blocks
// until ctx is cancelled. The directory is watched rather than the file
// because saves replace the file by rename.
func (s *CategoryStore) Watch(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	if err := s.Reload(); err != nil {
		s.logger.Warn("initial load of %s failed: %v", s.path, err)
	}

	s.setWatching(true)
	defer s.setWatching(false)
	s.logger.Info("watching %s for changes", s.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != s.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			if err := s.Reload(); err != nil {
				s.logger.Warn("reload after %s failed: %v", event.Op, err)
				continue
			}
			s.logger.Debug("reloaded categories after %s", event.Op)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher error: %v", err)
		}
	}
}

package jsonfile

import (
	"context"
	"sync"

	"collectorsdream/domain/collection"
	"collectorsdream/ports"
)

var _ ports.SettingsRepository = (*SettingsStore)(nil)

// SettingsStore keeps UI preferences in a JSON file
type SettingsStore struct {
	path string
	mu   sync.Mutex
}

// NewSettingsStore creates a store backed by path
func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: absPath(path)}
}

// Load returns the saved settings, or the defaults when nothing is saved
func (s *SettingsStore) Load(ctx context.Context) (collection.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := collection.DefaultSettings()
	if _, err := readJSON(s.path, &settings); err != nil {
		return collection.Settings{}, err
	}
	return settings, nil
}

// Save replaces the saved settings
func (s *SettingsStore) Save(ctx context.Context, settings collection.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(s.path, settings)
}

package ports

import (
	"context"

	"collectorsdream/domain/collection"
)

// SettingsRepository persists UI preferences
type SettingsRepository interface {
	Load(ctx context.Context) (collection.Settings, error)
	Save(ctx context.Context, settings collection.Settings) error
}

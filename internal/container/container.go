package container

import (
	"context"
	"fmt"

	"collectorsdream/adapters/jsonfile"
	"collectorsdream/adapters/mongostore"
	"collectorsdream/adapters/sqlstore"
	"collectorsdream/app"
	"collectorsdream/internal"
	"collectorsdream/internal/config"
	"collectorsdream/ports"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure; DB is nil for the document store
	DB *sqlx.DB

	// Repositories (data access layer)
	ItemRepo     ports.ItemRepository
	CategoryRepo *jsonfile.CategoryStore
	SettingsRepo ports.SettingsRepository

	// Services
	Collection *app.CollectionService
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.NewNopLogger()
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	return c, nil
}

// Init opens the item store and builds the services on top of it
func (c *Container) Init(ctx context.Context) error {
	items, db, err := OpenItemRepository(ctx, c.Config.Database)
	if err != nil {
		return fmt.Errorf("failed to open item store: %w", err)
	}
	c.DB = db
	c.ItemRepo = items

	c.initRepositories()
	c.Collection = app.NewCollectionService(c.ItemRepo, c.CategoryRepo, c.SettingsRepo, c.Logger)

	c.Logger.Info("container initialized with %s item store", c.Config.Database.Driver)
	return nil
}

// initRepositories initializes the file-backed repositories
func (c *Container) initRepositories() {
	c.CategoryRepo = jsonfile.NewCategoryStore(c.Config.Paths.CategoriesFile, c.Logger)
	c.SettingsRepo = jsonfile.NewSettingsStore(c.Config.Paths.SettingsFile)
}

// OpenItemRepository connects to the item store named by cfg. The returned
// DB is nil for the document store.
func OpenItemRepository(ctx context.Context, cfg config.DatabaseConfig) (ports.ItemRepository, *sqlx.DB, error) {
	if cfg.Driver == config.DriverMongo {
		repo, err := mongostore.Open(ctx, cfg.URL, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		return repo, nil, nil
	}

	db, err := sqlstore.Open(ctx, cfg.Driver, cfg.URL)
	if err != nil {
		return nil, nil, err
	}
	return sqlstore.NewItemRepository(db), db, nil
}

// WatchCategories reloads categories whenever the file changes on disk, until
// ctx is cancelled. It returns immediately when watching is disabled.
func (c *Container) WatchCategories(ctx context.Context) error {
	if !c.Config.Paths.WatchCategories || c.CategoryRepo == nil {
		return nil
	}
	return c.CategoryRepo.Watch(ctx)
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	if c.ItemRepo != nil {
		return c.ItemRepo.Close()
	}
	return nil
}

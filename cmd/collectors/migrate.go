package main

import (
	"fmt"

	"collectorsdream/app"
	"collectorsdream/internal/config"
	"collectorsdream/internal/container"

	"github.com/spf13/cobra"
)

var (
	migrateDriver   string
	migrateDSN      string
	migrateDatabase string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy every item from the configured store into another store",
	Long: `Copies all items from the store configured by STORE_DRIVER/DATABASE_URL
into the target store. IDs and timestamps are kept and items already in the
target are skipped, so the command can be rerun.

Example:
  collectors migrate --to-driver sqlite --to-dsn ./data/collectors.db`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	target := config.DatabaseConfig{
		Driver:        migrateDriver,
		URL:           migrateDSN,
		MongoDatabase: migrateDatabase,
	}
	if err := config.ValidateDriver(target.Driver); err != nil {
		return err
	}
	if target == cfg.Database {
		return fmt.Errorf("target store is the configured store")
	}

	src, _, err := container.OpenItemRepository(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open source store: %w", err)
	}
	defer src.Close()

	dst, _, err := container.OpenItemRepository(ctx, target)
	if err != nil {
		return fmt.Errorf("failed to open target store: %w", err)
	}
	defer dst.Close()

	logger.Info("copying items from %s to %s", cfg.Database.Driver, target.Driver)
	result, err := app.CopyItems(ctx, src, dst, logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Migration complete: %d copied, %d skipped\n", result.Copied, result.Skipped)
	return nil
}

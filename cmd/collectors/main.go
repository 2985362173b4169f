package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"collectorsdream/internal"
	"collectorsdream/internal/config"
	"collectorsdream/internal/container"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	envFile  string
	logLevel string

	cfg    *config.Config
	logger *internal.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "collectors",
	Short: "Collector's Dream - catalogue your collections",
	Long: `Collector's Dream keeps user-defined categories (Coins, Stamps, ...)
and free-form item records, served to a browser UI over a small JSON API.

Items live in SQLite (default), PostgreSQL or MongoDB; categories and UI
settings live in JSON files next to the database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envFile != "" {
			if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to load %s: %w", envFile, err)
			}
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		logger = internal.NewLogger(internal.ParseLogLevel(cfg.Logging.Level))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file loaded before configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (ERROR, WARN, INFO, DEBUG, TRACE); overrides LOG_LEVEL")

	migrateCmd.Flags().StringVar(&migrateDriver, "to-driver", "", "Target store driver (sqlite3, sqlite, postgres, mongodb)")
	migrateCmd.Flags().StringVar(&migrateDSN, "to-dsn", "", "Target store DSN or MongoDB URI")
	migrateCmd.Flags().StringVar(&migrateDatabase, "to-database", "collectors", "Target MongoDB database name")
	_ = migrateCmd.MarkFlagRequired("to-driver")
	_ = migrateCmd.MarkFlagRequired("to-dsn")

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "collection.xlsx", "Output workbook")
	exportCmd.Flags().StringVarP(&exportCategory, "category", "c", "", "Only export items of this category key")

	importCmd.Flags().StringVarP(&importCategory, "category", "c", "", "Coerce rows against this category key")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// openContainer builds the container for commands that need the stores
func openContainer(ctx context.Context) (*container.Container, error) {
	c, err := container.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := c.Init(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

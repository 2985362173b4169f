package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"collectorsdream/internal/errors"

	"gopkg.in/yaml.v3"
)

// Supported store drivers
const (
	DriverSQLite3  = "sqlite3"  // github.com/mattn/go-sqlite3 (cgo)
	DriverSQLite   = "sqlite"   // modernc.org/sqlite (pure Go)
	DriverPostgres = "postgres" // github.com/lib/pq
	DriverMongo    = "mongodb"  // go.mongodb.org/mongo-driver
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Paths    PathConfig     `yaml:"paths"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig holds item store connection settings
type DatabaseConfig struct {
	Driver        string `yaml:"driver"`
	URL           string `yaml:"url"`
	MongoDatabase string `yaml:"mongo_database"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string        `yaml:"port"`
	GinMode         string        `yaml:"gin_mode"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// PathConfig holds file system paths
type PathConfig struct {
	CategoriesFile  string `yaml:"categories_file"`
	SettingsFile    string `yaml:"settings_file"`
	WatchCategories bool   `yaml:"watch_categories"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:        DriverSQLite,
			URL:           "./data/collectors.db",
			MongoDatabase: "collectors",
		},
		Server: ServerConfig{
			Port:            "8000",
			GinMode:         "release",
			ShutdownTimeout: 10 * time.Second,
		},
		Paths: PathConfig{
			CategoriesFile:  "./data/categories.json",
			SettingsFile:    "./data/settings.json",
			WatchCategories: true,
		},
		Logging: LoggingConfig{
			Level: "INFO",
		},
	}
}

// Load reads configuration from the optional CONFIG_FILE, then environment
// variables, and validates it
func Load() (*Config, error) {
	config := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := config.loadFile(path); err != nil {
			return nil, errors.Wrapf(err, "failed to load configuration file %s", path)
		}
	}

	config.Database = *loadDatabaseConfig(config.Database)
	config.Server = *loadServerConfig(config.Server)
	config.Paths = *loadPathConfig(config.Paths)
	config.Logging = *loadLoggingConfig(config.Logging)

	// Validate required fields
	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrap(errors.ConfigInvalid("invalid YAML"), err.Error())
	}
	return nil
}

func loadDatabaseConfig(base DatabaseConfig) *DatabaseConfig {
	return &DatabaseConfig{
		Driver:        strings.ToLower(getEnvOrDefault("STORE_DRIVER", base.Driver)),
		URL:           getEnvOrDefault("DATABASE_URL", base.URL),
		MongoDatabase: getEnvOrDefault("MONGO_DATABASE", base.MongoDatabase),
	}
}

func loadServerConfig(base ServerConfig) *ServerConfig {
	return &ServerConfig{
		Port:            getEnvOrDefault("PORT", base.Port),
		GinMode:         getEnvOrDefault("GIN_MODE", base.GinMode),
		ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", base.ShutdownTimeout),
	}
}

func loadPathConfig(base PathConfig) *PathConfig {
	return &PathConfig{
		CategoriesFile:  getEnvOrDefault("CATEGORIES_FILE", base.CategoriesFile),
		SettingsFile:    getEnvOrDefault("SETTINGS_FILE", base.SettingsFile),
		WatchCategories: getEnvBoolOrDefault("WATCH_CATEGORIES", base.WatchCategories),
	}
}

func loadLoggingConfig(base LoggingConfig) *LoggingConfig {
	return &LoggingConfig{
		Level: getEnvOrDefault("LOG_LEVEL", base.Level),
	}
}

// ValidateDriver checks that driver names a supported item store
func ValidateDriver(driver string) error {
	switch driver {
	case DriverSQLite3, DriverSQLite, DriverPostgres, DriverMongo:
		return nil
	}
	return errors.ConfigInvalid(fmt.Sprintf("unsupported STORE_DRIVER %q", driver))
}

func validateConfig(config *Config) error {
	if err := ValidateDriver(config.Database.Driver); err != nil {
		return err
	}
	if config.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}
	if config.Database.Driver == DriverMongo && config.Database.MongoDatabase == "" {
		return errors.ConfigInvalid("MONGO_DATABASE is required for the mongodb driver")
	}
	port, err := strconv.Atoi(config.Server.Port)
	if err != nil || port <= 0 || port > 65535 {
		return errors.ConfigInvalid(fmt.Sprintf("invalid PORT %q", config.Server.Port))
	}
	if config.Paths.CategoriesFile == "" {
		return errors.ConfigInvalid("CATEGORIES_FILE is required")
	}
	if config.Paths.SettingsFile == "" {
		return errors.ConfigInvalid("SETTINGS_FILE is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

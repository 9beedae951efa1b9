// Package config loads runtime settings from defaults, an optional
// inventory.yaml, an optional .env file and INVENTORY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	// ConflictLegacy resolves the first bulk-import name conflict from the
	// last iterated row, re-scaling its price, and stops importing.
	ConflictLegacy = "legacy"
	// ConflictFixed upserts every row.
	ConflictFixed = "fixed"
)

type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
	URL    string `mapstructure:"url"`
}

type ImportConfig struct {
	File         string `mapstructure:"file"`
	ResetOnStart bool   `mapstructure:"reset_on_start"`
	ConflictMode string `mapstructure:"conflict_mode"`
}

type AddConfig struct {
	// SwapFields reproduces the historical Add behavior that stores the
	// price input as quantity and the quantity input as price.
	SwapFields bool `mapstructure:"swap_fields"`
}

type BackupConfig struct {
	File string `mapstructure:"file"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Output string `mapstructure:"output"`
}

type Config struct {
	Store  StoreConfig  `mapstructure:"store"`
	Import ImportConfig `mapstructure:"import"`
	Add    AddConfig    `mapstructure:"add"`
	Backup BackupConfig `mapstructure:"backup"`
	Log    LogConfig    `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.driver", DriverSQLite)
	v.SetDefault("store.path", "inventory.db")
	v.SetDefault("store.url", "")
	v.SetDefault("import.file", "inventory.csv")
	v.SetDefault("import.reset_on_start", true)
	v.SetDefault("import.conflict_mode", ConflictLegacy)
	v.SetDefault("add.swap_fields", true)
	v.SetDefault("backup.file", "backup.csv")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.output", "stderr")
}

// Load reads configuration from the working directory and environment.
// A missing .env or inventory.yaml is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config load: .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("inventory")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config load: %w", err)
		}
	}

	return loadFrom(v)
}

func loadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix("INVENTORY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("store.url", "INVENTORY_STORE_URL", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	c.Import.ConflictMode = strings.ToLower(strings.TrimSpace(c.Import.ConflictMode))
}

// Validate checks that the settings describe a usable setup.
func (c *Config) Validate() error {
	var errs []error

	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.Path == "" {
			errs = append(errs, errors.New("store.path must not be empty for the sqlite driver"))
		}
	case DriverPostgres:
		if c.Store.URL == "" {
			errs = append(errs, errors.New("store.url (or DATABASE_URL) is required for the postgres driver"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("store.driver must be one of sqlite, postgres, memory; got %q", c.Store.Driver))
	}

	if c.Import.File == "" {
		errs = append(errs, errors.New("import.file must not be empty"))
	}
	if c.Import.ConflictMode != ConflictLegacy && c.Import.ConflictMode != ConflictFixed {
		errs = append(errs, fmt.Errorf("import.conflict_mode must be legacy or fixed; got %q", c.Import.ConflictMode))
	}
	if c.Backup.File == "" {
		errs = append(errs, errors.New("backup.file must not be empty"))
	}

	return errors.Join(errs...)
}

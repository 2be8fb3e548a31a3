// Package config loads the builder configuration from a TOML file with
// environment overrides for deployment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Storage selects the persistence backend.
type Storage struct {
	// Driver is "sqlite" or "postgres".
	Driver string `toml:"driver"`
	// Path is the sqlite database file (sqlite driver only).
	Path string `toml:"path"`
	// DSN is the postgres connection string (postgres driver only).
	DSN string `toml:"dsn"`
}

// HTTP configures the JSON API server.
type HTTP struct {
	Port int `toml:"port"`
}

// Builder configures the edit engine.
type Builder struct {
	// TemplatesDir holds user template JSON files. Empty disables
	// file templates (builtins still apply).
	TemplatesDir string `toml:"templates_dir"`
	// AutosaveSchedule is a cron expression for background draft
	// saves. Empty disables autosave.
	AutosaveSchedule string `toml:"autosave_schedule"`
	// WatchTemplates reloads the template registry when files in
	// TemplatesDir change.
	WatchTemplates bool `toml:"watch_templates"`
}

// Config is the full application configuration.
type Config struct {
	Storage Storage `toml:"storage"`
	HTTP    HTTP    `toml:"http"`
	Builder Builder `toml:"builder"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Storage: Storage{
			Driver: "sqlite",
			Path:   defaultDBPath(),
		},
		HTTP: HTTP{Port: 8080},
		Builder: Builder{
			AutosaveSchedule: "@every 30s",
			WatchTemplates:   true,
		},
	}
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist. Environment variables override file values:
// PORT for the HTTP port and DATABASE_URL for the postgres DSN.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = defaultConfigPath()
	}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No file, defaults apply.
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		var p int
		if _, err := fmt.Sscanf(port, "%d", &p); err == nil && p > 0 {
			cfg.HTTP.Port = p
		}
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.Storage.Driver = "postgres"
		cfg.Storage.DSN = dsn
	}
}

func (c Config) validate() error {
	switch c.Storage.Driver {
	case "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the sqlite driver")
		}
	case "postgres":
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q (want sqlite or postgres)", c.Storage.Driver)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port %d out of range", c.HTTP.Port)
	}
	return nil
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "storefront.toml"
	}
	return filepath.Join(home, ".storefront", "config.toml")
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "storefront.db"
	}
	return filepath.Join(home, ".storefront", "storefront.db")
}

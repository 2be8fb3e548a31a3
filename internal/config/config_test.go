package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"storefront/internal/config"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage.Driver != "sqlite" {
		t.Fatalf("default driver = %q, want sqlite", cfg.Storage.Driver)
	}
	if cfg.HTTP.Port != 8080 {
		t.Fatalf("default port = %d, want 8080", cfg.HTTP.Port)
	}
}

func TestLoad_ParsesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[storage]
driver = "postgres"
dsn = "postgres://localhost/storefront"

[http]
port = 9000

[builder]
autosave_schedule = "@every 1m"
`
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage.Driver != "postgres" || cfg.HTTP.Port != 9000 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Builder.AutosaveSchedule != "@every 1m" {
		t.Fatalf("autosave schedule = %q", cfg.Builder.AutosaveSchedule)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("DATABASE_URL", "postgres://prod/storefront")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTTP.Port != 3000 {
		t.Fatalf("PORT override ignored, port = %d", cfg.HTTP.Port)
	}
	if cfg.Storage.Driver != "postgres" || cfg.Storage.DSN != "postgres://prod/storefront" {
		t.Fatalf("DATABASE_URL override ignored: %+v", cfg.Storage)
	}
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[storage]\ndriver = \"oracle\"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

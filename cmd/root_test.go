package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"storefront/internal/config"
)

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	want := map[string]bool{
		"serve":        false,
		"mcp":          false,
		"create-store": false,
		"init-db":      false,
	}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q is not registered", name)
		}
	}
}

func TestOpenGateway_SQLiteBootstrapsSchema(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Path = filepath.Join(t.TempDir(), "storefront.db")

	gateway, closeGateway, err := openGateway(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer closeGateway()

	// Migrations ran: the stores table is queryable.
	available, err := gateway.SlugAvailable(context.Background(), "fresh-slug")
	if err != nil {
		t.Fatalf("schema not usable after open: %v", err)
	}
	if !available {
		t.Fatal("empty database must report any slug available")
	}
	if _, err := os.Stat(cfg.Storage.Path); err != nil {
		t.Fatalf("database file was not created: %v", err)
	}
}

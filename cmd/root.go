// Package cmd wires the builder services into CLI commands.
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"storefront/internal/config"
	"storefront/internal/domain"
	"storefront/internal/service"
	"storefront/internal/storage"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront builder: section-based page editing with undo and publishing",
	Long: `Storefront is a section-based storefront builder.

Stores own a draft document (an ordered list of sections plus a theme)
that is edited through undoable operations and published as the live
storefront when ready.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.storefront/config.toml)")
}

// openGateway builds the document store selected by the configuration.
// The caller owns the returned closer.
func openGateway(cfg config.Config) (domain.DocumentStore, func() error, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		store, err := storage.NewPostgresDocumentStore(cfg.Storage.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		return store, store.Close, nil
	default:
		db, err := storage.New(cfg.Storage.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		return storage.NewDocumentStore(db), db.Close, nil
	}
}

// buildServices assembles the service layer on top of a gateway.
func buildServices(cfg config.Config, gateway domain.DocumentStore, emitter service.EventEmitter) (*service.BuilderService, *service.StoreService, *service.TemplateRegistry) {
	templates := service.NewTemplateRegistry(cfg.Builder.TemplatesDir)
	builderSvc := service.NewBuilderService(gateway, templates, emitter)
	storeSvc := service.NewStoreService(gateway, emitter)
	return builderSvc, storeSvc, templates
}

func loadConfig() config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

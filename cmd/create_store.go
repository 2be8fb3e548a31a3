package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"storefront/internal/service"
)

var (
	createTenantID string
	createName     string
	createSlug     string
	createTemplate string
)

var createStoreCmd = &cobra.Command{
	Use:   "create-store",
	Short: "Create a new store with a starter document",
	Long: `Create a store for a tenant. Consumes one of the tenant's store
credits and seeds the store with a starter document.

Examples:
  # Slug generated from the name
  storefront create-store --tenant t1 --name "Green Leaf Teas"

  # Explicit slug and a layout template
  storefront create-store --tenant t1 --name "Green Leaf Teas" --slug green-leaf --template classic`,
	Run: func(cmd *cobra.Command, args []string) {
		if createTenantID == "" || createName == "" {
			log.Fatal("--tenant and --name are required")
		}
		cfg := loadConfig()

		gateway, closeGateway, err := openGateway(cfg)
		if err != nil {
			log.Fatalf("Failed to open storage: %v", err)
		}
		defer closeGateway()

		emitter := service.NoopEmitter{}
		builderSvc, storeSvc, _ := buildServices(cfg, gateway, emitter)

		ctx := context.Background()
		store, err := storeSvc.CreateStore(ctx, createTenantID, createName, createSlug)
		if err != nil {
			log.Fatalf("Failed to create store: %v", err)
		}

		if createTemplate != "" {
			if _, err := builderSvc.ApplyTemplate(ctx, store.ID, createTemplate); err != nil {
				log.Fatalf("Failed to apply template: %v", err)
			}
			if err := builderSvc.SaveDraft(ctx, store.ID); err != nil {
				log.Fatalf("Failed to save draft: %v", err)
			}
		}

		log.Printf("Created store %s (%s) with slug %q", store.Name, store.ID, store.Slug)
	},
}

func init() {
	rootCmd.AddCommand(createStoreCmd)

	createStoreCmd.Flags().StringVar(&createTenantID, "tenant", "", "Owning tenant ID")
	createStoreCmd.Flags().StringVar(&createName, "name", "", "Store display name")
	createStoreCmd.Flags().StringVar(&createSlug, "slug", "", "URL slug (generated from the name when omitted)")
	createStoreCmd.Flags().StringVar(&createTemplate, "template", "", "Layout template to apply (minimal, classic, full)")
}

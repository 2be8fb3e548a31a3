package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	mcpserver "storefront/internal/mcp"
	"storefront/internal/service"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server on stdio",
	Long: `Start the Model Context Protocol server so AI agents can build
and publish storefronts through tool calls.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		gateway, closeGateway, err := openGateway(cfg)
		if err != nil {
			log.Fatalf("Failed to open storage: %v", err)
		}
		defer closeGateway()

		emitter := service.NoopEmitter{}
		builderSvc, storeSvc, templates := buildServices(cfg, gateway, emitter)

		if cfg.Builder.WatchTemplates && cfg.Builder.TemplatesDir != "" {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if err := templates.Watch(ctx); err != nil {
				log.Printf("Template watching disabled: %v", err)
			}
			defer templates.Stop()
		}

		srv := mcpserver.New(mcpserver.Deps{
			Emitter:   emitter,
			Builder:   builderSvc,
			Stores:    storeSvc,
			Templates: templates,
		})

		if err := srv.ServeStdio(); err != nil {
			log.Fatalf("MCP server error: %v", err)
		}

		builderSvc.WaitSaves(context.Background())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

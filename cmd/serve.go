package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"storefront/internal/server"
	"storefront/internal/service"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the builder HTTP API",
	Long:  `Start the JSON API server that storefront editors talk to.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		if servePort != 0 {
			cfg.HTTP.Port = servePort
		}

		gateway, closeGateway, err := openGateway(cfg)
		if err != nil {
			log.Fatalf("Failed to open storage: %v", err)
		}
		defer closeGateway()

		emitter := service.NoopEmitter{}
		builderSvc, storeSvc, templates := buildServices(cfg, gateway, emitter)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if cfg.Builder.WatchTemplates && cfg.Builder.TemplatesDir != "" {
			if err := templates.Watch(ctx); err != nil {
				log.Printf("Template watching disabled: %v", err)
			}
			defer templates.Stop()
		}

		autosave := service.NewAutosaveScheduler(builderSvc)
		if cfg.Builder.AutosaveSchedule != "" {
			if err := autosave.Start(ctx, cfg.Builder.AutosaveSchedule); err != nil {
				log.Fatalf("Invalid autosave schedule %q: %v", cfg.Builder.AutosaveSchedule, err)
			}
			defer autosave.Stop()
		}

		app := server.New(builderSvc, storeSvc, templates)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			log.Println("Shutting down...")
			cancel()
			_ = app.Shutdown()
		}()

		log.Printf("Starting server on :%d", cfg.HTTP.Port)
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}

		// Flush any in-flight saves before the process exits.
		builderSvc.WaitSaves(context.Background())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to run the server on (overrides config)")
}

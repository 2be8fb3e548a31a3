package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create the database schema for the configured backend",
	Long: `Initialize the storage backend named in the config file.

Opens the configured database (sqlite file or postgres DSN) and runs
the schema migrations, then exits. Safe to run repeatedly: migrations
are idempotent.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		gateway, closeGateway, err := openGateway(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer closeGateway()

		// openGateway runs migrations; a ping proves the schema is usable.
		if _, err := gateway.SlugAvailable(cmd.Context(), "init-db-probe"); err != nil {
			log.Fatalf("Schema verification failed: %v", err)
		}

		switch cfg.Storage.Driver {
		case "postgres":
			log.Println("Postgres schema initialized")
		default:
			log.Printf("SQLite schema initialized at %s", cfg.Storage.Path)
		}
	},
}

func init() {
	rootCmd.AddCommand(initDBCmd)
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vikrin/workflow/internal/storage"
)

var migrateDBPath string

// migrateCmd runs pending schema migrations
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run pending database migrations",
	Long: `Apply any pending schema migrations to the database.

Creates the database file (and its directory) if it does not exist yet.
Already-applied migrations are skipped, so running this repeatedly is safe.

Example:
  workflowctl migrate --db data/workflow.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := os.MkdirAll(filepath.Dir(migrateDBPath), 0750); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}

		PrintVerbose("Opening database %s", migrateDBPath)
		store := storage.NewSQLiteStorage(migrateDBPath)
		if err := store.Open(); err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer store.Close()

		PrintVerbose("Applying pending migrations")
		if err := store.Migrate(); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}

		fmt.Printf("Migrations applied. Database ready at %s\n", migrateDBPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().StringVar(&migrateDBPath, "db", defaultDBPath, "path to SQLite database file")
}

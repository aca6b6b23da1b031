package cmd

import (
	"fmt"

	"ge-sync/core/config"
	"ge-sync/core/database"
	"ge-sync/core/logger"
	"ge-sync/feature/inventory/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// requiredColumns are the columns the sync writes; a pre-existing schema must have them.
var requiredColumns = map[string][]string{
	"inventory_items":   append([]string{"id", "serial", "company_id", "location_id", "status"}, models.SyncColumns...),
	"ge_loads":          append(append([]string{}, models.LoadScopeColumns...), models.LoadSyncColumns...),
	"ge_change_log":     {"id", "serial", "change_type", "previous_state", "current_state", "run_token", "source"},
	"sync_activity_log": {"id", "run_token", "action", "success", "stats"},
}

// migrateCmd creates or updates the sync tables.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the inventory sync tables",
	Long: `Runs gorm AutoMigrate for every sync table and then verifies that each
table carries the columns the sync writes.`,
	RunE: runMigrate,
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	for table, cols := range requiredColumns {
		missing, err := database.MissingColumns(db, table, cols)
		if err != nil {
			return fmt.Errorf("failed to inspect %s: %w", table, err)
		}
		if len(missing) > 0 {
			return fmt.Errorf("table %s is missing columns: %v", table, missing)
		}
	}

	l.Info("Migration complete", zap.Int("tables", len(requiredColumns)))
	return nil
}

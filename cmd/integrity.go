package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"ge-sync/core/config"
	"ge-sync/core/database"
	"ge-sync/core/logger"
	"ge-sync/core/storage"
	"ge-sync/feature/integrity"
	"ge-sync/feature/integrity/checks"
	"ge-sync/feature/inventory/snapshot"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	integrityLocation string
	integrityCompany  string
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the sync schema and snapshot exports",
	Long:  `Checks that the sync tables match the models and, with --location, that every unit has a fresh snapshot.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, integrityLocation != "")
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the sync tables against the models",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false)
	},
}

// snapshotsCmd represents the integrity snapshots command
var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Report the newest snapshot of every unit for a location",
	RunE: func(cmd *cobra.Command, args []string) error {
		if integrityLocation == "" {
			return fmt.Errorf("--location is required")
		}
		return runIntegrityChecks(cmd.Context(), false, true)
	},
}

func init() {
	integrityCmd.PersistentFlags().StringVar(&integrityLocation, "location", "", "Location ID for the snapshot check")
	integrityCmd.PersistentFlags().StringVar(&integrityCompany, "company", "", "Company ID (defaults to SYNC_COMPANY_ID)")

	integrityCmd.AddCommand(schemaCmd)
	integrityCmd.AddCommand(snapshotsCmd)
	RootCmd.AddCommand(integrityCmd)
}

func runIntegrityChecks(ctx context.Context, checkSchema, checkSnapshots bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logg.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("database connection required: %w", err)
	}

	var (
		client storage.Client
		finder checks.SnapshotFinder
	)
	if checkSnapshots && cfg.Sync.Source != "http" {
		client, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
		finder = snapshot.NewStorageSource(client, cfg.Storage.Bucket, cfg.Sync.SnapshotPrefix)
	}

	maxAge := time.Duration(cfg.Sync.SnapshotMaxAgeMinutes) * time.Minute
	svc := integrity.NewService(client, cfg.Storage.Bucket, finder, db, cfg.Sync.CompanyID, maxAge, logg)

	report := make(map[string]any)
	healthy := true

	if checkSchema {
		schema, err := svc.CheckSchema()
		if err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}
		report["schema"] = schema
		if !schema.Matched {
			healthy = false
			logg.Warn("Schema drift detected", zap.Int("tables", len(schema.Tables)), zap.Strings("errors", schema.Errors))
		}
	}

	if checkSnapshots {
		units, err := svc.CheckSnapshots(ctx, integrityCompany, integrityLocation)
		if err != nil {
			return fmt.Errorf("snapshot check failed: %w", err)
		}
		report["snapshots"] = units
		for _, u := range units {
			if u.Status != "ok" {
				healthy = false
				logg.Warn("Snapshot not healthy", zap.String("unit", u.Unit), zap.String("status", u.Status))
			}
		}
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))

	if !healthy {
		return fmt.Errorf("integrity checks found problems")
	}
	logg.Info("Integrity checks passed")
	return nil
}

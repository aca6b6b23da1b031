package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"ge-sync/core/config"
	"ge-sync/core/logger"
	"ge-sync/feature/inventory/sync"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncLocation string
	syncCompany  string
	syncDryRun   bool
	syncRunToken string
)

// syncCmd runs a sync from the command line.
var syncCmd = &cobra.Command{
	Use:   "sync [bucket|all]",
	Short: "Reconcile a location against the latest GE snapshot",
	Long: `Reconcile one bucket, or every bucket in dependency order, for a location.

Buckets: ` + strings.Join(sync.UnitNames(), ", ") + `

Examples:
  # Preview every bucket without writing
  sync all --location 19SU --dry-run

  # Sync the ASIS bucket
  sync asis --location 19SU`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncLocation, "location", "", "Location ID (required)")
	syncCmd.Flags().StringVar(&syncCompany, "company", "", "Company ID (defaults to SYNC_COMPANY_ID)")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Compute the plan without writing")
	syncCmd.Flags().StringVar(&syncRunToken, "run-token", "", "Run token recorded on every change event")
	_ = syncCmd.MarkFlagRequired("location")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Same budget as an HTTP run, which the lock TTL is checked against
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.RequestTimeout())
	defer cancel()

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	target := "all"
	if len(args) == 1 {
		target = strings.ToLower(args[0])
	}

	var unit sync.Unit
	if target != "all" {
		var ok bool
		if unit, ok = sync.UnitByName(target); !ok {
			return fmt.Errorf("unknown bucket %q, expected one of: all, %s", target, strings.Join(sync.UnitNames(), ", "))
		}
	}

	eng, err := newEngine(ctx, cfg, l)
	if err != nil {
		return err
	}

	req := sync.Request{
		CompanyID:  syncCompany,
		LocationID: syncLocation,
		RunToken:   syncRunToken,
		DryRun:     syncDryRun,
		Trigger:    "cli",
	}
	if req.CompanyID == "" {
		req.CompanyID = cfg.Sync.CompanyID
	}

	if !req.DryRun {
		lockUnit := sync.AllUnits
		if target != "all" {
			lockUnit = unit
		}
		release, err := eng.orchestrator.Syncer().Lock(ctx, eng.locker, lockUnit, req)
		if err != nil {
			return fmt.Errorf("location %s: %w", req.LocationID, err)
		}
		defer release()
	}

	var (
		result  any
		success bool
	)
	if target == "all" {
		res := eng.orchestrator.SyncAll(ctx, req)
		result, success = res, res.Success
	} else {
		res, _ := eng.orchestrator.Syncer().SyncUnit(ctx, unit, req)
		result, success = res, res.Success
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))

	if !success {
		return fmt.Errorf("sync %s finished with errors", target)
	}
	l.Info("Sync finished", zap.String("target", target), zap.Bool("dry_run", req.DryRun))
	return nil
}

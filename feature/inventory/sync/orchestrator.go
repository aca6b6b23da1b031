package sync

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ge-sync/feature/inventory/models"
	"ge-sync/feature/inventory/reconcile"

	"go.uber.org/zap"
)

// RunResult aggregates a unified run over every unit.
type RunResult struct {
	RunToken        string          `json:"run_token"`
	CompanyID       string          `json:"company_id"`
	LocationID      string          `json:"location_id"`
	DryRun          bool            `json:"dry_run"`
	Success         bool            `json:"success"`
	Buckets         []*BucketResult `json:"buckets"`
	Stats           reconcile.Stats `json:"stats"`
	Error           string          `json:"error,omitempty"`
	OverlappingRuns []string        `json:"overlapping_runs,omitempty"`
	DurationMs      int64           `json:"duration_ms"`
}

// Orchestrator runs every unit for a location in dependency order.
type Orchestrator struct {
	syncer *Syncer
	units  []Unit
}

// NewOrchestrator creates an orchestrator over Units.
func NewOrchestrator(syncer *Syncer) *Orchestrator {
	return &Orchestrator{syncer: syncer, units: Units}
}

// Syncer returns the single-bucket syncer the orchestrator drives.
func (o *Orchestrator) Syncer() *Syncer {
	return o.syncer
}

// SyncAll runs every unit in order. A failing unit is recorded and the next one
// still runs; nothing is retried.
func (o *Orchestrator) SyncAll(ctx context.Context, req Request) *RunResult {
	s := o.syncer
	req = req.withDefaults()
	start := s.now()

	overlap, release := s.guard.Begin(req.LocationID, req.RunToken)
	defer release()
	if len(overlap) > 0 {
		s.logger.Warn("Overlapping sync run detected",
			zap.String("location", req.LocationID),
			zap.String("run_token", req.RunToken),
			zap.Strings("in_flight", overlap),
		)
	}

	result := &RunResult{
		RunToken:        req.RunToken,
		CompanyID:       req.CompanyID,
		LocationID:      req.LocationID,
		DryRun:          req.DryRun,
		OverlappingRuns: overlap,
	}

	var errs []string
	for _, unit := range o.units {
		res, err := s.runUnit(ctx, unit, req)
		result.Buckets = append(result.Buckets, res)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", unit.Name, err))
		}

		result.Stats.Add(res.Stats)
		if unit.Bucket == models.TypeASIS {
			result.Stats.ForSaleLoads = res.Stats.ForSaleLoads
			result.Stats.PickedLoads = res.Stats.PickedLoads
		}
	}

	result.Success = len(errs) == 0
	result.Error = strings.Join(errs, "; ")
	result.DurationMs = s.now().Sub(start).Milliseconds()

	var runErr error
	if !result.Success {
		runErr = errors.New(result.Error)
	}
	s.record(ctx, activityEntry(actionName(ActionAll, req.DryRun), req, "", result.Success, result.DurationMs, result.Stats, runErr))

	s.logger.Info("Unified sync finished",
		zap.String("location", req.LocationID),
		zap.String("run_token", req.RunToken),
		zap.Bool("success", result.Success),
		zap.Int("buckets", len(result.Buckets)),
		zap.Int64("duration_ms", result.DurationMs),
	)

	return result
}

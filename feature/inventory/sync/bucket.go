package sync

import (
	"context"
	"fmt"
	"time"

	core "ge-sync/core/reconcile"
	"ge-sync/feature/inventory/models"
	"ge-sync/feature/inventory/reconcile"
	"ge-sync/feature/inventory/snapshot"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const productsCacheKey = "products"

// Reader is the read side of the canonical store.
type Reader interface {
	LoadState(ctx context.Context, scope reconcile.Scope) (*reconcile.State, error)
	LoadProducts(ctx context.Context) (models.ProductLookup, error)
}

// ActivityLog records every invocation. Implementations must not fail the caller.
type ActivityLog interface {
	Record(ctx context.Context, entry models.SyncActivity)
}

// Request describes who asked for a run and for which location.
type Request struct {
	CompanyID  string
	LocationID string
	RunToken   string
	DryRun     bool
	// Trigger tags change events and logs (api, cli, cron).
	Trigger string
}

func (r Request) withDefaults() Request {
	if r.RunToken == "" {
		r.RunToken = uuid.New().String()
	}
	if r.Trigger == "" {
		r.Trigger = "manual"
	}
	return r
}

// BucketResult is the outcome of one bucket run.
type BucketResult struct {
	Unit            string                     `json:"unit"`
	Bucket          models.InventoryType       `json:"bucket"`
	RunToken        string                     `json:"run_token"`
	DryRun          bool                       `json:"dry_run"`
	Success         bool                       `json:"success"`
	Stats           reconcile.Stats            `json:"stats"`
	ChangesLogged   int                        `json:"changes_logged"`
	ItemsToUpsert   int                        `json:"items_to_upsert"`
	OrphanIDs       []string                   `json:"orphan_ids,omitempty"`
	Conflicts       []reconcile.Conflict       `json:"conflicts,omitempty"`
	Warnings        []snapshot.ValidationError `json:"warnings,omitempty"`
	OverlappingRuns []string                   `json:"overlapping_runs,omitempty"`
	Error           string                     `json:"error,omitempty"`
	DurationMs      int64                      `json:"duration_ms"`
}

// Syncer runs a single bucket: fetch, parse, load, plan, persist.
type Syncer struct {
	source    snapshot.Source
	reader    Reader
	persister *reconcile.Persister
	products  *core.Cache[models.ProductLookup]
	guard     *core.RunGuard
	activity  ActivityLog
	logger    *zap.Logger
	now       func() time.Time
}

// NewSyncer wires a syncer. productTTL bounds how long the product lookup is reused.
func NewSyncer(source snapshot.Source, reader Reader, persister *reconcile.Persister, activity ActivityLog, productTTL time.Duration, logger *zap.Logger) *Syncer {
	return &Syncer{
		source:    source,
		reader:    reader,
		persister: persister,
		products:  core.NewCache[models.ProductLookup](productTTL),
		guard:     core.NewRunGuard(),
		activity:  activity,
		logger:    logger,
		now:       time.Now,
	}
}

// SyncUnit runs one bucket. The result is always populated; the error is the bucket
// failure, if any, and is also reflected in the result.
func (s *Syncer) SyncUnit(ctx context.Context, unit Unit, req Request) (*BucketResult, error) {
	req = req.withDefaults()

	overlap, release := s.guard.Begin(req.LocationID, req.RunToken)
	defer release()
	if len(overlap) > 0 {
		s.logger.Warn("Overlapping sync run detected",
			zap.String("location", req.LocationID),
			zap.String("run_token", req.RunToken),
			zap.Strings("in_flight", overlap),
		)
	}

	res, err := s.runUnit(ctx, unit, req)
	res.OverlappingRuns = overlap
	return res, err
}

func (s *Syncer) runUnit(ctx context.Context, unit Unit, req Request) (*BucketResult, error) {
	start := s.now()
	res := &BucketResult{
		Unit:     unit.Name,
		Bucket:   unit.Bucket,
		RunToken: req.RunToken,
		DryRun:   req.DryRun,
	}
	l := s.logger.With(
		zap.String("location", req.LocationID),
		zap.String("unit", unit.Name),
		zap.String("run_token", req.RunToken),
	)

	err := s.reconcileUnit(ctx, unit, req, res, l)

	res.DurationMs = s.now().Sub(start).Milliseconds()
	if err != nil {
		res.Error = err.Error()
		l.Error("Bucket sync failed", zap.Error(err))
	} else {
		res.Success = true
		l.Info("Bucket sync finished",
			zap.Bool("dry_run", req.DryRun),
			zap.Int("new", res.Stats.NewItems),
			zap.Int("updated", res.Stats.UpdatedItems),
			zap.Int("orphaned", res.Stats.OrphanedItems),
			zap.Int("conflicts", res.Stats.Conflicts),
			zap.Int64("duration_ms", res.DurationMs),
		)
	}

	s.record(ctx, activityEntry(actionName(unit.Name, req.DryRun), req, string(unit.Bucket), res.Success, res.DurationMs, res.Stats, err))
	return res, err
}

func (s *Syncer) reconcileUnit(ctx context.Context, unit Unit, req Request, res *BucketResult, l *zap.Logger) error {
	scope := reconcile.Scope{CompanyID: req.CompanyID, LocationID: req.LocationID, Bucket: unit.Bucket}

	raw, err := s.source.Fetch(ctx, snapshot.Scope{CompanyID: req.CompanyID, LocationID: req.LocationID, Unit: unit.Name})
	if err != nil {
		return err
	}

	snap, err := snapshot.Parse(raw)
	if err != nil {
		return fmt.Errorf("failed to parse snapshot: %w", err)
	}
	for _, w := range snap.Warnings {
		l.Warn("Snapshot row coerced", zap.String("warning", w.Error()))
	}

	state, err := s.reader.LoadState(ctx, scope)
	if err != nil {
		return fmt.Errorf("failed to load current state: %w", err)
	}

	products, err := s.products.GetOrLoad(ctx, productsCacheKey, s.reader.LoadProducts)
	if err != nil {
		return fmt.Errorf("failed to load product lookup: %w", err)
	}

	plan := reconcile.BuildPlan(reconcile.Input{
		Scope:    scope,
		Snapshot: snap,
		State:    *state,
		Products: products,
		RunToken: req.RunToken,
		Source:   req.Trigger,
		Now:      s.now().UTC(),
	})

	res.Stats = plan.Stats
	res.ItemsToUpsert = len(plan.ItemsToUpsert)
	res.OrphanIDs = plan.OrphanIDs
	res.Conflicts = plan.Conflicts
	res.Warnings = plan.Warnings

	if req.DryRun {
		return nil
	}

	written, err := s.persister.Persist(ctx, plan, reconcile.PersistOptions{})
	res.ChangesLogged = written.ChangesLogged
	res.Stats.ChangesLogged = written.ChangesLogged
	res.Stats.ChangeLogFailures = written.ChangeLogFailures
	res.Stats.DuplicateIDs += written.DuplicateIDs
	return err
}

// InvalidateProducts drops the cached product lookup.
func (s *Syncer) InvalidateProducts() {
	s.products.Invalidate(productsCacheKey)
}

func (s *Syncer) record(ctx context.Context, entry models.SyncActivity) {
	if s.activity == nil {
		return
	}
	s.activity.Record(ctx, entry)
}

// actionName is the activity-log action for a run of unit ("all" for a unified run).
func actionName(unit string, dryRun bool) string {
	if dryRun {
		return "preview_" + unit
	}
	return "sync_" + unit
}

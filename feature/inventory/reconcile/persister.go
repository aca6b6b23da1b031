package reconcile

import (
	"context"
	"time"

	core "ge-sync/core/reconcile"
	"ge-sync/feature/inventory/models"

	"go.uber.org/zap"
)

// Writer is the storage side of the persister.
type Writer interface {
	InsertChanges(ctx context.Context, events []models.ChangeEvent) error
	InsertItems(ctx context.Context, items []models.InventoryItem) error
	UpsertItems(ctx context.Context, items []models.InventoryItem) error
	MarkItemsOrphaned(ctx context.Context, ids []string, at time.Time) error
	ClearOrphanStatus(ctx context.Context, ids []string) error
	UpsertLoads(ctx context.Context, loads []models.Load) error
	MarkLoadsOrphaned(ctx context.Context, ids []uint, at time.Time) error
}

// PersistOptions tunes a single Persist call.
type PersistOptions struct {
	// SkipOrphans leaves unmatched records untouched.
	SkipOrphans bool
}

// Result reports what a Persist call wrote.
type Result struct {
	ChangesLogged     int `json:"changes_logged"`
	ChangeLogFailures int `json:"change_log_failures"`
	Inserted          int `json:"inserted"`
	Upserted          int `json:"upserted"`
	Orphaned          int `json:"orphaned"`
	StatusCleared     int `json:"status_cleared"`
	DuplicateIDs      int `json:"duplicate_ids"`
	LoadsUpserted     int `json:"loads_upserted"`
	LoadsOrphaned     int `json:"loads_orphaned"`
}

// Persister executes plans in bounded batches.
type Persister struct {
	writer    Writer
	batchSize int
	logger    *zap.Logger
}

// NewPersister creates a persister. A non-positive batchSize uses the default.
func NewPersister(writer Writer, batchSize int, logger *zap.Logger) *Persister {
	if batchSize <= 0 {
		batchSize = core.DefaultBatchSize
	}
	return &Persister{writer: writer, batchSize: batchSize, logger: logger}
}

// Persist writes the plan. Change-log failures are counted and skipped; any other
// failure stops the run and is returned as a *PersistenceError. Nothing is rolled back.
func (p *Persister) Persist(ctx context.Context, plan *Plan, opts PersistOptions) (Result, error) {
	var res Result
	l := p.logger.With(
		zap.String("location", plan.Scope.LocationID),
		zap.String("bucket", string(plan.Scope.Bucket)),
		zap.String("run_token", plan.RunToken),
	)

	// 1. Audit trail, best effort
	for i, batch := range core.Chunk(plan.Changes, p.batchSize) {
		if err := p.writer.InsertChanges(ctx, batch); err != nil {
			res.ChangeLogFailures += len(batch)
			l.Warn("Change log batch failed, continuing", zap.Error(&LoggingError{Batch: i, Size: len(batch), Err: err}))
			continue
		}
		res.ChangesLogged += len(batch)
	}

	var inserts, updates []models.InventoryItem
	for _, item := range plan.ItemsToUpsert {
		if item.ID == "" {
			inserts = append(inserts, item)
		} else {
			updates = append(updates, item)
		}
	}

	// 2. Brand-new records
	for i, batch := range core.Chunk(inserts, p.batchSize) {
		if err := p.writer.InsertItems(ctx, batch); err != nil {
			return res, &PersistenceError{Step: "insert items", Batch: i, Err: err}
		}
		res.Inserted += len(batch)
	}

	// 3. Existing records, keyed by id
	updates, dups := core.DedupeLastWins(updates, func(item models.InventoryItem) string { return item.ID })
	if len(dups) > 0 {
		res.DuplicateIDs = len(dups)
		l.Warn("Duplicate ids in upsert payload, last occurrence kept", zap.Strings("ids", dups))
	}
	for i, batch := range core.Chunk(updates, p.batchSize) {
		if err := p.writer.UpsertItems(ctx, batch); err != nil {
			return res, &PersistenceError{Step: "upsert items", Batch: i, Err: err}
		}
		res.Upserted += len(batch)
	}
	for i, batch := range core.Chunk(plan.StatusResetIDs, p.batchSize) {
		if err := p.writer.ClearOrphanStatus(ctx, batch); err != nil {
			return res, &PersistenceError{Step: "clear orphan status", Batch: i, Err: err}
		}
		res.StatusCleared += len(batch)
	}

	// 4. Orphan flags
	if !opts.SkipOrphans {
		for i, batch := range core.Chunk(plan.OrphanIDs, p.batchSize) {
			if err := p.writer.MarkItemsOrphaned(ctx, batch, plan.Now); err != nil {
				return res, &PersistenceError{Step: "orphan items", Batch: i, Err: err}
			}
			res.Orphaned += len(batch)
		}
	}

	// 5. Load metadata
	for i, batch := range core.Chunk(plan.LoadsToUpsert, p.batchSize) {
		if err := p.writer.UpsertLoads(ctx, batch); err != nil {
			return res, &PersistenceError{Step: "upsert loads", Batch: i, Err: err}
		}
		res.LoadsUpserted += len(batch)
	}
	if !opts.SkipOrphans {
		for i, batch := range core.Chunk(plan.LoadOrphanIDs, p.batchSize) {
			if err := p.writer.MarkLoadsOrphaned(ctx, batch, plan.Now); err != nil {
				return res, &PersistenceError{Step: "orphan loads", Batch: i, Err: err}
			}
			res.LoadsOrphaned += len(batch)
		}
	}

	l.Info("Plan persisted",
		zap.Int("changes_logged", res.ChangesLogged),
		zap.Int("change_log_failures", res.ChangeLogFailures),
		zap.Int("inserted", res.Inserted),
		zap.Int("upserted", res.Upserted),
		zap.Int("orphaned", res.Orphaned),
		zap.Int("loads_upserted", res.LoadsUpserted),
	)

	return res, nil
}

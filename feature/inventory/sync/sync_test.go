package sync

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"ge-sync/core/database"
	"ge-sync/core/lock"
	"ge-sync/feature/inventory/models"
	"ge-sync/feature/inventory/reconcile"
	"ge-sync/feature/inventory/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeSource struct {
	raws map[string]*snapshot.Raw
	errs map[string]error
}

func (f *fakeSource) Fetch(_ context.Context, scope snapshot.Scope) (*snapshot.Raw, error) {
	if err := f.errs[scope.Unit]; err != nil {
		return nil, &snapshot.FetchError{Scope: scope, Err: err}
	}
	if raw, ok := f.raws[scope.Unit]; ok {
		return raw, nil
	}
	return &snapshot.Raw{}, nil
}

type countingReader struct {
	*reconcile.Store
	productLoads int32
}

func (c *countingReader) LoadProducts(ctx context.Context) (models.ProductLookup, error) {
	atomic.AddInt32(&c.productLoads, 1)
	return c.Store.LoadProducts(ctx)
}

type fixture struct {
	db     *gorm.DB
	source *fakeSource
	reader *countingReader
	syncer *Syncer
	orch   *Orchestrator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	logger := zap.NewNop()
	store := reconcile.NewStore(db)
	reader := &countingReader{Store: store}
	source := &fakeSource{raws: map[string]*snapshot.Raw{}, errs: map[string]error{}}
	syncer := NewSyncer(source, reader, reconcile.NewPersister(store, 100, logger), NewGormActivityLog(db, logger), time.Minute, logger)

	return &fixture{db: db, source: source, reader: reader, syncer: syncer, orch: NewOrchestrator(syncer)}
}

func (f *fixture) activities(t *testing.T) []models.SyncActivity {
	var rows []models.SyncActivity
	require.NoError(t, f.db.Order("id").Find(&rows).Error)
	return rows
}

func (f *fixture) items(t *testing.T) []models.InventoryItem {
	var rows []models.InventoryItem
	require.NoError(t, f.db.Order("serial").Find(&rows).Error)
	return rows
}

func req() Request {
	return Request{CompanyID: "acme", LocationID: "loc-1", RunToken: "run-1", Trigger: "test"}
}

func TestUnitByName(t *testing.T) {
	u, ok := UnitByName(" Orders ")
	assert.True(t, ok)
	assert.Equal(t, models.TypeStaged, u.Bucket)

	_, ok = UnitByName("garage")
	assert.False(t, ok)

	assert.Equal(t, []string{"fg", "asis", "sta", "inbound", "backhaul", "orders"}, UnitNames())
}

func TestSyncUnit_Commit(t *testing.T) {
	f := newFixture(t)
	f.source.raws["fg"] = &snapshot.Raw{Items: []snapshot.RawItem{{Serial: "100", Model: "M1", Qty: 1, AvailabilityStatus: "Available"}}}

	res, err := f.syncer.SyncUnit(context.Background(), UnitFG, req())
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 1, res.Stats.NewItems)
	assert.Equal(t, 1, res.ChangesLogged)
	assert.Len(t, f.items(t), 1)

	acts := f.activities(t)
	require.Len(t, acts, 1)
	assert.Equal(t, "sync_fg", acts[0].Action)
	assert.True(t, acts[0].Success)
	assert.EqualValues(t, 1, acts[0].Stats["new_items"])
}

func TestSyncUnit_DryRunWritesNothing(t *testing.T) {
	f := newFixture(t)
	f.source.raws["fg"] = &snapshot.Raw{Items: []snapshot.RawItem{{Serial: "100", Model: "M1", Qty: 1}}}

	r := req()
	r.DryRun = true
	res, err := f.syncer.SyncUnit(context.Background(), UnitFG, r)
	require.NoError(t, err)

	assert.True(t, res.DryRun)
	assert.Equal(t, 1, res.Stats.NewItems)
	assert.Equal(t, 1, res.ItemsToUpsert)
	assert.Equal(t, 0, res.ChangesLogged)
	assert.Empty(t, f.items(t))

	var changes int64
	f.db.Model(&models.ChangeEvent{}).Count(&changes)
	assert.Zero(t, changes)

	acts := f.activities(t)
	require.Len(t, acts, 1)
	assert.Equal(t, "preview_fg", acts[0].Action)
}

func TestSyncUnit_FetchError(t *testing.T) {
	f := newFixture(t)
	f.source.errs["sta"] = errors.New("export missing")

	res, err := f.syncer.SyncUnit(context.Background(), UnitSTA, req())

	var fetchErr *snapshot.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "export missing")
	assert.Empty(t, f.items(t))

	acts := f.activities(t)
	require.Len(t, acts, 1)
	assert.False(t, acts[0].Success)
	require.NotNil(t, acts[0].Error)
	assert.Contains(t, *acts[0].Error, "export missing")
}

func TestSyncUnit_ReportsOverlap(t *testing.T) {
	f := newFixture(t)

	_, release := f.syncer.guard.Begin("loc-1", "other-run")
	defer release()

	res, err := f.syncer.SyncUnit(context.Background(), UnitFG, req())
	require.NoError(t, err)
	assert.Equal(t, []string{"other-run"}, res.OverlappingRuns)
}

func TestSyncAll_PartialFailure(t *testing.T) {
	f := newFixture(t)
	f.source.raws["fg"] = &snapshot.Raw{
		Items: []snapshot.RawItem{{Serial: "F1", Model: "M1", Qty: 1}},
		Loads: []snapshot.RawLoad{{LoadNumber: "FL1", Status: "for sale"}},
	}
	f.source.raws["asis"] = &snapshot.Raw{
		Items: []snapshot.RawItem{{Serial: "A1", Model: "M1", Qty: 1}},
		Loads: []snapshot.RawLoad{
			{LoadNumber: "L1", Status: "for sale"},
			{LoadNumber: "L2", Status: "sold", CSOStatus: "picked"},
		},
	}
	f.source.errs["sta"] = errors.New("timeout")
	f.source.errs["orders"] = errors.New("bad gateway")

	result := f.orch.SyncAll(context.Background(), req())

	assert.False(t, result.Success)
	require.Len(t, result.Buckets, 6)
	assert.True(t, result.Buckets[0].Success)
	assert.True(t, result.Buckets[1].Success)
	assert.False(t, result.Buckets[2].Success)
	assert.True(t, result.Buckets[3].Success, "siblings after a failure still run")
	assert.False(t, result.Buckets[5].Success)

	parts := strings.Split(result.Error, "; ")
	require.Len(t, parts, 2)
	assert.True(t, strings.HasPrefix(parts[0], "sta: "))
	assert.True(t, strings.HasPrefix(parts[1], "orders: "))

	assert.Equal(t, 2, result.Stats.TotalItems)
	assert.Equal(t, 2, result.Stats.NewItems)
	assert.Equal(t, 1, result.Stats.ForSaleLoads, "load counts come from ASIS only")
	assert.Equal(t, 1, result.Stats.PickedLoads)
	assert.Equal(t, 3, result.Stats.TotalLoads)

	acts := f.activities(t)
	require.Len(t, acts, 7)
	last := acts[6]
	assert.Equal(t, "sync_all", last.Action)
	assert.False(t, last.Success)
	assert.Equal(t, result.Error, *last.Error)

	assert.EqualValues(t, 1, atomic.LoadInt32(&f.reader.productLoads), "product lookup is shared across buckets")
}

func TestSyncAll_MigratesASISToSTA(t *testing.T) {
	f := newFixture(t)
	f.source.raws["asis"] = &snapshot.Raw{Items: []snapshot.RawItem{{Serial: "S1", Model: "M1", Qty: 1}}}

	first := f.orch.SyncAll(context.Background(), req())
	require.True(t, first.Success)
	rows := f.items(t)
	require.Len(t, rows, 1)
	id := rows[0].ID

	f.source.raws["asis"] = &snapshot.Raw{}
	f.source.raws["sta"] = &snapshot.Raw{Items: []snapshot.RawItem{{Serial: "S1", Model: "M1", Qty: 1}}}

	r := req()
	r.RunToken = "run-2"
	second := f.orch.SyncAll(context.Background(), r)
	require.True(t, second.Success)

	rows = f.items(t)
	require.Len(t, rows, 1)
	assert.Equal(t, id, rows[0].ID)
	assert.Equal(t, models.TypeSTA, rows[0].InventoryType)
	assert.False(t, rows[0].GEOrphaned)
	assert.Nil(t, rows[0].Status, "status written by the ASIS orphaning is cleared by STA")

	var events []models.ChangeEvent
	require.NoError(t, f.db.Where("run_token = ?", "run-2").Find(&events).Error)
	require.Len(t, events, 2)
	byType := map[models.ChangeType]models.ChangeEvent{}
	for _, e := range events {
		byType[e.ChangeType] = e
	}
	assert.Equal(t, models.TypeASIS, byType[models.ChangeItemDisappeared].InventoryType)
	appeared := byType[models.ChangeItemAppeared]
	assert.Equal(t, models.TypeSTA, appeared.InventoryType)
	assert.Equal(t, true, appeared.PreviousState["orphaned"])
	assert.Equal(t, "ASIS", appeared.PreviousState["inventory_type"], "recovery names the bucket it came from")
}

type busyLocker struct{}

func (busyLocker) Acquire(context.Context, string) (func(), bool, error) {
	return nil, false, nil
}

func TestScheduler_RunOnce(t *testing.T) {
	f := newFixture(t)
	f.source.raws["fg"] = &snapshot.Raw{Items: []snapshot.RawItem{{Serial: "100", Model: "M1", Qty: 1}}}

	s, err := NewScheduler("@every 1h", f.orch, lock.NopLocker{}, "acme", []string{"loc-1", "loc-2"}, time.Minute, zap.NewNop())
	require.NoError(t, err)

	results := s.RunOnce(context.Background())
	require.Len(t, results, 2)
	assert.Equal(t, "loc-1", results[0].LocationID)
	assert.Equal(t, "loc-2", results[1].LocationID)
	assert.Len(t, f.items(t), 2)

	before := len(f.activities(t))
	busy, err := NewScheduler("@every 1h", f.orch, busyLocker{}, "acme", []string{"loc-1"}, time.Minute, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, busy.RunOnce(context.Background()))

	acts := f.activities(t)
	require.Len(t, acts, before+1, "skipped location is still recorded")
	skipped := acts[before]
	assert.Equal(t, "sync_all", skipped.Action)
	assert.Equal(t, "loc-1", skipped.LocationID)
	assert.False(t, skipped.Success)
	require.NotNil(t, skipped.Error)
	assert.Equal(t, ErrLocked.Error(), *skipped.Error)
}

type failingLocker struct{}

func (failingLocker) Acquire(context.Context, string) (func(), bool, error) {
	return nil, false, errors.New("connection refused")
}

func TestSyncer_LockRecordsRefusals(t *testing.T) {
	f := newFixture(t)
	r := req()
	r.RunToken = "run-locked"

	release, err := f.syncer.Lock(context.Background(), lock.NopLocker{}, UnitASIS, r)
	require.NoError(t, err)
	release()
	assert.Empty(t, f.activities(t), "granted lock records nothing by itself")

	_, err = f.syncer.Lock(context.Background(), busyLocker{}, UnitASIS, r)
	assert.ErrorIs(t, err, ErrLocked)

	_, err = f.syncer.Lock(context.Background(), failingLocker{}, AllUnits, r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	acts := f.activities(t)
	require.Len(t, acts, 2)
	assert.Equal(t, "sync_asis", acts[0].Action)
	assert.Equal(t, "ASIS", acts[0].InventoryType)
	assert.Equal(t, "run-locked", acts[0].RunToken)
	assert.False(t, acts[0].Success)
	assert.Equal(t, "sync_all", acts[1].Action)
	assert.Empty(t, acts[1].InventoryType)
	require.NotNil(t, acts[1].Error)
	assert.Contains(t, *acts[1].Error, "failed to acquire location lock")
}

func TestScheduler_InvalidSpec(t *testing.T) {
	f := newFixture(t)

	_, err := NewScheduler("every tuesday", f.orch, lock.NopLocker{}, "acme", nil, time.Minute, zap.NewNop())
	assert.ErrorContains(t, err, "invalid sync schedule")
}

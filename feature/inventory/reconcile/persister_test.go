package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"ge-sync/feature/inventory/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeWriter struct {
	changeBatches [][]models.ChangeEvent
	inserts       [][]models.InventoryItem
	upserts       [][]models.InventoryItem
	orphaned      [][]string
	statusResets  [][]string
	loads         [][]models.Load
	loadOrphans   [][]uint

	failChanges func(batch int) error
	failInsert  error
	failUpsert  error
}

func (f *fakeWriter) InsertChanges(_ context.Context, events []models.ChangeEvent) error {
	n := len(f.changeBatches)
	f.changeBatches = append(f.changeBatches, events)
	if f.failChanges != nil {
		return f.failChanges(n)
	}
	return nil
}

func (f *fakeWriter) InsertItems(_ context.Context, items []models.InventoryItem) error {
	if f.failInsert != nil {
		return f.failInsert
	}
	f.inserts = append(f.inserts, items)
	return nil
}

func (f *fakeWriter) UpsertItems(_ context.Context, items []models.InventoryItem) error {
	if f.failUpsert != nil {
		return f.failUpsert
	}
	f.upserts = append(f.upserts, items)
	return nil
}

func (f *fakeWriter) MarkItemsOrphaned(_ context.Context, ids []string, _ time.Time) error {
	f.orphaned = append(f.orphaned, ids)
	return nil
}

func (f *fakeWriter) ClearOrphanStatus(_ context.Context, ids []string) error {
	f.statusResets = append(f.statusResets, ids)
	return nil
}

func (f *fakeWriter) UpsertLoads(_ context.Context, loads []models.Load) error {
	f.loads = append(f.loads, loads)
	return nil
}

func (f *fakeWriter) MarkLoadsOrphaned(_ context.Context, ids []uint, _ time.Time) error {
	f.loadOrphans = append(f.loadOrphans, ids)
	return nil
}

func samplePlan() *Plan {
	return &Plan{
		Scope:    scopeFor(models.TypeFG),
		RunToken: "run-1",
		Now:      testNow,
		ItemsToUpsert: []models.InventoryItem{
			{Model: "A"}, {Model: "B"}, {Model: "C"},
			{ID: "id-1", Model: "D"}, {ID: "id-2", Model: "E"},
		},
		OrphanIDs:      []string{"id-8", "id-9"},
		StatusResetIDs: []string{"id-2"},
		Changes:        make([]models.ChangeEvent, 5),
		LoadsToUpsert:  []models.Load{{LoadNumber: "L1"}},
		LoadOrphanIDs:  []uint{7},
	}
}

func TestPersister_Batches(t *testing.T) {
	w := &fakeWriter{}

	res, err := NewPersister(w, 2, zap.NewNop()).Persist(context.Background(), samplePlan(), PersistOptions{})
	require.NoError(t, err)

	assert.Len(t, w.changeBatches, 3)
	assert.Len(t, w.inserts, 2)
	assert.Len(t, w.inserts[0], 2)
	assert.Len(t, w.upserts, 1)
	assert.Equal(t, [][]string{{"id-8", "id-9"}}, w.orphaned)
	assert.Equal(t, [][]string{{"id-2"}}, w.statusResets)
	assert.Equal(t, [][]uint{{7}}, w.loadOrphans)

	assert.Equal(t, Result{
		ChangesLogged: 5,
		Inserted:      3,
		Upserted:      2,
		Orphaned:      2,
		StatusCleared: 1,
		LoadsUpserted: 1,
		LoadsOrphaned: 1,
	}, res)
}

func TestPersister_ChangeLogFailureDoesNotAbort(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	w := &fakeWriter{failChanges: func(batch int) error {
		if batch == 1 {
			return errors.New("disk full")
		}
		return nil
	}}

	res, err := NewPersister(w, 2, zap.New(core)).Persist(context.Background(), samplePlan(), PersistOptions{})
	require.NoError(t, err)

	assert.Equal(t, 3, res.ChangesLogged)
	assert.Equal(t, 2, res.ChangeLogFailures)
	assert.Equal(t, 3, res.Inserted)
	assert.Equal(t, 1, logs.FilterMessage("Change log batch failed, continuing").Len())
}

func TestPersister_InsertFailureAborts(t *testing.T) {
	w := &fakeWriter{failInsert: errors.New("constraint violation")}

	res, err := NewPersister(w, 2, zap.NewNop()).Persist(context.Background(), samplePlan(), PersistOptions{})

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "insert items", perr.Step)
	assert.Equal(t, 0, perr.Batch)
	assert.Equal(t, 5, res.ChangesLogged)
	assert.Empty(t, w.upserts, "later steps do not run")
	assert.Empty(t, w.orphaned)
}

func TestPersister_UpsertFailureAborts(t *testing.T) {
	w := &fakeWriter{failUpsert: errors.New("deadlock")}

	_, err := NewPersister(w, 2, zap.NewNop()).Persist(context.Background(), samplePlan(), PersistOptions{})

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "upsert items", perr.Step)
	assert.Len(t, w.inserts, 2, "committed batches stay applied")
}

func TestPersister_DuplicateIDsCounted(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	w := &fakeWriter{}
	plan := &Plan{
		Scope: scopeFor(models.TypeFG),
		Now:   testNow,
		ItemsToUpsert: []models.InventoryItem{
			{ID: "id-1", Model: "first"},
			{ID: "id-2", Model: "other"},
			{ID: "id-1", Model: "second"},
		},
	}

	res, err := NewPersister(w, 10, zap.New(core)).Persist(context.Background(), plan, PersistOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.DuplicateIDs)
	require.Len(t, w.upserts, 1)
	assert.Equal(t, []models.InventoryItem{{ID: "id-1", Model: "second"}, {ID: "id-2", Model: "other"}}, w.upserts[0])
	assert.Equal(t, 1, logs.FilterMessage("Duplicate ids in upsert payload, last occurrence kept").Len())
}

func TestPersister_SkipOrphans(t *testing.T) {
	w := &fakeWriter{}

	res, err := NewPersister(w, 0, zap.NewNop()).Persist(context.Background(), samplePlan(), PersistOptions{SkipOrphans: true})
	require.NoError(t, err)

	assert.Empty(t, w.orphaned)
	assert.Empty(t, w.loadOrphans)
	assert.Equal(t, 0, res.Orphaned)
	assert.Len(t, w.inserts, 1, "default batch size holds every row")
}

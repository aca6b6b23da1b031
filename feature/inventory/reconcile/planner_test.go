package reconcile

import (
	"testing"

	"ge-sync/feature/inventory/models"
	"ge-sync/feature/inventory/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPlan_NewItemAgainstEmptyStore(t *testing.T) {
	plan := BuildPlan(input(models.TypeFG, []snapshot.Item{item("100", "M1", 1, "Available", nil)}, State{}))

	assert.Equal(t, 1, plan.Stats.NewItems)
	assert.Equal(t, 0, plan.Stats.OrphanedItems)
	assert.Empty(t, plan.OrphanIDs)
	require.Len(t, plan.Changes, 1)
	assert.Equal(t, models.ChangeItemAppeared, plan.Changes[0].ChangeType)
	assert.Equal(t, "100", plan.Changes[0].CurrentState["serial"])

	require.Len(t, plan.ItemsToUpsert, 1)
	row := plan.ItemsToUpsert[0]
	assert.Empty(t, row.ID)
	assert.Equal(t, models.TypeFG, row.InventoryType)
	assert.Equal(t, 1.0, *row.GEInvQty)
	assert.Equal(t, 1, plan.Stats.UnassignedItems)
}

func TestBuildPlan_LoadAssigned(t *testing.T) {
	existing := record("id-100", "100", models.TypeASIS)

	plan := BuildPlan(input(models.TypeASIS,
		[]snapshot.Item{item("100", "M1", 1, "Available", str("L9"))},
		State{Current: []models.InventoryItem{existing}}))

	require.Len(t, plan.Changes, 1)
	e := plan.Changes[0]
	assert.Equal(t, models.ChangeItemLoadChanged, e.ChangeType)
	assert.Nil(t, e.OldValue)
	assert.Equal(t, "L9", *e.NewValue)
	assert.Equal(t, "sub_inventory", *e.FieldChanged)

	require.Len(t, plan.ItemsToUpsert, 1)
	assert.Equal(t, "id-100", plan.ItemsToUpsert[0].ID)
	assert.Equal(t, "L9", *plan.ItemsToUpsert[0].SubInventory)
	assert.Equal(t, testNow, plan.ItemsToUpsert[0].UpdatedAt)
	assert.Equal(t, 1, plan.Stats.PlacedItems)
}

func TestBuildPlan_UnchangedNotUpserted(t *testing.T) {
	existing := record("id-1", "S1", models.TypeFG)

	plan := BuildPlan(input(models.TypeFG, []snapshot.Item{item("S1", "M1", 1, "Available", nil)},
		State{Current: []models.InventoryItem{existing}}))

	assert.Empty(t, plan.ItemsToUpsert)
	assert.Empty(t, plan.Changes)
	assert.Equal(t, 1, plan.Stats.UnchangedItems)
}

func TestBuildPlan_StatusChanges(t *testing.T) {
	current := []models.InventoryItem{record("id-1", "S1", models.TypeFG), record("id-2", "S2", models.TypeFG)}

	plan := BuildPlan(input(models.TypeFG, []snapshot.Item{
		item("S1", "M1", 1, "Reserved", nil),
		item("S2", "M1", 1, "Unavailable", nil),
	}, State{Current: current}))

	require.Len(t, plan.Changes, 2)
	assert.Equal(t, models.ChangeItemReserved, plan.Changes[0].ChangeType)
	assert.Equal(t, models.ChangeItemStatusChanged, plan.Changes[1].ChangeType)
	assert.Equal(t, "Available", *plan.Changes[1].OldValue)
	assert.Equal(t, "Unavailable", *plan.Changes[1].NewValue)
}

func TestBuildPlan_QtyChanges(t *testing.T) {
	t.Run("FirstSyncHasNoQtyEvent", func(t *testing.T) {
		existing := record("id-1", "S1", models.TypeFG)
		existing.GEInvQty = nil

		plan := BuildPlan(input(models.TypeFG, []snapshot.Item{item("S1", "M1", 3, "Available", nil)},
			State{Current: []models.InventoryItem{existing}}))

		assert.Empty(t, changesOf(plan, models.ChangeItemQtyChanged))
		require.Len(t, plan.ItemsToUpsert, 1)
		assert.Equal(t, 3.0, *plan.ItemsToUpsert[0].GEInvQty)
	})

	t.Run("DefinedQtyChanged", func(t *testing.T) {
		plan := BuildPlan(input(models.TypeFG, []snapshot.Item{item("S1", "M1", 2, "Available", nil)},
			State{Current: []models.InventoryItem{record("id-1", "S1", models.TypeFG)}}))

		events := changesOf(plan, models.ChangeItemQtyChanged)
		require.Len(t, events, 1)
		assert.Equal(t, "1", *events[0].OldValue)
		assert.Equal(t, "2", *events[0].NewValue)
	})

	t.Run("UnparsedQtyKeepsStoredValue", func(t *testing.T) {
		incoming := item("S1", "M1", 1, "Available", nil)
		incoming.QtyParsed = false
		existing := record("id-1", "S1", models.TypeFG)
		existing.GEInvQty = f64(4)

		plan := BuildPlan(input(models.TypeFG, []snapshot.Item{incoming}, State{Current: []models.InventoryItem{existing}}))

		assert.Empty(t, plan.Changes)
		assert.Empty(t, plan.ItemsToUpsert)
	})
}

func TestBuildPlan_MigrationIntoSTA(t *testing.T) {
	asis := record("id-s1", "S1", models.TypeASIS)

	plan := BuildPlan(input(models.TypeSTA, []snapshot.Item{item("S1", "M1", 1, "Available", nil)},
		State{Equivalent: []models.InventoryItem{asis}}))

	assert.Equal(t, 1, plan.Stats.MigratedItems)
	assert.Equal(t, 0, plan.Stats.NewItems)
	require.Len(t, plan.ItemsToUpsert, 1)
	assert.Equal(t, "id-s1", plan.ItemsToUpsert[0].ID)
	assert.Equal(t, models.TypeSTA, plan.ItemsToUpsert[0].InventoryType)
	assert.Empty(t, plan.OrphanIDs)
}

func TestBuildPlan_ASISDoesNotStealLiveSTA(t *testing.T) {
	sta := record("id-s1", "S1", models.TypeSTA)

	plan := BuildPlan(input(models.TypeASIS, []snapshot.Item{item("S1", "M1", 1, "Available", nil)},
		State{Equivalent: []models.InventoryItem{sta}}))

	assert.Equal(t, 1, plan.Stats.EquivalentSkipped)
	assert.Empty(t, plan.ItemsToUpsert)
	assert.Empty(t, plan.Changes)

	sta.GEOrphaned = true
	plan = BuildPlan(input(models.TypeASIS, []snapshot.Item{item("S1", "M1", 1, "Available", nil)},
		State{Equivalent: []models.InventoryItem{sta}}))

	assert.Equal(t, 1, plan.Stats.MigratedItems)
	assert.Equal(t, 1, plan.Stats.RecoveredItems)
	require.Len(t, plan.ItemsToUpsert, 1)
	assert.Equal(t, models.TypeASIS, plan.ItemsToUpsert[0].InventoryType)
}

func TestBuildPlan_ConflictWithForeignBucket(t *testing.T) {
	stale := record("id-asis-s2", "S2", models.TypeASIS)

	plan := BuildPlan(input(models.TypeASIS, []snapshot.Item{item("S2", "M1", 1, "Available", nil)},
		State{
			Current:     []models.InventoryItem{stale},
			ForeignLive: map[string]models.InventoryType{"S2": models.TypeFG},
		}))

	assert.Equal(t, 1, plan.Stats.Conflicts)
	assert.Empty(t, plan.ItemsToUpsert)
	assert.Empty(t, plan.OrphanIDs, "the target row of a conflicting serial is left untouched")
	assert.Empty(t, plan.Changes)
	require.Len(t, plan.Conflicts, 1)
	assert.Equal(t, Conflict{Serial: "S2", Model: "M1", Bucket: models.TypeFG}, plan.Conflicts[0])
}

func TestBuildPlan_OrphanAndRecovery(t *testing.T) {
	gone := record("id-1", "S1", models.TypeFG)
	alreadyGone := record("id-2", "S2", models.TypeFG)
	alreadyGone.GEOrphaned = true
	back := record("id-3", "S3", models.TypeFG)
	back.GEOrphaned = true
	back.GEOrphanedAt = &testNow

	plan := BuildPlan(input(models.TypeFG, []snapshot.Item{item("S3", "M1", 1, "Available", nil)},
		State{Current: []models.InventoryItem{gone, alreadyGone, back}}))

	assert.Equal(t, []string{"id-1"}, plan.OrphanIDs)
	disappeared := changesOf(plan, models.ChangeItemDisappeared)
	require.Len(t, disappeared, 1)
	assert.Equal(t, "S1", disappeared[0].PreviousState["serial"])

	appeared := changesOf(plan, models.ChangeItemAppeared)
	require.Len(t, appeared, 1)
	assert.Equal(t, true, appeared[0].PreviousState["orphaned"])

	require.Len(t, plan.ItemsToUpsert, 1)
	assert.False(t, plan.ItemsToUpsert[0].GEOrphaned)
	assert.Nil(t, plan.ItemsToUpsert[0].GEOrphanedAt)
	assert.Equal(t, 1, plan.Stats.RecoveredItems)
	assert.Equal(t, 1, plan.Stats.OrphanedItems)
}

func TestBuildPlan_RecoveryResetsOrphanStatus(t *testing.T) {
	marked := record("id-1", "S1", models.TypeFG)
	marked.GEOrphaned = true
	marked.Status = str(models.StatusNotInGE)
	restamped := record("id-2", "S2", models.TypeFG)
	restamped.GEOrphaned = true
	restamped.Status = str("DAMAGED")
	live := record("id-3", "S3", models.TypeFG)
	live.Status = str(models.StatusNotInGE)

	plan := BuildPlan(input(models.TypeFG, []snapshot.Item{
		item("S1", "M1", 1, "Available", nil),
		item("S2", "M1", 1, "Available", nil),
		item("S3", "M1", 1, "Available", nil),
	}, State{Current: []models.InventoryItem{marked, restamped, live}}))

	assert.Equal(t, []string{"id-1"}, plan.StatusResetIDs)
	require.Len(t, plan.ItemsToUpsert, 2)
	assert.Nil(t, plan.ItemsToUpsert[0].Status)
	assert.Equal(t, "DAMAGED", *plan.ItemsToUpsert[1].Status)
}

func TestBuildPlan_RecoveryAcrossBuckets(t *testing.T) {
	moved := record("id-1", "S1", models.TypeASIS)
	moved.GEOrphaned = true
	moved.Status = str(models.StatusNotInGE)

	plan := BuildPlan(input(models.TypeSTA, []snapshot.Item{item("S1", "M1", 1, "Available", nil)},
		State{Equivalent: []models.InventoryItem{moved}}))

	assert.Equal(t, 1, plan.Stats.MigratedItems)
	assert.Equal(t, 1, plan.Stats.RecoveredItems)
	assert.Equal(t, []string{"id-1"}, plan.StatusResetIDs)

	appeared := changesOf(plan, models.ChangeItemAppeared)
	require.Len(t, appeared, 1)
	assert.Equal(t, "ASIS", appeared[0].PreviousState["inventory_type"])
}

func TestBuildPlan_ProductLinkage(t *testing.T) {
	in := input(models.TypeFG, []snapshot.Item{item("S1", "gtw485", 1, "Available", nil)}, State{})
	in.Products = models.ProductLookup{"GTW485": {ID: "p-1", ProductType: str("washer")}}

	plan := BuildPlan(in)

	require.Len(t, plan.ItemsToUpsert, 1)
	assert.Equal(t, "p-1", *plan.ItemsToUpsert[0].ProductFK)
	assert.Equal(t, "washer", *plan.ItemsToUpsert[0].ProductType)
}

func TestBuildPlan_Deterministic(t *testing.T) {
	in := input(models.TypeFG, []snapshot.Item{
		item("S1", "M1", 1, "Available", nil),
		item("S2", "M1", 2, "Reserved", str("L1")),
	}, State{Current: []models.InventoryItem{record("id-9", "S9", models.TypeFG)}})

	assert.Equal(t, BuildPlan(in), BuildPlan(in))
}

func TestBuildPlan_NoDuplicateIDs(t *testing.T) {
	current := []models.InventoryItem{
		record("id-1", "S1", models.TypeSTA),
		record("id-2", "S2", models.TypeSTA),
	}
	equivalent := []models.InventoryItem{record("id-3", "S3", models.TypeASIS)}
	items := []snapshot.Item{
		item("S1", "M1", 2, "Available", nil),
		item("S2", "M1", 2, "Available", nil),
		item("S3", "M1", 2, "Available", nil),
		item("S4", "M1", 2, "Available", nil),
	}

	plan := BuildPlan(input(models.TypeSTA, items, State{Current: current, Equivalent: equivalent}))

	seen := map[string]bool{}
	for _, row := range plan.ItemsToUpsert {
		if row.ID == "" {
			continue
		}
		assert.False(t, seen[row.ID], "duplicate id %s", row.ID)
		seen[row.ID] = true
	}
	assert.Len(t, plan.ItemsToUpsert, 4)
	assert.Equal(t, 0, plan.Stats.DuplicateIDs)
}

func TestBuildPlan_Loads(t *testing.T) {
	stored := []models.Load{
		{ID: 1, LoadNumber: "L1", Status: "for sale", Units: 2},
		{ID: 2, LoadNumber: "L2", Status: "for sale", CSOStatus: "open", Units: 3},
		{ID: 3, LoadNumber: "L3", Status: "for sale", Units: 1},
		{ID: 4, LoadNumber: "L4", Status: "sold", GEOrphaned: true},
	}
	in := input(models.TypeASIS, nil, State{Loads: stored})
	in.Snapshot.Loads = []snapshot.Load{
		{LoadNumber: "L1", Status: "for sale", Units: 2},
		{LoadNumber: "L2", Status: "Sold", CSOStatus: "picked", Units: 4, CSO: str("CSO-7")},
		{LoadNumber: "L5", Status: "for sale", Units: 1},
	}

	plan := BuildPlan(in)

	types := map[models.ChangeType]int{}
	for _, c := range plan.Changes {
		types[c.ChangeType]++
	}
	assert.Equal(t, map[models.ChangeType]int{
		models.ChangeLoadSold:             1,
		models.ChangeLoadCSOAssigned:      1,
		models.ChangeLoadCSOStatusChanged: 1,
		models.ChangeLoadUnitsChanged:     1,
		models.ChangeLoadAppeared:         1,
		models.ChangeLoadDisappeared:      1,
	}, types)

	assert.Equal(t, []uint{3}, plan.LoadOrphanIDs)
	require.Len(t, plan.LoadsToUpsert, 2, "unchanged L1 is not rewritten")
	assert.Equal(t, "L2", plan.LoadsToUpsert[0].LoadNumber)
	assert.Equal(t, "L5", plan.LoadsToUpsert[1].LoadNumber)

	assert.Equal(t, 3, plan.Stats.TotalLoads)
	assert.Equal(t, 1, plan.Stats.NewLoads)
	assert.Equal(t, 1, plan.Stats.OrphanedLoads)
	assert.Equal(t, 2, plan.Stats.ForSaleLoads)
	assert.Equal(t, 1, plan.Stats.PickedLoads)
}

func TestBuildPlan_OrphanedLoadReappears(t *testing.T) {
	in := input(models.TypeASIS, nil, State{Loads: []models.Load{{ID: 4, LoadNumber: "L4", Status: "for sale", GEOrphaned: true}}})
	in.Snapshot.Loads = []snapshot.Load{{LoadNumber: "L4", Status: "for sale"}}

	plan := BuildPlan(in)

	require.Len(t, plan.Changes, 1)
	assert.Equal(t, models.ChangeLoadAppeared, plan.Changes[0].ChangeType)
	assert.Equal(t, true, plan.Changes[0].PreviousState["orphaned"])
	require.Len(t, plan.LoadsToUpsert, 1)
	assert.False(t, plan.LoadsToUpsert[0].GEOrphaned)
}

func TestStats_Add(t *testing.T) {
	total := Stats{ForSaleLoads: 5}
	total.Add(Stats{TotalItems: 2, NewItems: 1, ForSaleLoads: 3, PickedLoads: 1})
	total.Add(Stats{TotalItems: 3, Conflicts: 1})

	assert.Equal(t, 5, total.TotalItems)
	assert.Equal(t, 1, total.NewItems)
	assert.Equal(t, 1, total.Conflicts)
	assert.Equal(t, 5, total.ForSaleLoads, "bucket-specific counts are not summed")
	assert.Equal(t, 0, total.PickedLoads)
}

package reconcile

import (
	"time"

	"ge-sync/core/utils"
	"ge-sync/feature/inventory/models"
	"ge-sync/feature/inventory/snapshot"
)

// BuildPlan reconciles a parsed snapshot against the store projection. It performs no
// I/O and depends only on its input, so the same input always yields the same plan.
func BuildPlan(in Input) *Plan {
	snap := in.Snapshot
	if snap == nil {
		snap = &snapshot.Snapshot{}
	}

	plan := &Plan{
		Scope:    in.Scope,
		RunToken: in.RunToken,
		Now:      in.Now,
		Warnings: snap.Warnings,
	}
	plan.Stats.ParseWarnings = len(snap.Warnings)

	resolver := NewIdentityResolver(in.Scope.Bucket, in.State)
	detector := NewChangeDetector(in.Scope, in.RunToken, in.Source, in.Now)
	tracker := NewOrphanTracker()

	for _, item := range snap.Items {
		plan.Stats.TotalItems++
		if item.Load != nil {
			plan.Stats.PlacedItems++
		} else {
			plan.Stats.UnassignedItems++
		}

		res := resolver.Resolve(item)
		switch res.Outcome {
		case OutcomeConflict:
			if res.Existing != nil {
				tracker.Seen(res.Existing.ID)
			}
			plan.Stats.Conflicts++
			plan.Conflicts = append(plan.Conflicts, Conflict{
				Serial: utils.Deref(item.Serial),
				Model:  item.Model,
				Bucket: res.Holder,
			})

		case OutcomeSkip:
			plan.Stats.EquivalentSkipped++

		case OutcomeInsert:
			row := models.InventoryItem{
				CompanyID:  in.Scope.CompanyID,
				LocationID: in.Scope.LocationID,
				Serial:     item.Serial,
				CreatedAt:  in.Now,
			}
			applyItem(&row, item, in.Scope.Bucket, in.Products, in.Now)
			plan.ItemsToUpsert = append(plan.ItemsToUpsert, row)
			plan.Changes = append(plan.Changes, detector.ItemAppeared(item))
			plan.Stats.NewItems++

		case OutcomeMatch:
			existing := *res.Existing
			if tracker.IsSeen(existing.ID) {
				// Parse dedupes identity keys, so this only happens on corrupt state.
				plan.Stats.DuplicateIDs++
				continue
			}
			tracker.Seen(existing.ID)

			plan.Changes = append(plan.Changes, detector.ItemChanges(existing, item)...)
			if existing.GEOrphaned {
				plan.Stats.RecoveredItems++
			}
			if res.Migrated {
				plan.Stats.MigratedItems++
			}

			row := existing
			applyItem(&row, item, in.Scope.Bucket, in.Products, in.Now)
			if existing.GEOrphaned && utils.Deref(existing.Status) == models.StatusNotInGE {
				row.Status = nil
				plan.StatusResetIDs = append(plan.StatusResetIDs, existing.ID)
			}
			if syncFieldsEqual(existing, row) {
				plan.Stats.UnchangedItems++
				continue
			}
			row.UpdatedAt = in.Now
			plan.ItemsToUpsert = append(plan.ItemsToUpsert, row)
			plan.Stats.UpdatedItems++
		}
	}

	for _, row := range tracker.Orphans(in.State.Current) {
		plan.OrphanIDs = append(plan.OrphanIDs, row.ID)
		plan.Changes = append(plan.Changes, detector.ItemDisappeared(row))
		plan.Stats.OrphanedItems++
	}

	planLoads(plan, in, snap, detector)

	plan.Stats.Changes = len(plan.Changes)
	return plan
}

func planLoads(plan *Plan, in Input, snap *snapshot.Snapshot, detector *ChangeDetector) {
	stored := make(map[string]*models.Load, len(in.State.Loads))
	for i := range in.State.Loads {
		stored[in.State.Loads[i].LoadNumber] = &in.State.Loads[i]
	}

	present := make(map[string]bool, len(snap.Loads))
	for _, load := range snap.Loads {
		present[load.LoadNumber] = true
		plan.Stats.TotalLoads++
		if load.IsForSale() {
			plan.Stats.ForSaleLoads++
		}
		if load.IsPicked() {
			plan.Stats.PickedLoads++
		}

		existing := stored[load.LoadNumber]
		if existing == nil {
			plan.Stats.NewLoads++
		}
		plan.Changes = append(plan.Changes, detector.LoadChanges(existing, load)...)

		row := models.Load{
			CompanyID:     in.Scope.CompanyID,
			LocationID:    in.Scope.LocationID,
			InventoryType: in.Scope.Bucket,
			LoadNumber:    load.LoadNumber,
			Status:        load.Status,
			CSOStatus:     load.CSOStatus,
			Units:         load.Units,
			Notes:         load.Notes,
			SubmittedDate: load.SubmittedDate,
			CSO:           load.CSO,
			CreatedAt:     in.Now,
			UpdatedAt:     in.Now,
		}
		if existing != nil && loadFieldsEqual(*existing, row) {
			continue
		}
		plan.LoadsToUpsert = append(plan.LoadsToUpsert, row)
	}

	for _, l := range in.State.Loads {
		if present[l.LoadNumber] || l.GEOrphaned {
			continue
		}
		plan.LoadOrphanIDs = append(plan.LoadOrphanIDs, l.ID)
		plan.Changes = append(plan.Changes, detector.LoadDisappeared(l))
		plan.Stats.OrphanedLoads++
	}
}

// applyItem copies snapshot values onto row. Workflow fields are never touched.
func applyItem(row *models.InventoryItem, item snapshot.Item, bucket models.InventoryType, products models.ProductLookup, now time.Time) {
	row.InventoryType = bucket
	if item.Model != "" {
		row.Model = item.Model
	}
	row.CSO = item.CSO
	row.SubInventory = item.Load

	row.GEModel = utils.NilIfEmpty(item.Model)
	if item.Serial != nil {
		row.GESerial = item.Serial
	}
	// An unparseable quantity must not clobber a known one.
	if item.QtyParsed || row.GEInvQty == nil {
		qty := item.Qty
		row.GEInvQty = &qty
	}
	row.GEAvailabilityStatus = item.AvailabilityStatus
	row.GEAvailabilityMessage = item.AvailabilityMessage

	if ref, ok := products.Find(row.Model); ok {
		id := ref.ID
		row.ProductFK = &id
		row.ProductType = ref.ProductType
	}

	row.GEOrphaned = false
	row.GEOrphanedAt = nil
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = now
	}
}

func syncFieldsEqual(a, b models.InventoryItem) bool {
	return a.InventoryType == b.InventoryType &&
		a.Model == b.Model &&
		eqStr(a.CSO, b.CSO) &&
		eqStr(a.SubInventory, b.SubInventory) &&
		eqStr(a.GEModel, b.GEModel) &&
		eqStr(a.GESerial, b.GESerial) &&
		eqFloat(a.GEInvQty, b.GEInvQty) &&
		eqStr(a.GEAvailabilityStatus, b.GEAvailabilityStatus) &&
		eqStr(a.GEAvailabilityMessage, b.GEAvailabilityMessage) &&
		eqStr(a.ProductFK, b.ProductFK) &&
		eqStr(a.ProductType, b.ProductType) &&
		a.GEOrphaned == b.GEOrphaned &&
		eqTime(a.GEOrphanedAt, b.GEOrphanedAt)
}

func loadFieldsEqual(a, b models.Load) bool {
	return a.Status == b.Status &&
		a.CSOStatus == b.CSOStatus &&
		a.Units == b.Units &&
		eqStr(a.Notes, b.Notes) &&
		eqTime(a.SubmittedDate, b.SubmittedDate) &&
		eqStr(a.CSO, b.CSO) &&
		a.GEOrphaned == b.GEOrphaned
}

func eqStr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

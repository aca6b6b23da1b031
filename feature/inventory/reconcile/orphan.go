package reconcile

import "ge-sync/feature/inventory/models"

// OrphanTracker records which target-bucket records the snapshot touched and reports
// the rest as newly orphaned.
type OrphanTracker struct {
	seen map[string]bool
}

// NewOrphanTracker creates an empty tracker.
func NewOrphanTracker() *OrphanTracker {
	return &OrphanTracker{seen: make(map[string]bool)}
}

// Seen marks a record id as present in the current snapshot.
func (t *OrphanTracker) Seen(id string) {
	t.seen[id] = true
}

// IsSeen reports whether id was already matched in this run.
func (t *OrphanTracker) IsSeen(id string) bool {
	return t.seen[id]
}

// Orphans returns the records of current that were not seen and are not orphaned yet.
// Only target-bucket rows are passed here; migration candidates are never orphaned.
func (t *OrphanTracker) Orphans(current []models.InventoryItem) []models.InventoryItem {
	var out []models.InventoryItem
	for _, row := range current {
		if row.GEOrphaned || t.seen[row.ID] {
			continue
		}
		out = append(out, row)
	}
	return out
}

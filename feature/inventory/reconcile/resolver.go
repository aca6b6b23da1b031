package reconcile

import (
	"ge-sync/feature/inventory/models"
	"ge-sync/feature/inventory/snapshot"
)

// Outcome is how an incoming item relates to the canonical store.
type Outcome int

const (
	// OutcomeInsert means no record exists; a new row is created.
	OutcomeInsert Outcome = iota
	// OutcomeMatch means a target-bucket record (or a migratable one) is updated.
	OutcomeMatch
	// OutcomeConflict means a live record in a non-equivalent bucket holds the serial.
	OutcomeConflict
	// OutcomeSkip means a live record in an equivalent bucket owns the serial.
	OutcomeSkip
)

// Resolution is the result of resolving one incoming item.
type Resolution struct {
	Outcome  Outcome
	Existing *models.InventoryItem
	// Migrated is set when Existing lives in another bucket of the equivalence class.
	Migrated bool
	// Holder is the bucket of the conflicting or owning record.
	Holder models.InventoryType
}

// IdentityResolver matches incoming items to canonical records for one target bucket.
type IdentityResolver struct {
	bucket      models.InventoryType
	current     map[string]*models.InventoryItem
	equivalent  map[string]*models.InventoryItem
	foreignLive map[string]models.InventoryType
}

// NewIdentityResolver indexes the state for bucket.
func NewIdentityResolver(bucket models.InventoryType, state State) *IdentityResolver {
	r := &IdentityResolver{
		bucket:      bucket,
		current:     make(map[string]*models.InventoryItem, len(state.Current)),
		equivalent:  make(map[string]*models.InventoryItem, len(state.Equivalent)),
		foreignLive: state.ForeignLive,
	}

	for i := range state.Current {
		index(r.current, state.Current[i].Key(), &state.Current[i])
	}
	for i := range state.Equivalent {
		row := &state.Equivalent[i]
		if row.Serial == nil || *row.Serial == "" {
			continue
		}
		index(r.equivalent, *row.Serial, row)
	}

	return r
}

// index keeps one record per key, preferring a live record over an orphaned one.
func index(m map[string]*models.InventoryItem, key string, row *models.InventoryItem) {
	if prev, ok := m[key]; ok && (!prev.GEOrphaned || row.GEOrphaned) {
		return
	}
	m[key] = row
}

// Resolve classifies one incoming item.
//
// A serial held live by a non-equivalent bucket is a conflict even when the target
// bucket also has a row for it; both rows are left untouched. Migration into STA
// takes any ASIS row. Migration into any other bucket of the class only reclaims
// orphaned rows, so a serial live in STA is skipped by an ASIS import.
func (r *IdentityResolver) Resolve(item snapshot.Item) Resolution {
	if item.Serial != nil {
		if holder, ok := r.foreignLive[*item.Serial]; ok {
			return Resolution{Outcome: OutcomeConflict, Existing: r.current[*item.Serial], Holder: holder}
		}
	}

	key := models.IdentityKey(item.Serial, item.Model, item.Load)
	if existing, ok := r.current[key]; ok {
		return Resolution{Outcome: OutcomeMatch, Existing: existing}
	}

	if item.Serial != nil {
		if existing, ok := r.equivalent[*item.Serial]; ok {
			if r.bucket == models.TypeSTA || existing.GEOrphaned {
				return Resolution{Outcome: OutcomeMatch, Existing: existing, Migrated: true}
			}
			return Resolution{Outcome: OutcomeSkip, Existing: existing, Holder: existing.InventoryType}
		}
	}

	return Resolution{Outcome: OutcomeInsert}
}

package reconcile

import (
	"time"

	"ge-sync/feature/inventory/models"
	"ge-sync/feature/inventory/snapshot"
)

// Scope is the company, location and bucket a plan applies to.
type Scope struct {
	CompanyID  string               `json:"company_id"`
	LocationID string               `json:"location_id"`
	Bucket     models.InventoryType `json:"bucket"`
}

// State is the canonical-store projection the planner reconciles against.
type State struct {
	// Current holds every row of the target bucket, orphaned or not.
	Current []models.InventoryItem
	// Equivalent holds rows of the other buckets in the target's equivalence class.
	Equivalent []models.InventoryItem
	// ForeignLive maps serials held by live rows in non-equivalent buckets to that bucket.
	ForeignLive map[string]models.InventoryType
	// Loads holds the stored load metadata of the target bucket.
	Loads []models.Load
}

// Input is everything BuildPlan needs. It is a plain value so a plan can be rebuilt
// for preview and commit alike.
type Input struct {
	Scope    Scope
	Snapshot *snapshot.Snapshot
	State    State
	Products models.ProductLookup
	RunToken string
	Source   string
	Now      time.Time
}

// Conflict is an incoming serial already held live by a non-equivalent bucket.
type Conflict struct {
	Serial string               `json:"serial"`
	Model  string               `json:"model"`
	Bucket models.InventoryType `json:"bucket"`
}

// Plan is the complete set of writes for one bucket run.
type Plan struct {
	Scope    Scope
	RunToken string
	Now      time.Time

	// ItemsToUpsert holds new rows (empty ID) and changed existing rows (ID set).
	ItemsToUpsert []models.InventoryItem
	OrphanIDs     []string
	// StatusResetIDs are recovered records still carrying the status orphaning wrote.
	StatusResetIDs []string
	Changes        []models.ChangeEvent

	LoadsToUpsert []models.Load
	LoadOrphanIDs []uint

	Conflicts []Conflict
	Warnings  []snapshot.ValidationError
	Stats     Stats
}

// Stats summarizes a plan and, once persisted, its execution.
type Stats struct {
	TotalItems        int `json:"total_items"`
	PlacedItems       int `json:"placed_items"`
	UnassignedItems   int `json:"unassigned_items"`
	NewItems          int `json:"new_items"`
	UpdatedItems      int `json:"updated_items"`
	UnchangedItems    int `json:"unchanged_items"`
	OrphanedItems     int `json:"orphaned_items"`
	RecoveredItems    int `json:"recovered_items"`
	MigratedItems     int `json:"migrated_items"`
	Conflicts         int `json:"conflicts"`
	EquivalentSkipped int `json:"equivalent_skipped"`
	ParseWarnings     int `json:"parse_warnings"`
	Changes           int `json:"changes"`

	TotalLoads    int `json:"total_loads"`
	NewLoads      int `json:"new_loads"`
	OrphanedLoads int `json:"orphaned_loads"`

	// Bucket-specific; aggregated from ASIS only.
	ForSaleLoads int `json:"for_sale_loads"`
	PickedLoads  int `json:"picked_loads"`

	// Filled by the persister.
	ChangesLogged     int `json:"changes_logged"`
	ChangeLogFailures int `json:"change_log_failures"`
	DuplicateIDs      int `json:"duplicate_ids"`
}

// Add sums the cross-bucket totals of o into s. Load counts are bucket-specific
// and left untouched.
func (s *Stats) Add(o Stats) {
	s.TotalItems += o.TotalItems
	s.PlacedItems += o.PlacedItems
	s.UnassignedItems += o.UnassignedItems
	s.NewItems += o.NewItems
	s.UpdatedItems += o.UpdatedItems
	s.UnchangedItems += o.UnchangedItems
	s.OrphanedItems += o.OrphanedItems
	s.RecoveredItems += o.RecoveredItems
	s.MigratedItems += o.MigratedItems
	s.Conflicts += o.Conflicts
	s.EquivalentSkipped += o.EquivalentSkipped
	s.ParseWarnings += o.ParseWarnings
	s.Changes += o.Changes
	s.TotalLoads += o.TotalLoads
	s.NewLoads += o.NewLoads
	s.OrphanedLoads += o.OrphanedLoads
	s.ChangesLogged += o.ChangesLogged
	s.ChangeLogFailures += o.ChangeLogFailures
	s.DuplicateIDs += o.DuplicateIDs
}

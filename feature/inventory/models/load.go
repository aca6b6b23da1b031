package models

import "time"

// Load is the GE metadata for one load (shipment or sale grouping) in a bucket.
type Load struct {
	ID            uint          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CompanyID     string        `gorm:"column:company_id;size:64;not null;uniqueIndex:idx_ge_loads_scope,priority:1" json:"company_id"`
	LocationID    string        `gorm:"column:location_id;size:64;not null;uniqueIndex:idx_ge_loads_scope,priority:2" json:"location_id"`
	InventoryType InventoryType `gorm:"column:inventory_type;size:32;not null;uniqueIndex:idx_ge_loads_scope,priority:3" json:"inventory_type"`
	LoadNumber    string        `gorm:"column:load_number;size:64;not null;uniqueIndex:idx_ge_loads_scope,priority:4" json:"load_number"`
	Status        string        `gorm:"column:status;size:32" json:"status"`
	CSOStatus     string        `gorm:"column:cso_status;size:32" json:"cso_status"`
	Units         int           `gorm:"column:units;not null" json:"units"`
	Notes         *string       `gorm:"column:notes;type:text" json:"notes"`
	SubmittedDate *time.Time    `gorm:"column:submitted_date" json:"submitted_date"`
	CSO           *string       `gorm:"column:cso;size:64" json:"cso"`
	GEOrphaned    bool          `gorm:"column:ge_orphaned;not null" json:"ge_orphaned"`
	GEOrphanedAt  *time.Time    `gorm:"column:ge_orphaned_at" json:"ge_orphaned_at"`
	CreatedAt     time.Time     `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (Load) TableName() string {
	return "ge_loads"
}

// LoadScopeColumns is the natural key of a load.
var LoadScopeColumns = []string{"company_id", "location_id", "inventory_type", "load_number"}

// LoadSyncColumns are overwritten when a load is upserted.
var LoadSyncColumns = []string{
	"status", "cso_status", "units", "notes", "submitted_date", "cso",
	"ge_orphaned", "ge_orphaned_at", "updated_at",
}

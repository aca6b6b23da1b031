package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusNotInGE is written to Status when an item is orphaned.
const StatusNotInGE = "NOT_IN_GE"

// InventoryItem is the canonical inventory record for one unit (or unserialized line).
type InventoryItem struct {
	ID            string        `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	CompanyID     string        `gorm:"column:company_id;size:64;not null;index:idx_inventory_scope,priority:1" json:"company_id"`
	LocationID    string        `gorm:"column:location_id;size:64;not null;index:idx_inventory_scope,priority:2" json:"location_id"`
	InventoryType InventoryType `gorm:"column:inventory_type;size:32;not null;index:idx_inventory_scope,priority:3" json:"inventory_type"`
	Serial        *string       `gorm:"column:serial;size:64;index" json:"serial"`
	Model         string        `gorm:"column:model;size:64" json:"model"`
	CSO           *string       `gorm:"column:cso;size:64" json:"cso"`
	SubInventory  *string       `gorm:"column:sub_inventory;size:64" json:"sub_inventory"`

	// Mirror of the last GE snapshot values.
	GEModel               *string  `gorm:"column:ge_model;size:64" json:"ge_model"`
	GESerial              *string  `gorm:"column:ge_serial;size:64" json:"ge_serial"`
	GEInvQty              *float64 `gorm:"column:ge_inv_qty" json:"ge_inv_qty"`
	GEAvailabilityStatus  *string  `gorm:"column:ge_availability_status;size:64" json:"ge_availability_status"`
	GEAvailabilityMessage *string  `gorm:"column:ge_availability_message;size:255" json:"ge_availability_message"`

	ProductFK   *string `gorm:"column:product_fk;size:36" json:"product_fk"`
	ProductType *string `gorm:"column:product_type;size:64" json:"product_type"`

	// Owned by the scanning workflow. Sync only writes Status on orphaning and clears that
	// value again on recovery.
	IsScanned bool       `gorm:"column:is_scanned;not null" json:"is_scanned"`
	ScannedAt *time.Time `gorm:"column:scanned_at" json:"scanned_at"`
	ScannedBy *string    `gorm:"column:scanned_by;size:64" json:"scanned_by"`
	Notes     *string    `gorm:"column:notes;type:text" json:"notes"`
	Status    *string    `gorm:"column:status;size:32" json:"status"`

	GEOrphaned   bool       `gorm:"column:ge_orphaned;not null" json:"ge_orphaned"`
	GEOrphanedAt *time.Time `gorm:"column:ge_orphaned_at" json:"ge_orphaned_at"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// BeforeCreate assigns a uuid to brand-new records.
func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}

// Key returns the identity key of the stored record.
func (i InventoryItem) Key() string {
	return IdentityKey(i.Serial, i.Model, i.SubInventory)
}

// SyncColumns are the only columns a sync upsert may overwrite on an existing row.
var SyncColumns = []string{
	"inventory_type", "model", "cso", "sub_inventory",
	"ge_model", "ge_serial", "ge_inv_qty", "ge_availability_status", "ge_availability_message",
	"product_fk", "product_type",
	"ge_orphaned", "ge_orphaned_at",
	"updated_at",
}

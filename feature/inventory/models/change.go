package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ChangeType classifies an audit event.
type ChangeType string

const (
	ChangeItemAppeared         ChangeType = "item_appeared"
	ChangeItemDisappeared      ChangeType = "item_disappeared"
	ChangeItemStatusChanged    ChangeType = "item_status_changed"
	ChangeItemReserved         ChangeType = "item_reserved"
	ChangeItemLoadChanged      ChangeType = "item_load_changed"
	ChangeItemQtyChanged       ChangeType = "item_qty_changed"
	ChangeLoadAppeared         ChangeType = "load_appeared"
	ChangeLoadDisappeared      ChangeType = "load_disappeared"
	ChangeLoadSold             ChangeType = "load_sold"
	ChangeLoadCSOAssigned      ChangeType = "load_cso_assigned"
	ChangeLoadCSOStatusChanged ChangeType = "load_cso_status_changed"
	ChangeLoadUnitsChanged     ChangeType = "load_units_changed"
)

// ChangeEvent is one append-only audit row. Rows are never updated or deleted.
type ChangeEvent struct {
	ID            string            `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	CompanyID     string            `gorm:"column:company_id;size:64;not null;index:idx_change_scope,priority:1" json:"company_id"`
	LocationID    string            `gorm:"column:location_id;size:64;not null;index:idx_change_scope,priority:2" json:"location_id"`
	InventoryType InventoryType     `gorm:"column:inventory_type;size:32;not null;index:idx_change_scope,priority:3" json:"inventory_type"`
	Serial        *string           `gorm:"column:serial;size:64;index" json:"serial"`
	Model         *string           `gorm:"column:model;size:64" json:"model"`
	LoadNumber    *string           `gorm:"column:load_number;size:64" json:"load_number"`
	ChangeType    ChangeType        `gorm:"column:change_type;size:40;not null;index" json:"change_type"`
	FieldChanged  *string           `gorm:"column:field_changed;size:64" json:"field_changed"`
	OldValue      *string           `gorm:"column:old_value;type:text" json:"old_value"`
	NewValue      *string           `gorm:"column:new_value;type:text" json:"new_value"`
	PreviousState datatypes.JSONMap `gorm:"column:previous_state" json:"previous_state,omitempty"`
	CurrentState  datatypes.JSONMap `gorm:"column:current_state" json:"current_state,omitempty"`
	Source        string            `gorm:"column:source;size:32" json:"source"`
	RunToken      string            `gorm:"column:run_token;size:64;index" json:"run_token"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName overrides the table name.
func (ChangeEvent) TableName() string {
	return "ge_change_log"
}

// BeforeCreate assigns a uuid when the planner did not.
func (e *ChangeEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

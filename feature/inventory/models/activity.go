package models

import (
	"time"

	"gorm.io/datatypes"
)

// SyncActivity records one sync invocation, successful or not.
type SyncActivity struct {
	ID            uint              `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RunToken      string            `gorm:"column:run_token;size:64;index" json:"run_token"`
	Action        string            `gorm:"column:action;size:40;not null" json:"action"`
	CompanyID     string            `gorm:"column:company_id;size:64" json:"company_id"`
	LocationID    string            `gorm:"column:location_id;size:64;index" json:"location_id"`
	InventoryType string            `gorm:"column:inventory_type;size:32" json:"inventory_type"`
	Success       bool              `gorm:"column:success;not null" json:"success"`
	DurationMs    int64             `gorm:"column:duration_ms" json:"duration_ms"`
	Stats         datatypes.JSONMap `gorm:"column:stats" json:"stats,omitempty"`
	Error         *string           `gorm:"column:error;type:text" json:"error,omitempty"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName overrides the table name.
func (SyncActivity) TableName() string {
	return "sync_activity_log"
}

// All returns every model owned by the sync service, in migration order.
func All() []any {
	return []any{
		&Product{},
		&InventoryItem{},
		&Load{},
		&ChangeEvent{},
		&SyncActivity{},
	}
}

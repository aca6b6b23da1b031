package sync

import (
	"context"

	"ge-sync/feature/inventory/models"
	"ge-sync/feature/inventory/reconcile"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GormActivityLog writes sync_activity_log rows. Write failures are only logged.
type GormActivityLog struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormActivityLog creates an activity log on db.
func NewGormActivityLog(db *gorm.DB, logger *zap.Logger) *GormActivityLog {
	return &GormActivityLog{db: db, logger: logger}
}

// Record inserts entry. The write survives cancellation of the request context.
func (a *GormActivityLog) Record(ctx context.Context, entry models.SyncActivity) {
	if err := a.db.WithContext(context.WithoutCancel(ctx)).Create(&entry).Error; err != nil {
		a.logger.Warn("Failed to record sync activity",
			zap.String("action", entry.Action),
			zap.String("run_token", entry.RunToken),
			zap.Error(err),
		)
	}
}

func activityEntry(action string, req Request, bucket string, success bool, durationMs int64, stats reconcile.Stats, err error) models.SyncActivity {
	entry := models.SyncActivity{
		RunToken:      req.RunToken,
		Action:        action,
		CompanyID:     req.CompanyID,
		LocationID:    req.LocationID,
		InventoryType: bucket,
		Success:       success,
		DurationMs:    durationMs,
		Stats:         statsMap(stats),
	}
	if err != nil {
		msg := err.Error()
		entry.Error = &msg
	}
	return entry
}

func statsMap(stats reconcile.Stats) datatypes.JSONMap {
	data, err := json.Marshal(stats)
	if err != nil {
		return nil
	}
	var m datatypes.JSONMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}

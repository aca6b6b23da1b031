package integrity

import (
	"context"
	"errors"
	"time"

	"ge-sync/core/storage"
	"ge-sync/feature/integrity/checks"
	"ge-sync/feature/inventory/models"
	"ge-sync/feature/inventory/sync"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoSnapshotStorage is returned by snapshot checks when snapshots are not read from storage.
var ErrNoSnapshotStorage = errors.New("snapshot storage is not configured")

// Service handles integrity checks.
type Service struct {
	client    storage.Client
	bucket    string
	finder    checks.SnapshotFinder
	db        *gorm.DB
	companyID string
	maxAge    time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates a new integrity service. client and finder may be nil when
// snapshots come from the HTTP source.
func NewService(client storage.Client, bucket string, finder checks.SnapshotFinder, db *gorm.DB, companyID string, maxAge time.Duration, logger *zap.Logger) *Service {
	return &Service{
		client:    client,
		bucket:    bucket,
		finder:    finder,
		db:        db,
		companyID: companyID,
		maxAge:    maxAge,
		logger:    logger,
		now:       time.Now,
	}
}

// CheckSchema compares the sync tables against the models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, models.All()...)
}

// CheckSnapshots reports snapshot freshness for every unit of a location.
func (s *Service) CheckSnapshots(ctx context.Context, companyID, locationID string) ([]checks.SnapshotStatus, error) {
	if s.client == nil || s.finder == nil {
		return nil, ErrNoSnapshotStorage
	}
	if companyID == "" {
		companyID = s.companyID
	}
	if err := checks.CheckBucket(ctx, s.client, s.bucket); err != nil {
		return nil, err
	}
	return checks.CheckSnapshots(ctx, s.finder, companyID, locationID, sync.UnitNames(), s.now().UTC(), s.maxAge), nil
}

package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ge-sync/core/lock"
	"ge-sync/feature/inventory/sync"

	"go.uber.org/zap"
)

var (
	// ErrUnknownBucket is returned for a bucket name outside sync.Units.
	ErrUnknownBucket = errors.New("unknown bucket")
	// ErrMissingLocation is returned when no location was given.
	ErrMissingLocation = errors.New("location is required")
	// ErrBusy is returned when another process holds the location lock.
	ErrBusy = sync.ErrLocked
)

// Service exposes the sync engine to HTTP callers.
type Service struct {
	orchestrator *sync.Orchestrator
	locker       lock.Locker
	companyID    string
	logger       *zap.Logger
}

// NewService creates a new inventory sync service.
func NewService(orchestrator *sync.Orchestrator, locker lock.Locker, companyID string, logger *zap.Logger) *Service {
	if locker == nil {
		locker = lock.NopLocker{}
	}
	return &Service{
		orchestrator: orchestrator,
		locker:       locker,
		companyID:    companyID,
		logger:       logger,
	}
}

func (s *Service) prepare(req sync.Request) (sync.Request, error) {
	req.LocationID = strings.TrimSpace(req.LocationID)
	if req.LocationID == "" {
		return req, ErrMissingLocation
	}
	if req.CompanyID == "" {
		req.CompanyID = s.companyID
	}
	return req, nil
}

// acquire takes the location lock. Refusals are recorded in the activity log.
func (s *Service) acquire(ctx context.Context, unit sync.Unit, req sync.Request) (func(), error) {
	release, err := s.orchestrator.Syncer().Lock(ctx, s.locker, unit, req)
	if err != nil {
		s.logger.Warn("Sync rejected",
			zap.String("location", req.LocationID),
			zap.String("unit", unit.Name),
			zap.Error(err),
		)
		return nil, err
	}
	return release, nil
}

// SyncBucket reconciles one bucket. A bucket failure is reported in the result, not
// as an error; errors mean the run never started.
func (s *Service) SyncBucket(ctx context.Context, bucket string, req sync.Request) (*sync.BucketResult, error) {
	unit, ok := sync.UnitByName(bucket)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBucket, bucket)
	}
	req, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	if !req.DryRun {
		release, err := s.acquire(ctx, unit, req)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	res, _ := s.orchestrator.Syncer().SyncUnit(ctx, unit, req)
	return res, nil
}

// Preview computes the plan for one bucket without writing anything.
func (s *Service) Preview(ctx context.Context, bucket string, req sync.Request) (*sync.BucketResult, error) {
	req.DryRun = true
	return s.SyncBucket(ctx, bucket, req)
}

// SyncAll runs every bucket for the location in dependency order.
func (s *Service) SyncAll(ctx context.Context, req sync.Request) (*sync.RunResult, error) {
	req, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	if !req.DryRun {
		release, err := s.acquire(ctx, sync.AllUnits, req)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	return s.orchestrator.SyncAll(ctx, req), nil
}

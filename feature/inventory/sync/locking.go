package sync

import (
	"context"
	"errors"
	"fmt"

	"ge-sync/core/lock"
	"ge-sync/feature/inventory/reconcile"
)

// ActionAll names the unified run in the activity log.
const ActionAll = "all"

// AllUnits stands for the unified run where a Unit is expected.
var AllUnits = Unit{Name: ActionAll}

// ErrLocked is returned when another process holds the location lock.
var ErrLocked = errors.New("a sync is already running for this location")

// LockKey is the per-location lock name shared by every caller.
func LockKey(companyID, locationID string) string {
	return "sync:" + companyID + ":" + locationID
}

// Lock takes the location lock for a run of unit. When the lock is held or cannot be
// taken, the refused invocation is written to the activity log and the error returned.
func (s *Syncer) Lock(ctx context.Context, locker lock.Locker, unit Unit, req Request) (func(), error) {
	release, ok, err := locker.Acquire(ctx, LockKey(req.CompanyID, req.LocationID))
	if err != nil {
		err = fmt.Errorf("failed to acquire location lock: %w", err)
	} else if !ok {
		err = ErrLocked
	}
	if err != nil {
		s.RecordRejected(ctx, unit, req, err)
		return nil, err
	}
	return release, nil
}

// RecordRejected logs an invocation that was refused before any bucket ran.
func (s *Syncer) RecordRejected(ctx context.Context, unit Unit, req Request, err error) {
	req = req.withDefaults()
	s.record(ctx, activityEntry(actionName(unit.Name, req.DryRun), req, string(unit.Bucket), false, 0, reconcile.Stats{}, err))
}

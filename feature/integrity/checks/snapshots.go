package checks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ge-sync/core/storage"
	"ge-sync/feature/inventory/snapshot"

	"github.com/minio/minio-go/v7"
)

// SnapshotFinder locates the newest snapshot for a scope.
type SnapshotFinder interface {
	Latest(ctx context.Context, scope snapshot.Scope) (minio.ObjectInfo, error)
}

// SnapshotStatus describes the newest snapshot of one unit.
type SnapshotStatus struct {
	Unit         string     `json:"unit"`
	Status       string     `json:"status"` // "ok", "stale", "missing", "error"
	Key          string     `json:"key,omitempty"`
	LastModified *time.Time `json:"last_modified,omitempty"`
	AgeSeconds   int64      `json:"age_seconds,omitempty"`
	Error        string     `json:"error,omitempty"`
}

// CheckBucket fails when the snapshot bucket is unreachable or absent.
func CheckBucket(ctx context.Context, client storage.Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", bucket)
	}
	return nil
}

// CheckSnapshots reports the newest snapshot of every unit for a location. A snapshot
// older than maxAge is stale; a zero maxAge disables the age check.
func CheckSnapshots(ctx context.Context, finder SnapshotFinder, companyID, locationID string, units []string, now time.Time, maxAge time.Duration) []SnapshotStatus {
	out := make([]SnapshotStatus, 0, len(units))
	for _, unit := range units {
		st := SnapshotStatus{Unit: unit}

		obj, err := finder.Latest(ctx, snapshot.Scope{CompanyID: companyID, LocationID: locationID, Unit: unit})
		switch {
		case errors.Is(err, snapshot.ErrNoSnapshot):
			st.Status = "missing"
		case err != nil:
			st.Status = "error"
			st.Error = err.Error()
		default:
			modified := obj.LastModified
			st.Key = obj.Key
			st.LastModified = &modified
			st.AgeSeconds = int64(now.Sub(modified).Seconds())
			st.Status = "ok"
			if maxAge > 0 && now.Sub(modified) > maxAge {
				st.Status = "stale"
			}
		}

		out = append(out, st)
	}
	return out
}

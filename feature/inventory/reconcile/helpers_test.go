package reconcile

import (
	"testing"
	"time"

	"ge-sync/core/database"
	"ge-sync/feature/inventory/models"
	"ge-sync/feature/inventory/snapshot"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func str(s string) *string { return &s }

func f64(v float64) *float64 { return &v }

func scopeFor(bucket models.InventoryType) Scope {
	return Scope{CompanyID: "acme", LocationID: "loc-1", Bucket: bucket}
}

func item(serial, model string, qty float64, status string, load *string) snapshot.Item {
	return snapshot.Item{
		Serial:             str(serial),
		Model:              model,
		Qty:                qty,
		QtyParsed:          true,
		AvailabilityStatus: str(status),
		Load:               load,
	}
}

func record(id, serial string, bucket models.InventoryType) models.InventoryItem {
	return models.InventoryItem{
		ID:                   id,
		CompanyID:            "acme",
		LocationID:           "loc-1",
		InventoryType:        bucket,
		Serial:               str(serial),
		Model:                "M1",
		GEModel:              str("M1"),
		GESerial:             str(serial),
		GEInvQty:             f64(1),
		GEAvailabilityStatus: str("Available"),
		CreatedAt:            testNow.Add(-24 * time.Hour),
		UpdatedAt:            testNow.Add(-24 * time.Hour),
	}
}

func input(bucket models.InventoryType, items []snapshot.Item, state State) Input {
	return Input{
		Scope:    scopeFor(bucket),
		Snapshot: &snapshot.Snapshot{Items: items},
		State:    state,
		RunToken: "run-1",
		Source:   "test",
		Now:      testNow,
	}
}

func changesOf(plan *Plan, t models.ChangeType) []models.ChangeEvent {
	var out []models.ChangeEvent
	for _, c := range plan.Changes {
		if c.ChangeType == t {
			out = append(out, c)
		}
	}
	return out
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

package reconcile

import (
	"strconv"
	"strings"
	"time"

	"ge-sync/core/utils"
	"ge-sync/feature/inventory/models"
	"ge-sync/feature/inventory/snapshot"

	"gorm.io/datatypes"
)

const reservedStatus = "reserved"

// ChangeDetector builds change events for one scope and run.
type ChangeDetector struct {
	scope    Scope
	runToken string
	source   string
	now      time.Time
}

// NewChangeDetector creates a detector stamping events with scope, token, source and now.
func NewChangeDetector(scope Scope, runToken, source string, now time.Time) *ChangeDetector {
	return &ChangeDetector{scope: scope, runToken: runToken, source: source, now: now}
}

func (d *ChangeDetector) event(t models.ChangeType, serial *string, model string, load *string) models.ChangeEvent {
	return models.ChangeEvent{
		CompanyID:     d.scope.CompanyID,
		LocationID:    d.scope.LocationID,
		InventoryType: d.scope.Bucket,
		Serial:        serial,
		Model:         utils.NilIfEmpty(model),
		LoadNumber:    load,
		ChangeType:    t,
		Source:        d.source,
		RunToken:      d.runToken,
		CreatedAt:     d.now,
	}
}

func fieldChange(e models.ChangeEvent, field string, from, to *string) models.ChangeEvent {
	e.FieldChanged = &field
	e.OldValue = from
	e.NewValue = to
	return e
}

// ItemChanges compares a matched record with its incoming row, in order: availability
// status, load, quantity, orphan recovery.
func (d *ChangeDetector) ItemChanges(existing models.InventoryItem, item snapshot.Item) []models.ChangeEvent {
	var events []models.ChangeEvent
	serial := item.Serial
	if serial == nil {
		serial = existing.Serial
	}

	if utils.Deref(existing.GEAvailabilityStatus) != utils.Deref(item.AvailabilityStatus) {
		t := models.ChangeItemStatusChanged
		if strings.EqualFold(utils.Deref(item.AvailabilityStatus), reservedStatus) {
			t = models.ChangeItemReserved
		}
		e := fieldChange(d.event(t, serial, item.Model, item.Load), "ge_availability_status",
			existing.GEAvailabilityStatus, item.AvailabilityStatus)
		events = append(events, e)
	}

	if utils.Deref(existing.SubInventory) != utils.Deref(item.Load) {
		e := fieldChange(d.event(models.ChangeItemLoadChanged, serial, item.Model, item.Load), "sub_inventory",
			existing.SubInventory, item.Load)
		events = append(events, e)
	}

	if existing.GEInvQty != nil && item.QtyParsed && *existing.GEInvQty != item.Qty {
		e := fieldChange(d.event(models.ChangeItemQtyChanged, serial, item.Model, item.Load), "ge_inv_qty",
			formatQty(existing.GEInvQty), formatQty(&item.Qty))
		events = append(events, e)
	}

	if existing.GEOrphaned {
		e := d.event(models.ChangeItemAppeared, serial, item.Model, item.Load)
		e.PreviousState = datatypes.JSONMap{"orphaned": true}
		if existing.InventoryType != d.scope.Bucket {
			e.PreviousState["inventory_type"] = string(existing.InventoryType)
		}
		e.CurrentState = itemState(item)
		events = append(events, e)
	}

	return events
}

// ItemAppeared is emitted for an incoming item with no canonical record.
func (d *ChangeDetector) ItemAppeared(item snapshot.Item) models.ChangeEvent {
	e := d.event(models.ChangeItemAppeared, item.Serial, item.Model, item.Load)
	e.CurrentState = itemState(item)
	return e
}

// ItemDisappeared is emitted for a record the snapshot no longer contains.
func (d *ChangeDetector) ItemDisappeared(existing models.InventoryItem) models.ChangeEvent {
	e := d.event(models.ChangeItemDisappeared, existing.Serial, existing.Model, existing.SubInventory)
	e.PreviousState = recordState(existing)
	return e
}

// LoadChanges compares stored load metadata with the incoming load. existing is nil
// for a load never seen before.
func (d *ChangeDetector) LoadChanges(existing *models.Load, load snapshot.Load) []models.ChangeEvent {
	number := load.LoadNumber

	if existing == nil || existing.GEOrphaned {
		e := d.event(models.ChangeLoadAppeared, nil, "", &number)
		e.CurrentState = loadState(load)
		if existing != nil {
			e.PreviousState = datatypes.JSONMap{"orphaned": true}
		}
		return []models.ChangeEvent{e}
	}

	var events []models.ChangeEvent

	if load.IsSold() && snapshot.NormalizeStatus(existing.Status) != "sold" {
		events = append(events, fieldChange(d.event(models.ChangeLoadSold, nil, "", &number), "status",
			utils.NilIfEmpty(existing.Status), utils.NilIfEmpty(load.Status)))
	}

	if utils.Deref(existing.CSO) == "" && load.CSO != nil {
		events = append(events, fieldChange(d.event(models.ChangeLoadCSOAssigned, nil, "", &number), "cso",
			existing.CSO, load.CSO))
	}

	if snapshot.NormalizeStatus(existing.CSOStatus) != snapshot.NormalizeStatus(load.CSOStatus) {
		events = append(events, fieldChange(d.event(models.ChangeLoadCSOStatusChanged, nil, "", &number), "cso_status",
			utils.NilIfEmpty(existing.CSOStatus), utils.NilIfEmpty(load.CSOStatus)))
	}

	if existing.Units != load.Units {
		from, to := strconv.Itoa(existing.Units), strconv.Itoa(load.Units)
		events = append(events, fieldChange(d.event(models.ChangeLoadUnitsChanged, nil, "", &number), "units", &from, &to))
	}

	return events
}

// LoadDisappeared is emitted for a stored load absent from the snapshot.
func (d *ChangeDetector) LoadDisappeared(existing models.Load) models.ChangeEvent {
	number := existing.LoadNumber
	e := d.event(models.ChangeLoadDisappeared, nil, "", &number)
	e.PreviousState = datatypes.JSONMap{
		"status":     existing.Status,
		"cso_status": existing.CSOStatus,
		"units":      existing.Units,
		"cso":        utils.Deref(existing.CSO),
	}
	return e
}

func formatQty(v *float64) *string {
	if v == nil {
		return nil
	}
	s := strconv.FormatFloat(*v, 'f', -1, 64)
	return &s
}

func itemState(i snapshot.Item) datatypes.JSONMap {
	return datatypes.JSONMap{
		"serial":               nullable(i.Serial),
		"model":                i.Model,
		"qty":                  i.Qty,
		"availability_status":  nullable(i.AvailabilityStatus),
		"availability_message": nullable(i.AvailabilityMessage),
		"cso":                  nullable(i.CSO),
		"load":                 nullable(i.Load),
	}
}

func recordState(r models.InventoryItem) datatypes.JSONMap {
	model := r.Model
	if r.GEModel != nil {
		model = *r.GEModel
	}
	var qty any
	if r.GEInvQty != nil {
		qty = *r.GEInvQty
	}
	return datatypes.JSONMap{
		"serial":               nullable(r.Serial),
		"model":                model,
		"qty":                  qty,
		"availability_status":  nullable(r.GEAvailabilityStatus),
		"availability_message": nullable(r.GEAvailabilityMessage),
		"cso":                  nullable(r.CSO),
		"load":                 nullable(r.SubInventory),
	}
}

func loadState(l snapshot.Load) datatypes.JSONMap {
	return datatypes.JSONMap{
		"load_number": l.LoadNumber,
		"status":      l.Status,
		"cso_status":  l.CSOStatus,
		"units":       l.Units,
		"cso":         nullable(l.CSO),
	}
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

package snapshot

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"ge-sync/core/utils"
	"ge-sync/feature/inventory/models"

	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/now"
)

var validate = validator.New()

// Item is a validated external inventory row with its resolved load.
type Item struct {
	Serial              *string
	Model               string
	Qty                 float64
	QtyParsed           bool
	AvailabilityStatus  *string
	AvailabilityMessage *string
	CSO                 *string
	Load                *string
}

// Load is validated load metadata.
type Load struct {
	LoadNumber    string
	Status        string
	CSOStatus     string
	Units         int
	Notes         *string
	SubmittedDate *time.Time
	CSO           *string
}

// NormalizeStatus lower-cases a GE status and folds separators so that
// "For-Sale" and "for sale" compare equal.
func NormalizeStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(s), " ")
}

// OnFloor reports whether the load's items are physically present: the load is for
// sale, or sold and already picked by the customer order.
func (l Load) OnFloor() bool {
	switch NormalizeStatus(l.Status) {
	case "for sale":
		return true
	case "sold":
		return NormalizeStatus(l.CSOStatus) == "picked"
	}
	return false
}

// IsSold reports whether the load status is sold.
func (l Load) IsSold() bool {
	return NormalizeStatus(l.Status) == "sold"
}

// IsForSale reports whether the load status is for sale.
func (l Load) IsForSale() bool {
	return NormalizeStatus(l.Status) == "for sale"
}

// IsPicked reports whether the load is sold and picked.
func (l Load) IsPicked() bool {
	return l.IsSold() && NormalizeStatus(l.CSOStatus) == "picked"
}

// Snapshot is the parsed, validated form of a Raw export.
type Snapshot struct {
	Items       []Item
	Loads       []Load
	Assignments map[string]string // serial -> load number, on-floor loads only
	Warnings    []ValidationError
}

// Parse validates raw rows, applies permissive defaults and resolves each item's load.
// It never fails on bad rows; those become warnings. It only returns an error for a nil input.
func Parse(raw *Raw) (*Snapshot, error) {
	if raw == nil {
		return nil, fmt.Errorf("snapshot is nil")
	}

	s := &Snapshot{Assignments: make(map[string]string)}
	s.parseLoads(raw.Loads)
	s.expandAssignments(raw.LoadItems)
	s.parseItems(raw.Items, len(s.Loads) > 0)

	return s, nil
}

func (s *Snapshot) warn(entity string, row int, key, field, reason string) {
	s.Warnings = append(s.Warnings, ValidationError{Entity: entity, Row: row, Key: key, Field: field, Reason: reason})
}

func (s *Snapshot) parseLoads(rows []RawLoad) {
	seen := make(map[string]bool, len(rows))

	for i, r := range rows {
		r.LoadNumber = strings.TrimSpace(r.LoadNumber)
		if err := validate.Struct(r); err != nil {
			s.warn("load", i, "", "load_number", "missing load number, row dropped")
			continue
		}
		if seen[r.LoadNumber] {
			s.warn("load", i, r.LoadNumber, "load_number", "duplicate load, first row kept")
			continue
		}
		seen[r.LoadNumber] = true

		load := Load{
			LoadNumber: r.LoadNumber,
			Status:     strings.TrimSpace(r.Status),
			CSOStatus:  strings.TrimSpace(r.CSOStatus),
			Notes:      utils.NilIfEmpty(strings.TrimSpace(r.Notes)),
			CSO:        utils.NilIfEmpty(strings.TrimSpace(r.CSO)),
		}

		if r.Units != nil {
			units, ok := utils.ToInt(r.Units)
			if ok {
				load.Units = units
			} else {
				s.warn("load", i, r.LoadNumber, "units", fmt.Sprintf("invalid units %v, defaulted to 0", r.Units))
			}
		}

		if d := strings.TrimSpace(r.SubmittedDate); d != "" {
			t, err := now.ParseInLocation(time.UTC, d)
			if err != nil {
				s.warn("load", i, r.LoadNumber, "submitted_date", fmt.Sprintf("unparseable date %q", d))
			} else {
				load.SubmittedDate = &t
			}
		}

		s.Loads = append(s.Loads, load)
	}
}

// expandAssignments maps serials of on-floor loads to their load number. Loads are
// visited in load-number order so a serial listed under two loads resolves the same
// way on every run.
func (s *Snapshot) expandAssignments(loadItems map[string][]string) {
	onFloor := make([]string, 0, len(s.Loads))
	for _, l := range s.Loads {
		if l.OnFloor() {
			onFloor = append(onFloor, l.LoadNumber)
		}
	}
	sort.Strings(onFloor)

	for _, loadNumber := range onFloor {
		for _, serial := range loadItems[loadNumber] {
			serial = strings.TrimSpace(serial)
			if serial == "" {
				continue
			}
			if prev, ok := s.Assignments[serial]; ok && prev != loadNumber {
				s.warn("load", -1, serial, "load_items",
					fmt.Sprintf("serial listed under loads %s and %s, kept %s", prev, loadNumber, prev))
				continue
			}
			s.Assignments[serial] = loadNumber
		}
	}
}

func (s *Snapshot) parseItems(rows []RawItem, hasLoads bool) {
	seen := make(map[string]bool, len(rows))

	for i, r := range rows {
		r.Serial = strings.TrimSpace(r.Serial)
		r.Model = strings.TrimSpace(r.Model)
		if err := validate.Struct(r); err != nil {
			s.warn("item", i, "", "serial", "row has neither serial nor model, dropped")
			continue
		}

		item := Item{
			Serial:              utils.NilIfEmpty(r.Serial),
			Model:               r.Model,
			AvailabilityStatus:  utils.NilIfEmpty(strings.TrimSpace(r.AvailabilityStatus)),
			AvailabilityMessage: utils.NilIfEmpty(strings.TrimSpace(r.AvailabilityMessage)),
			CSO:                 utils.NilIfEmpty(strings.TrimSpace(r.CSO)),
		}

		switch {
		case item.Serial != nil && s.Assignments[*item.Serial] != "":
			load := s.Assignments[*item.Serial]
			item.Load = &load
		case item.Serial != nil && hasLoads:
			// Serialized but not on an on-floor load: unassigned.
		default:
			item.Load = utils.NilIfEmpty(strings.TrimSpace(r.SubInventory))
		}

		key := itemKey(item)
		if r.Qty == nil {
			item.Qty = 1
			s.warn("item", i, key, "qty", "missing quantity, defaulted to 1")
		} else if qty, ok := utils.ToFloat(r.Qty); ok {
			item.Qty = qty
			item.QtyParsed = true
		} else {
			item.Qty = 1
			s.warn("item", i, key, "qty", fmt.Sprintf("non-numeric quantity %v, defaulted to 1", r.Qty))
		}

		if seen[key] {
			s.warn("item", i, key, "serial", "duplicate row, first row kept")
			continue
		}
		seen[key] = true

		s.Items = append(s.Items, item)
	}
}

func itemKey(i Item) string {
	return models.IdentityKey(i.Serial, i.Model, i.Load)
}

// PlacedCount returns how many items resolved to a load.
func (s *Snapshot) PlacedCount() int {
	n := 0
	for _, i := range s.Items {
		if i.Load != nil {
			n++
		}
	}
	return n
}

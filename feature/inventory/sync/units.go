package sync

import (
	"strings"

	"ge-sync/feature/inventory/models"
)

// Unit is one synchronizable export and the bucket it reconciles into.
type Unit struct {
	Name   string               `json:"name"`
	Bucket models.InventoryType `json:"bucket"`
}

var (
	UnitFG       = Unit{Name: "fg", Bucket: models.TypeFG}
	UnitASIS     = Unit{Name: "asis", Bucket: models.TypeASIS}
	UnitSTA      = Unit{Name: "sta", Bucket: models.TypeSTA}
	UnitInbound  = Unit{Name: "inbound", Bucket: models.TypeInbound}
	UnitBackHaul = Unit{Name: "backhaul", Bucket: models.TypeBackHaul}
	UnitOrders   = Unit{Name: "orders", Bucket: models.TypeStaged}
)

// Units is the orchestrator order. STA must follow ASIS so that migration finds the
// ASIS rows it adopts.
var Units = []Unit{UnitFG, UnitASIS, UnitSTA, UnitInbound, UnitBackHaul, UnitOrders}

// UnitByName looks a unit up case-insensitively.
func UnitByName(name string) (Unit, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, u := range Units {
		if u.Name == name {
			return u, true
		}
	}
	return Unit{}, false
}

// UnitNames returns the names of all units in run order.
func UnitNames() []string {
	names := make([]string, len(Units))
	for i, u := range Units {
		names[i] = u.Name
	}
	return names
}

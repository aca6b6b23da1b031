package models

import "strings"

// InventoryType is the lifecycle bucket an item belongs to.
type InventoryType string

const (
	TypeFG         InventoryType = "FG"
	TypeASIS       InventoryType = "ASIS"
	TypeSTA        InventoryType = "STA"
	TypeBackHaul   InventoryType = "BackHaul"
	TypeLocalStock InventoryType = "LocalStock"
	TypeStaged     InventoryType = "Staged"
	TypeInbound    InventoryType = "Inbound"
)

// Equivalent reports whether items may migrate transparently between a and b.
// A bucket is equivalent to itself; ASIS and STA are equivalent to each other.
func Equivalent(a, b InventoryType) bool {
	if a == b {
		return true
	}
	return isDisplay(a) && isDisplay(b)
}

func isDisplay(t InventoryType) bool {
	return t == TypeASIS || t == TypeSTA
}

// EquivalenceClass returns every bucket equivalent to t, t first.
func EquivalenceClass(t InventoryType) []InventoryType {
	switch t {
	case TypeASIS:
		return []InventoryType{TypeASIS, TypeSTA}
	case TypeSTA:
		return []InventoryType{TypeSTA, TypeASIS}
	default:
		return []InventoryType{t}
	}
}

// IdentityKey returns the key used to match an external row against canonical records.
// Serialized stock is keyed by serial. Unserialized stock is keyed by model and load.
func IdentityKey(serial *string, model string, load *string) string {
	if serial != nil && *serial != "" {
		return *serial
	}
	l := ""
	if load != nil {
		l = *load
	}
	return "m:" + strings.ToUpper(model) + "|" + l
}

// ProductKey normalizes a model number for the product lookup.
func ProductKey(model string) string {
	return strings.ToUpper(strings.TrimSpace(model))
}

package snapshot

import (
	"context"
	"fmt"
)

// Scope identifies the snapshot for one sync unit at one location.
type Scope struct {
	CompanyID  string
	LocationID string
	Unit       string // fg, asis, sta, inbound, backhaul, orders
}

func (s Scope) String() string {
	return fmt.Sprintf("%s/%s/%s", s.CompanyID, s.LocationID, s.Unit)
}

// Source fetches raw snapshots produced by the scraper.
type Source interface {
	Fetch(ctx context.Context, scope Scope) (*Raw, error)
}

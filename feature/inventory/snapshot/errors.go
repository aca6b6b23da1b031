package snapshot

import (
	"errors"
	"fmt"
)

// ErrNoSnapshot is returned when storage holds no snapshot for a scope.
var ErrNoSnapshot = errors.New("no snapshot found")

// FetchError means the snapshot for a scope could not be obtained.
// No plan is computed and nothing is written.
type FetchError struct {
	Scope Scope
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch snapshot %s: %v", e.Scope, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ValidationError describes a malformed snapshot row. Parse records these as
// warnings and either applies a default or drops the row.
type ValidationError struct {
	Entity string `json:"entity"` // item or load
	Row    int    `json:"row"`
	Key    string `json:"key,omitempty"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e ValidationError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s row %d (%s): %s: %s", e.Entity, e.Row, e.Key, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s row %d: %s: %s", e.Entity, e.Row, e.Field, e.Reason)
}

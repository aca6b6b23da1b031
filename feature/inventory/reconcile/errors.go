package reconcile

import "fmt"

// PersistenceError is a storage write failure that aborted the rest of a bucket run.
// Batches written before the failure stay applied.
type PersistenceError struct {
	Step  string
	Batch int
	Err   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s batch %d: %v", e.Step, e.Batch, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// LoggingError is a failed change-log batch. It is counted and logged, never returned.
type LoggingError struct {
	Batch int
	Size  int
	Err   error
}

func (e *LoggingError) Error() string {
	return fmt.Sprintf("change log batch %d (%d events): %v", e.Batch, e.Size, e.Err)
}

func (e *LoggingError) Unwrap() error {
	return e.Err
}

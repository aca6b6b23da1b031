// Package reconcile is the GE inventory reconciliation engine.
//
// A bucket run has two halves. BuildPlan is pure: it takes the parsed snapshot,
// the store projection (State), the product lookup, a run token and a clock
// value, and returns a Plan. The Persister then executes that plan against a
// Writer in bounded batches.
//
// # Planning
//
//   - IdentityResolver matches each incoming item to at most one record. STA
//     imports adopt ASIS records (migration); other equivalent imports only
//     reclaim orphaned records. A serial held live by a non-equivalent bucket is
//     a conflict and is skipped.
//   - ChangeDetector diffs matched pairs into item_* events and stored loads
//     into load_* events.
//   - OrphanTracker reports target-bucket records the snapshot did not touch.
//
// Matched records whose sync-owned fields did not change are not re-written, so
// running the same snapshot twice produces no writes and no events.
//
// # Persisting
//
// Change events go first and are best effort (failures are logged as
// LoggingError and counted). New items, id-keyed upserts, orphan flags and load
// metadata follow; any failure there stops the run with a *PersistenceError.
// Nothing is wrapped in a transaction, so committed batches remain applied.
//
// Store is the gorm implementation of both the read side (LoadState,
// LoadProducts) and the Writer.
package reconcile

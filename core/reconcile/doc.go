// Package reconcile provides the domain-agnostic building blocks used by the GE
// inventory reconciliation engine.
//
// # Batching
//
// Chunk splits write payloads into bounded batches (DefaultBatchSize rows) so a
// single statement never carries an unbounded parameter list. DedupeLastWins
// collapses payloads that share a key and reports the duplicates so callers can
// log them instead of silently dropping rows.
//
// # Caching
//
// Cache is a TTL cache with singleflight stampede protection. The sync feature
// uses it for the model to product lookup, which is reused by every bucket of a
// unified run.
//
// # Overlap detection
//
// RunGuard records in-flight run tokens per key. It does not serialize runs; it
// makes a double invocation visible so callers can report or reject it.
package reconcile

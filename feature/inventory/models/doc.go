// Package models defines the gorm models of the GE sync service.
//
// # Tables
//
//   - inventory_items: canonical inventory, one row per serial (or model and load
//     for unserialized stock) per bucket.
//   - ge_loads: load metadata per bucket, keyed by company, location, bucket and
//     load number.
//   - ge_change_log: append-only audit trail of every detected difference.
//   - products: read-only catalog used for the model to product lookup.
//   - sync_activity_log: one row per sync invocation.
//
// Buckets are InventoryType values. ASIS and STA form one migration-equivalence
// class; every other bucket is isolated (see Equivalent).
package models

// Package inventory implements the GE inventory sync feature.
//
// It keeps the warehouse inventory current by reconciling it against snapshots
// exported from GE. The engine lives in the subpackages:
//
//   - models: gorm models for items, loads, the change log, products and activity.
//   - snapshot: snapshot sources and the validating parser.
//   - reconcile: the pure planner, the batch persister and the gorm store.
//   - sync: single-bucket runs, the orchestrator and the cron scheduler.
//
// # Components
//
//   - Service: validates requests, takes the per-location lock and invokes the
//     orchestrator.
//   - Handler: exposes the HTTP endpoints.
//   - Loader: registers the feature with the application.
//
// # HTTP Endpoints
//
//   - POST /sync?location=: run every bucket for a location.
//   - POST /sync/:bucket?location=: run one bucket.
//   - GET /sync/:bucket/preview?location=: dry-run one bucket.
//
// Bucket failures return 200 with success=false in the body. 400 means an unknown
// bucket or missing location, and 409 means the location lock is held.
package inventory

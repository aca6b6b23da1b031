// Package integrity provides health checks for the sync infrastructure.
//
// # Checks Provided
//
//   - Schema: Validates that every sync table matches its gorm model (columns, types).
//   - Snapshots: Reports the newest snapshot of every unit for a location and flags
//     missing or stale exports.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks (snapshots only when ?location= is given).
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/snapshots?location= : Runs the snapshot check.
package integrity

// Package sync drives reconciliation runs.
//
// A Unit pairs an export name (fg, asis, sta, inbound, backhaul, orders) with
// the bucket it reconciles into; orders land in Staged. Syncer runs one unit:
// fetch the snapshot, parse it, load the store projection, build the plan and,
// unless the request is a dry run, persist it. Every run is written to the
// activity log with its duration, stats and error.
//
// Orchestrator runs all units for a location in the order of Units. FG, ASIS
// and STA come first because STA migration adopts ASIS rows. A failing unit
// does not stop the others; errors are joined with "; " in the RunResult.
//
// Runs never lock. A RunGuard reports overlapping run tokens for the same
// location. Callers that need exclusion (the HTTP feature, the CLI and the
// Scheduler) go through Syncer.Lock first, which also records refused runs.
package sync

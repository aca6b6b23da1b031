// Package snapshot turns scraper exports into validated input for the planner.
//
// # Sources
//
// A Source fetches the Raw document for one Scope (company, location, sync unit).
// StorageSource reads the newest JSON object from the export bucket; HTTPSource
// asks the scraper service directly. Any failure is returned as a *FetchError.
//
// # Parsing
//
// Parse is the only place raw fields are coerced. It:
//   - drops rows with neither serial nor model, and loads without a number,
//   - defaults a missing or non-numeric quantity to 1 and units to 0,
//   - expands on-floor loads ("for sale", or "sold" and "picked") into a
//     serial to load assignment,
//   - keeps the first of duplicate rows.
//
// Every coercion or drop is recorded as a ValidationError in Snapshot.Warnings.
package snapshot

// Package lock provides the optional per-location lock that keeps two sync runs
// for the same location from overlapping across processes.
//
// The lock is a redis key set with NX and a TTL. Its value is a random token,
// and release deletes the key only while it still carries that token, so a run
// that outlives its TTL never frees a lock taken by the next holder.
//
// When no redis address is configured, New returns a NopLocker and runs are only
// checked for overlap in-process.
package lock

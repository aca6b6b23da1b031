// Package logger builds the zap logger shared by the server, the CLI and the scheduler.
//
// Level debug selects zap's development config, anything else the production one.
// Format picks json or console output. When File is set, every entry is also written
// as JSON to a lumberjack-rotated file so long-running sync servers keep a local trail.
//
// WithRayID tags a logger with the request's ray id:
//
//	l := logger.WithRayID(log, c)
//	l.Error("Sync request failed", zap.Error(err))
package logger

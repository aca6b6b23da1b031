// Package utils provides common utility functions for the sync service.
// It holds the coercion helpers used at the snapshot boundary, where exported
// values arrive as strings or numbers depending on the report they came from.
package utils

// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure MySQL, PostgreSQL or SQLite connections from the
// application's configuration. SQLite is used by tests and small single-site installs.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns let the migrate command verify that the
// inventory tables carry every column the sync engine writes, including tables
// that are shared with the scanning subsystem and were not created by AutoMigrate.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "inventory_items", []string{"ge_orphaned"})
package database

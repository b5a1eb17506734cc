// Package database handles database connections and schema inspection.
//
// It wraps GORM to open either MySQL or SQLite depending on the configured
// driver. The connection backs the sql cache backend.
//
// # Schema Inspection
//
// GetTableColumns returns the column definitions of a table, using
// SHOW COLUMNS on MySQL and PRAGMA table_info on SQLite. The server integrity
// check compares them with the cache_entries model.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "cache_entries")
package database

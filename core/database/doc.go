// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL, PostgreSQL or SQLite connections
// based on the application's configuration. The driver is picked once at startup so the
// reconciliation store above it never branches on dialect.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table so the `check` command can verify that the
// configured schema profile matches the live database before ingesting snapshots.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "adsb_positions")
package database

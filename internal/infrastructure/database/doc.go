// Package database manages the SQLite connection backing the
// preference store.
//
// It wraps database/sql with humidcore conventions: directory and
// permission setup, WAL and busy-timeout pragmas, a health check, and
// an in-code migration list that creates the preferences schema.
//
// # Usage
//
//	db, err := database.Open(ctx, database.Config{
//	    Path:        cfg.Database.Path,
//	    WALMode:     cfg.Database.WALMode,
//	    BusyTimeout: cfg.Database.BusyTimeout,
//	})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
//
// SQLite is configured for a single writer (MaxOpenConns = 1), which
// matches both SQLite's locking model and the synchronous publish
// pipeline that produces the writes.
package database

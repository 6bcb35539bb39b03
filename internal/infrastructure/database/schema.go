package database

import (
	"context"
	"fmt"
)

// migration is a single ordered schema change. The schema is small
// enough (one preference table) that the statements live here rather
// than in embedded SQL files; append new migrations, never edit
// applied ones.
type migration struct {
	// Version orders migrations and records them in schema_migrations.
	// Format: YYYYMMDD_HHMMSS
	Version string

	// SQL is the statement set applying this migration.
	SQL string
}

// migrations lists every schema change in application order.
var migrations = []migration{
	{
		Version: "20260815_120000",
		SQL: `
			CREATE TABLE IF NOT EXISTS preferences (
			    key        INTEGER PRIMARY KEY,
			    value      BLOB NOT NULL,
			    updated_at TEXT NOT NULL
			);
		`,
	},
}

// Migrate applies all pending schema migrations in version order.
//
// Each migration runs in its own transaction and is recorded in the
// schema_migrations table, so re-running Migrate is cheap and safe: it
// applies only what is missing.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - error: If tracking-table setup or any migration fails
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS schema_migrations (
		    version    TEXT PRIMARY KEY,
		    applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
	); err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		applied, err := db.migrationApplied(ctx, m.Version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		if err := db.applyMigration(ctx, m); err != nil {
			return fmt.Errorf("applying migration %s: %w", m.Version, err)
		}
	}

	return nil
}

// migrationApplied reports whether a migration version is recorded.
func (db *DB) migrationApplied(ctx context.Context, version string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM schema_migrations WHERE version = ?",
		version,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking migration %s: %w", version, err)
	}
	return count > 0, nil
}

// applyMigration runs one migration and records it, atomically.
func (db *DB) applyMigration(ctx context.Context, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op once committed

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version) VALUES (?)",
		m.Version,
	); err != nil {
		return fmt.Errorf("recording migration: %w", err)
	}

	return tx.Commit()
}

package prefs

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLiteStore persists preference blobs in the preferences table.
//
// The table is created by database.Migrate:
//
//	CREATE TABLE preferences (
//	    key        INTEGER PRIMARY KEY,
//	    value      BLOB NOT NULL,
//	    updated_at TEXT NOT NULL
//	)
//
// Load and Save are deliberately context-free: they sit at the end of
// the synchronous publish pipeline, which has no cancellation
// semantics. SQLite's busy timeout (configured at Open) bounds the
// worst case.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a preference store on an open database.
//
// Parameters:
//   - db: Open SQLite connection; the preferences table must exist
//
// Returns:
//   - *SQLiteStore: Store ready for use
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Load reads the blob stored under key.
//
// Returns:
//   - []byte: The stored value, or nil when no record exists
//   - error: nil on success or absence, otherwise the database error
func (s *SQLiteStore) Load(key uint32) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(
		"SELECT value FROM preferences WHERE key = ?",
		int64(key),
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading preference %#x: %w", key, err)
	}
	return value, nil
}

// Save writes the blob under key, replacing any previous value.
//
// Returns:
//   - error: nil on success, otherwise the database error
func (s *SQLiteStore) Save(key uint32, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		int64(key),
		value,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving preference %#x: %w", key, err)
	}
	return nil
}

// Delete removes the blob stored under key. Deleting an absent key is
// not an error.
func (s *SQLiteStore) Delete(key uint32) error {
	_, err := s.db.Exec("DELETE FROM preferences WHERE key = ?", int64(key))
	if err != nil {
		return fmt.Errorf("deleting preference %#x: %w", key, err)
	}
	return nil
}

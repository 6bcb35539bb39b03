// Package prefs implements the non-volatile preference store backing
// humidifier restore records.
//
// A preference is a small opaque blob addressed by a uint32 key; the
// entity derives its key from its configured name, so a record
// survives restarts as long as the name is stable. Two
// implementations exist:
//
//   - SQLiteStore: durable storage in the preferences table, the
//     production backend.
//   - MemoryStore: process-local map, used by tests and by entities
//     that should not persist.
//
// Both satisfy the humidifier.Store interface. Absence is reported as
// (nil, nil) from Load — a missing record is "no prior state", not an
// error.
//
// # Usage
//
//	store := prefs.NewSQLiteStore(db.DB)
//	h, err := humidifier.New("greenhouse", driver, store)
package prefs

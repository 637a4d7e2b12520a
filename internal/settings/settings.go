// Package settings persists process-wide UI settings (theme, sidebar
// state) in a sqlite key/value table. Values load once at startup and
// every change is written through immediately.
package settings

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// Defaults apply when a key has never been set.
var Defaults = map[string]string{
	"theme":   "dark",
	"sidebar": "open",
}

// Store is the settings store. Reads hit the in-memory copy; writes go
// to sqlite first and update the copy on success.
type Store struct {
	db *sql.DB

	mu     sync.RWMutex
	values map[string]string
}

// Open opens (or creates) the settings database and loads all values.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open settings db: %w", err)
	}

	if _, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create settings table: %w", err)
	}

	s := &Store{db: db, values: make(map[string]string)}
	if err := s.loadAll(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) loadAll() error {
	rows, err := s.db.Query(`SELECT key, value FROM settings`)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return fmt.Errorf("scan setting: %w", err)
		}
		s.values[k] = v
	}
	return rows.Err()
}

// Get returns the stored value for key, or its default when never set.
func (s *Store) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[key]; ok {
		return v
	}
	return Defaults[key]
}

// Set persists the value and updates the in-memory copy.
func (s *Store) Set(key, value string) error {
	if _, err := s.db.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value); err != nil {
		return fmt.Errorf("persist setting %s: %w", key, err)
	}
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return nil
}

// All returns every known setting, defaults filled in for unset keys.
func (s *Store) All() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.values)+len(Defaults))
	for k, v := range Defaults {
		out[k] = v
	}
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

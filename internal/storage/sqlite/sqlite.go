// Package sqlite keeps json records in a single SQLite table keyed by storage.Key path.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/drakos74/offset-model/internal/storage"
	_ "modernc.org/sqlite"
)

const schema = `
	CREATE TABLE IF NOT EXISTS records (
		key        TEXT PRIMARY KEY,
		payload    BLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);`

// Storage is a storage.Persistence backed by a SQLite database file.
type Storage struct {
	db *sql.DB
}

// New opens (or creates) the database at path.
func New(path string) (*Storage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("could not open sqlite '%s': %w", path, err)
	}

	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=FULL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("could not execute %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create schema: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	return s.db.Close()
}

// Store upserts the record, the statement runs in its own transaction.
func (s *Storage) Store(k storage.Key, value interface{}) error {
	bb, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not marshal value: %w", err)
	}
	return s.Put(k, bb)
}

// Put stores raw bytes under the key.
func (s *Storage) Put(k storage.Key, bb []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO records (key, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		k.Path(), bb, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("could not store '%s': %w", k.Path(), err)
	}
	return nil
}

func (s *Storage) Load(k storage.Key, value interface{}) error {
	var bb []byte
	err := s.db.QueryRow(`SELECT payload FROM records WHERE key = ?`, k.Path()).Scan(&bb)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("key '%s': %w", k.Path(), storage.NotFoundErr)
	}
	if err != nil {
		return fmt.Errorf("could not query '%s': %w", k.Path(), err)
	}
	if err := json.Unmarshal(bb, value); err != nil {
		return fmt.Errorf("could not unmarshal '%s': %v: %w", k.Path(), err, storage.CouldNotLoadErr)
	}
	return nil
}

// Remove deletes the record of the key.
func (s *Storage) Remove(k storage.Key) error {
	if _, err := s.db.Exec(`DELETE FROM records WHERE key = ?`, k.Path()); err != nil {
		return fmt.Errorf("could not remove '%s': %w", k.Path(), err)
	}
	return nil
}

package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv_store (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// SQLiteStore persists values in a local sqlite database, the server-side
// stand-in for the browser's key-value storage.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the database at path and initializes
// the schema.
func NewSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get(key string, dest any) error {
	var raw string
	err := s.db.QueryRow("SELECT value FROM kv_store WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if _, err := s.db.Exec(
		"INSERT OR REPLACE INTO kv_store (key, value) VALUES (?, ?)",
		key, string(data),
	); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

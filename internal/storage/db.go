package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `CREATE TABLE IF NOT EXISTS kv (
	k TEXT PRIMARY KEY,
	v TEXT NOT NULL
)`

// Open opens (and initializes if needed) a SQLite database at path.
// Use ":memory:" for an ephemeral database.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open() > %w", err)
	}
	// SQLite allows a single writer; serializing through one connection
	// avoids SQLITE_BUSY under the fetcher's concurrent updates.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Exec(create kv) > %w", err)
	}
	return db, nil
}

// DBKV implements KV on a SQLite kv table.
type DBKV struct {
	db *sqlx.DB
}

// NewDBKV creates a new DBKV.
func NewDBKV(db *sqlx.DB) *DBKV {
	return &DBKV{db: db}
}

// Get returns the value for key and whether it exists.
func (s *DBKV) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, "SELECT v FROM kv WHERE k = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("db.GetContext(kv) > %w", err)
	}
	return value, true, nil
}

// Set writes the value for key, replacing any previous value.
func (s *DBKV) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO kv (k, v) VALUES (?, ?) ON CONFLICT(k) DO UPDATE SET v = excluded.v",
		key, value)
	if err != nil {
		return fmt.Errorf("db.ExecContext(upsert kv) > %w", err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *DBKV) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE k = ?", key); err != nil {
		return fmt.Errorf("db.ExecContext(delete kv) > %w", err)
	}
	return nil
}

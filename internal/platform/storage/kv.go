package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"focusguard/internal/platform/clock"
)

// KV is the durable key/value store every module persists its slice in.
// Values are JSON documents.
type KV interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, values map[string]any) error
	Remove(ctx context.Context, keys ...string) error
}

type SQLiteKV struct {
	db    *sql.DB
	clock clock.Clock
}

func NewSQLiteKV(db *sql.DB, clk clock.Clock) (*SQLiteKV, error) {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	kv := &SQLiteKV{db: db, clock: clk}
	if err := kv.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return kv, nil
}

func (s *SQLiteKV) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}
	return nil
}

// Get decodes the value stored under key into dst. It reports false, leaving
// dst untouched, when the key is absent.
func (s *SQLiteKV) Get(ctx context.Context, key string, dst any) (bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read key %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decode key %s: %w", key, err)
	}
	return true, nil
}

// Set writes every value in one transaction.
func (s *SQLiteKV) Set(ctx context.Context, values map[string]any) error {
	encoded := make(map[string]string, len(values))
	for key, value := range values {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode key %s: %w", key, err)
		}
		encoded[key] = string(raw)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin kv tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const stmt = `
INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at;
`
	now := s.clock.Now().UTC().Format(time.RFC3339Nano)
	for key, raw := range encoded {
		if _, err := tx.ExecContext(ctx, stmt, key, raw, now); err != nil {
			return fmt.Errorf("write key %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit kv tx: %w", err)
	}
	return nil
}

func (s *SQLiteKV) Remove(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
			return fmt.Errorf("remove key %s: %w", key, err)
		}
	}
	return nil
}

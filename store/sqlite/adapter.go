package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spetersoncode/genstudio/store"
)

var _ store.Adapter = (*Adapter)(nil)

// Adapter stores JSON records in the records table.
type Adapter struct {
	db *DB
}

// NewAdapter creates an Adapter over an opened, migrated database.
func NewAdapter(db *DB) *Adapter {
	return &Adapter{db: db}
}

// Get returns the record stored under key.
func (a *Adapter) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	const query = `SELECT value FROM records WHERE key = ?`
	var value string
	err := a.db.Reader.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get record %q: %w", key, err)
	}
	return json.RawMessage(value), true, nil
}

// Set inserts or replaces the record stored under key.
func (a *Adapter) Set(ctx context.Context, key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return fmt.Errorf("set record %q: value is not valid JSON", key)
	}
	const query = `INSERT INTO records (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := a.db.Writer.ExecContext(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("set record %q: %w", key, err)
	}
	return nil
}

// Delete removes the record stored under key.
func (a *Adapter) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM records WHERE key = ?`
	if _, err := a.db.Writer.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("delete record %q: %w", key, err)
	}
	return nil
}

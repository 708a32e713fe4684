package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"liftit/internal/domain"
)

var _ domain.KVStore = (*DB)(nil)

// Get returns the value stored under key.
func (d *DB) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := d.sql.QueryRowContext(ctx, "SELECT value FROM kv_entries WHERE key=$1;", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Set upserts value under key.
func (d *DB) Set(ctx context.Context, key, value string) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO kv_entries(key, value, updated_at) VALUES($1, $2, $3) ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=EXCLUDED.updated_at;",
		key, value, d.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (d *DB) Delete(ctx context.Context, key string) error {
	if _, err := d.sql.ExecContext(ctx, "DELETE FROM kv_entries WHERE key=$1;", key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

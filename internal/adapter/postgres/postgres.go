// Package postgres implements the key-value store on a PostgreSQL table.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DB wraps a *sql.DB and implements domain.KVStore.
type DB struct {
	sql *sql.DB
	now func() time.Time
}

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	if err := migrate(ctx, s); err != nil {
		_ = s.Close()
		return nil, err
	}
	return New(s), nil
}

// New wraps an open connection without running migrations.
func New(s *sql.DB) *DB {
	return &DB{sql: s, now: time.Now}
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func migrate(ctx context.Context, s *sql.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := goose.UpContext(ctx, s, "migrations"); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

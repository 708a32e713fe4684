// Package redis implements the key-value store on Redis string keys.
package redis

import (
	"context"
	"errors"
	"fmt"

	"liftit/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

// DB stores each key as a Redis string under a fixed prefix.
type DB struct {
	client goredis.Cmdable
	prefix string
}

var _ domain.KVStore = (*DB)(nil)

// Open parses url, connects and verifies connectivity.
func Open(ctx context.Context, url, prefix string) (*DB, func() error, error) {
	if url == "" {
		return nil, nil, fmt.Errorf("redis url is required")
	}

	opt, err := goredis.ParseURL(url)
	if err != nil {
		return nil, nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := goredis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}

	return New(client, prefix), client.Close, nil
}

// New wraps an existing client.
func New(client goredis.Cmdable, prefix string) *DB {
	return &DB{client: client, prefix: prefix}
}

// Get returns the value stored under key.
func (db *DB) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := db.client.Get(ctx, db.prefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

// Set stores value under key without expiry.
func (db *DB) Set(ctx context.Context, key, value string) error {
	if err := db.client.Set(ctx, db.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (db *DB) Delete(ctx context.Context, key string) error {
	if err := db.client.Del(ctx, db.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

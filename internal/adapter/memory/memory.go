// Package memory implements an in-memory key-value store for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"

	"liftit/internal/domain"
)

// DB implements an in-memory key-value storage.
type DB struct {
	mu     sync.Mutex
	values map[string]string
	writes int
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{values: make(map[string]string)}
}

// Ensure interfaces are met.
var _ domain.KVStore = (*DB)(nil)

// Get returns the value stored under key.
func (db *DB) Get(ctx context.Context, key string) (string, bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	v, ok := db.values[key]
	return v, ok, nil
}

// Set stores value under key, replacing any previous value.
func (db *DB) Set(ctx context.Context, key, value string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.values[key] = value
	db.writes++
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (db *DB) Delete(ctx context.Context, key string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	delete(db.values, key)
	return nil
}

// Keys returns the stored keys in sorted order.
func (db *DB) Keys() []string {
	db.mu.Lock()
	defer db.mu.Unlock()

	keys := make([]string, 0, len(db.values))
	for k := range db.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Writes returns how many Set calls the store has served.
func (db *DB) Writes() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.writes
}

// Package file implements a key-value store kept in a single JSON file.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"liftit/internal/domain"
)

// DB stores every key in one JSON object on disk. Writes go to a temporary
// file that is renamed over the target, so readers never see a torn file.
type DB struct {
	mu   sync.Mutex
	path string
}

var _ domain.KVStore = (*DB)(nil)

// Open returns a DB backed by path, creating its directory if needed. The
// file itself is created on the first write.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	return &DB{path: path}, nil
}

// Path returns the backing file path.
func (db *DB) Path() string {
	return db.path
}

// Get returns the value stored under key.
func (db *DB) Get(ctx context.Context, key string) (string, bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	values, err := db.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set stores value under key.
func (db *DB) Set(ctx context.Context, key, value string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	values, err := db.read()
	if err != nil {
		return err
	}
	values[key] = value
	return db.write(values)
}

// Delete removes key. Deleting an absent key does not touch the file.
func (db *DB) Delete(ctx context.Context, key string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	values, err := db.read()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return db.write(values)
}

func (db *DB) read() (map[string]string, error) {
	values := make(map[string]string)
	b, err := os.ReadFile(db.path)
	if errors.Is(err, fs.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", db.path, err)
	}
	if len(b) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(b, &values); err != nil {
		return nil, fmt.Errorf("decode %s: %w", db.path, err)
	}
	return values, nil
}

func (db *DB) write(values map[string]string) error {
	b, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(db.path), filepath.Base(db.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), db.path); err != nil {
		return fmt.Errorf("replace %s: %w", db.path, err)
	}
	return nil
}

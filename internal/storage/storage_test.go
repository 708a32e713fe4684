package storage

import (
	"context"
	"path/filepath"
	"testing"

	"liftit/internal/adapter/file"
	"liftit/internal/adapter/memory"
	"liftit/internal/config"
	"liftit/internal/logging"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Memory(t *testing.T) {
	kv, closeFn, err := Open(context.Background(), config.Config{Backend: config.BackendMemory}, logging.Discard())
	require.NoError(t, err)
	defer closeFn() //nolint:errcheck
	assert.IsType(t, &memory.DB{}, kv)
}

func TestOpen_File(t *testing.T) {
	cfg := config.Config{Backend: config.BackendFile, DataFile: filepath.Join(t.TempDir(), "data.json")}
	kv, closeFn, err := Open(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	defer closeFn() //nolint:errcheck
	assert.IsType(t, &file.DB{}, kv)

	require.NoError(t, kv.Set(context.Background(), "k", "v"))
	assert.FileExists(t, cfg.DataFile)
}

func TestOpen_Redis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cfg := config.Config{Backend: config.BackendRedis, RedisURL: "redis://" + mr.Addr(), RedisPrefix: "t:"}
	kv, closeFn, err := Open(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	defer closeFn() //nolint:errcheck

	require.NoError(t, kv.Set(context.Background(), "k", "v"))
	assert.True(t, mr.Exists("t:k"))
}

func TestOpen_Unknown(t *testing.T) {
	_, _, err := Open(context.Background(), config.Config{Backend: "tape"}, logging.Discard())
	assert.Error(t, err)
}

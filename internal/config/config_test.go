package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("DATA_FILE", "")
	t.Setenv("ADDR", "")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("SHUTDOWN_TIMEOUT", "")
	t.Setenv("SESSION_TTL", "")

	cfg, err := Load(BackendFile)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, "liftit.json", cfg.DataFile)
	assert.Equal(t, "liftit:", cfg.RedisPrefix)
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("SESSION_TTL", "2h")

	cfg, err := Load(BackendFile)
	require.NoError(t, err)
	assert.Equal(t, BackendRedis, cfg.Backend)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 4, cfg.BcryptCost)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"STORE_BACKEND": "mongo"}},
		{"postgres without url", map[string]string{"STORE_BACKEND": "postgres", "DATABASE_URL": ""}},
		{"redis without url", map[string]string{"STORE_BACKEND": "redis", "REDIS_URL": ""}},
		{"s3 without bucket", map[string]string{"STORE_BACKEND": "s3", "S3_BUCKET": ""}},
		{"s3 half credentials", map[string]string{"STORE_BACKEND": "s3", "S3_BUCKET": "b", "S3_ACCESS_KEY_ID": "id", "S3_SECRET_ACCESS_KEY": ""}},
		{"bad cost", map[string]string{"STORE_BACKEND": "memory", "BCRYPT_COST": "99"}},
		{"non-numeric cost", map[string]string{"STORE_BACKEND": "memory", "BCRYPT_COST": "high"}},
		{"bad timeout", map[string]string{"STORE_BACKEND": "memory", "SHUTDOWN_TIMEOUT": "soon"}},
		{"bad session ttl", map[string]string{"STORE_BACKEND": "memory", "SESSION_TTL": "forever"}},
		{"zero session ttl", map[string]string{"STORE_BACKEND": "memory", "SESSION_TTL": "0s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(BackendFile)
			assert.Error(t, err)
		})
	}
}

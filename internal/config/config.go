// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Storage backends.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendS3       = "s3"
)

const (
	defaultAddr            = ":8080"
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
	defaultDataFile        = "liftit.json"
	defaultRedisPrefix     = "liftit:"
	defaultS3Prefix        = "liftit/"
	defaultS3Region        = "us-east-1"
	defaultShutdownTimeout = 10 * time.Second
	defaultSessionTTL      = 24 * time.Hour
)

// Config captures application runtime configuration.
type Config struct {
	Addr            string
	WebDir          string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	SessionTTL      time.Duration
	BcryptCost      int

	Backend     string
	DataFile    string
	DatabaseURL string
	RedisURL    string
	RedisPrefix string
	S3          S3Config
}

// S3Config holds object storage settings. Empty credentials fall back to the
// default AWS credential chain.
type S3Config struct {
	Bucket          string
	Prefix          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// Load reads configuration values from the environment. defaultBackend is
// used when STORE_BACKEND is unset.
func Load(defaultBackend string) (Config, error) {
	cfg := Config{
		Addr:        getEnv("ADDR", defaultAddr),
		WebDir:      os.Getenv("WEB_DIR"),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", defaultLogFormat)),
		Backend:     strings.ToLower(getEnv("STORE_BACKEND", defaultBackend)),
		DataFile:    getEnv("DATA_FILE", defaultDataFile),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		RedisPrefix: getEnv("REDIS_PREFIX", defaultRedisPrefix),
		S3: S3Config{
			Bucket:          os.Getenv("S3_BUCKET"),
			Prefix:          getEnv("S3_PREFIX", defaultS3Prefix),
			Region:          getEnv("S3_REGION", defaultS3Region),
			Endpoint:        os.Getenv("S3_ENDPOINT"),
			AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		},
		ShutdownTimeout: defaultShutdownTimeout,
		SessionTTL:      defaultSessionTTL,
		BcryptCost:      bcrypt.DefaultCost,
	}

	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownTimeout = d
	}

	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SESSION_TTL: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("SESSION_TTL must be positive")
		}
		cfg.SessionTTL = d
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return Config{}, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
		}
		cfg.BcryptCost = cost
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Backend {
	case BackendMemory:
	case BackendFile:
		if c.DataFile == "" {
			return fmt.Errorf("DATA_FILE must be set for the file backend")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must be set for the postgres backend")
		}
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL must be set for the redis backend")
		}
	case BackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET must be set for the s3 backend")
		}
		if (c.S3.AccessKeyID == "") != (c.S3.SecretAccessKey == "") {
			return fmt.Errorf("S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY must be set together")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Backend)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

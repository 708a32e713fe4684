// Package storage opens the configured key-value backend.
package storage

import (
	"context"
	"fmt"

	"liftit/internal/adapter/file"
	"liftit/internal/adapter/memory"
	"liftit/internal/adapter/postgres"
	"liftit/internal/adapter/redis"
	"liftit/internal/adapter/s3"
	"liftit/internal/config"
	"liftit/internal/domain"

	"github.com/sirupsen/logrus"
)

// Open returns the store selected by cfg.Backend and a function releasing
// its resources.
func Open(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (domain.KVStore, func() error, error) {
	noop := func() error { return nil }
	log = log.WithField("backend", cfg.Backend)

	switch cfg.Backend {
	case config.BackendMemory:
		log.Warn("using in-memory store; data is lost on exit")
		return memory.New(), noop, nil

	case config.BackendFile:
		db, err := file.Open(cfg.DataFile)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("path", db.Path()).Debug("store opened")
		return db, noop, nil

	case config.BackendPostgres:
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		log.Debug("store opened")
		return db, db.Close, nil

	case config.BackendRedis:
		db, closeFn, err := redis.Open(ctx, cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("prefix", cfg.RedisPrefix).Debug("store opened")
		return db, closeFn, nil

	case config.BackendS3:
		db, err := s3.Open(ctx, s3.Options{
			Bucket:          cfg.S3.Bucket,
			Prefix:          cfg.S3.Prefix,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		})
		if err != nil {
			return nil, nil, err
		}
		log.WithField("bucket", cfg.S3.Bucket).Debug("store opened")
		return db, noop, nil
	}

	return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

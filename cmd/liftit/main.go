package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adapthttp "liftit/internal/adapter/http"
	"liftit/internal/app"
	"liftit/internal/config"
	"liftit/internal/logging"
	"liftit/internal/storage"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(config.BackendFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	ctx := context.Background()

	kv, closeStore, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Error("open store")
		return 1
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.WithError(err).Warn("close store")
		}
	}()

	users := app.NewUserStore(kv, logger).WithHashCost(cfg.BcryptCost)
	sessions := app.NewSessionService(kv, users, logger, cfg.SessionTTL)
	metrics := app.NewMetricsService(users)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           adapthttp.New(users, sessions, metrics, logger, cfg.WebDir).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErrCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.Addr).Info("listening")
		srvErrCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.WithField("signal", sig.String()).Info("shutdown signal received")
	case err := <-srvErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("server error")
			return 1
		}
		return 0
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("shutdown error")
		return 1
	}
	logger.Info("server exited cleanly")
	return 0
}

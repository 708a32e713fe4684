package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"liftit/internal/app"
	"liftit/internal/cli"
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
	if os.Getenv("LOG_LEVEL") == "" {
		cfg.LogLevel = "warn"
	}
	logger := logging.New(cfg.LogLevel, "text", os.Stderr)

	ctx := context.Background()
	kv, closeStore, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open store: %v\n", err)
		return 1
	}
	defer func() { _ = closeStore() }()

	users := app.NewUserStore(kv, logger).WithHashCost(cfg.BcryptCost)
	a := cli.NewApp(users, app.NewMetricsService(users), os.Stdin, os.Stdout)

	if err := a.Run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "liftitctl: %v\n", err)
		if errors.Is(err, cli.ErrUsage) {
			return 2
		}
		return 1
	}
	return 0
}

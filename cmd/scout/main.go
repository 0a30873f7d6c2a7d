package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/BeefBowl03/domain-generator/config"
	"github.com/BeefBowl03/domain-generator/internal/bootstrap"
	"github.com/BeefBowl03/domain-generator/internal/delivery/cli"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	// progress goes to stdout; only warnings belong on the console
	if cfg.Log.Level == "info" {
		cfg.Log.Level = "warn"
	}

	appLog, err := bootstrap.CreateLogger(cfg, "nichescout-cli")
	if err != nil {
		return err
	}
	defer func() { _ = appLog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	services, err := bootstrap.Build(ctx, cfg, appLog)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer services.Close()

	cli.Configure(services.Lookup, services.Catalog.Keys())
	return cli.Execute(ctx)
}

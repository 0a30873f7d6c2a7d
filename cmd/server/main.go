package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/BeefBowl03/domain-generator/config"
	"github.com/BeefBowl03/domain-generator/internal/bootstrap"
	httpDelivery "github.com/BeefBowl03/domain-generator/internal/delivery/http"
	"github.com/BeefBowl03/domain-generator/internal/logger"
)

const (
	shutdownTimeout    = 15 * time.Second
	writeTimeoutMargin = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func run() error {
	// .env is optional
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLog, err := bootstrap.CreateLogger(cfg, "nichescout-server")
	if err != nil {
		return err
	}
	defer func() { _ = appLog.Sync() }()

	appLog.Info("starting NicheScout server",
		logger.String("port", cfg.Server.Port),
		logger.String("cache", cfg.Cache.Type),
		logger.Duration("deadline", cfg.Discovery.Deadline),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	services, err := bootstrap.Build(ctx, cfg, appLog)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer services.Close()

	handler := httpDelivery.NewHandler(services.Lookup)
	router := httpDelivery.SetupRouter(cfg, handler, appLog)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// a thorough lookup may run past its deadline by one in-flight batch
		WriteTimeout: services.MaxLookupDuration + writeTimeoutMargin,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("server listening", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	appLog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	appLog.Info("server stopped")
	return nil
}

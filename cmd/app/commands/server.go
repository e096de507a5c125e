package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allisson/quran-gateway/internal/app"
	"github.com/allisson/quran-gateway/internal/config"
)

// stoppable is a server that can be shut down within a deadline.
type stoppable interface {
	Shutdown(ctx context.Context) error
}

// RunServer starts the API server and, when enabled, the metrics server.
// Blocks until SIGINT/SIGTERM or until either server fails, then shuts both down
// within ShutdownTimeout. Configuration errors abort before anything listens.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	logger.Info("starting server",
		slog.String("version", version),
		slog.Bool("has_credentials", cfg.HasCredentials()),
		slog.String("credential_store", cfg.CredentialStore),
	)
	if !cfg.HasCredentials() {
		logger.Warn("content API credentials not configured, serving from fallback sources only")
	}

	server, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	named := map[string]stoppable{"api server": server}
	serverErr := make(chan error, 2)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErr <- fmt.Errorf("api server error: %w", err)
		}
	}()
	if metricsServer != nil {
		named["metrics server"] = metricsServer
		go func() {
			if err := metricsServer.Start(ctx); err != nil {
				serverErr <- fmt.Errorf("metrics server error: %w", err)
			}
		}()
	}

	var cause error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case cause = <-serverErr:
		logger.Error("server error, initiating shutdown", slog.Any("error", cause))
	}

	return errors.Join(cause, shutdownAll(named, cfg.ShutdownTimeout))
}

// shutdownAll stops every server under one shared deadline and joins their errors.
func shutdownAll(servers map[string]stoppable, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var shutdownErrors []error
	for name, server := range servers {
		if err := server.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("%s shutdown: %w", name, err))
		}
	}
	return errors.Join(shutdownErrors...)
}

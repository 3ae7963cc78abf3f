package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ritmodivulga/promo-engine/internal/app"
	"github.com/ritmodivulga/promo-engine/internal/config"
	"github.com/ritmodivulga/promo-engine/internal/handler"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := app.NewLogger(cfg, os.Stdout)
	slog.SetDefault(logger)

	a, err := app.New(context.Background(), cfg, logger, prometheus.DefaultRegisterer)
	if err != nil {
		logger.Error("failed to initialize", slog.Any("error", err))
		os.Exit(1)
	}
	defer a.Close()

	deps := handler.Dependencies{
		Logger:   logger,
		Metrics:  a.Metrics,
		Gatherer: prometheus.DefaultGatherer,
		Tokens:   a.Tokens,
		Location: cfg.GetSchedulerLocation(),
		Clients:  a.Clients,
		Packages: a.Packages,
		Payments: a.Payments,
		Workflow: a.Workflow,
		Reports:  a.Reports,
		Health:   handler.NewHealthHandler(readinessChecks(a), cfg.GetHealthTimeout()),
	}
	if a.Inbox != nil {
		deps.Inbox = a.Inbox
	}

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      handler.NewRouter(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("server starting", slog.String("addr", server.Addr), slog.String("env", cfg.Server.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", slog.Any("error", err))
	}

	logger.Info("server exited")
}

func readinessChecks(a *app.App) map[string]handler.Check {
	checks := map[string]handler.Check{}
	if a.DB != nil {
		checks["database"] = a.DB.PingContext
	}
	if a.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return a.Redis.Ping(ctx).Err()
		}
	}
	return checks
}

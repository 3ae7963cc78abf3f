package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ritmodivulga/promo-engine/internal/app"
	"github.com/ritmodivulga/promo-engine/internal/config"
	"github.com/ritmodivulga/promo-engine/internal/scheduler"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := app.NewLogger(cfg, os.Stdout).With(slog.String("component", "scheduler"))
	slog.SetDefault(logger)

	a, err := app.New(context.Background(), cfg, logger, prometheus.DefaultRegisterer)
	if err != nil {
		logger.Error("failed to initialize", slog.Any("error", err))
		os.Exit(1)
	}
	defer a.Close()

	s, err := scheduler.New(cfg.Scheduler, cfg.GetSchedulerLocation(), a.Workflow, a.Reports, logger, a.Metrics)
	if err != nil {
		logger.Error("failed to schedule jobs", slog.Any("error", err))
		os.Exit(1)
	}

	s.Start()
	logger.Info("scheduler started", slog.String("timezone", cfg.Scheduler.Timezone))

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down scheduler")
	<-s.Stop().Done()
	logger.Info("scheduler stopped")
}

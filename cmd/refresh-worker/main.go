// refresh-worker consumes transaction change events and keeps a warm
// snapshot, logging aggregate figures after every change. Useful when the
// main server runs elsewhere and another process wants an up-to-date view
// without polling the spreadsheet.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ledgerly/internal/amqp"
	"ledgerly/internal/backend"
	"ledgerly/internal/config"
	"ledgerly/internal/core"
	"ledgerly/internal/service"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting refresh-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the refresh worker")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	factory := backend.NewFactory(logger)
	result, err := factory.CreateBackend(ctx, cfg.BackendConfig())
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup error", "error", err)
			}
		}()
	}

	bus, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer bus.Close()

	tracker := service.NewTracker(result.Backend, service.WithRefreshDelay(cfg.RefreshDelay))
	if err := tracker.Refresh(ctx); err != nil {
		logger.Warn("Initial snapshot refresh failed", "error", err)
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	err = bus.ConsumeChanges(ctx, func(msg *amqp.ChangeMessage) error {
		logger.Info("Change event received", "kind", msg.Kind, "op", msg.Op, "id", msg.ID)

		rctx, rcancel := context.WithTimeout(ctx, 30*time.Second)
		defer rcancel()
		if err := tracker.Refresh(rctx); err != nil {
			return err
		}

		snap := tracker.Snapshot()
		logger.Info("Snapshot updated",
			"total_expense", core.TotalOf(snap.Expenses),
			"total_income", core.TotalOf(snap.Incomes),
			"transactions", len(snap.Expenses)+len(snap.Incomes))
		return nil
	})
	if err != nil && ctx.Err() == nil {
		logger.Error("Consumer stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}

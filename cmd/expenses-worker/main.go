// The expenses-worker consumes expense mutation events and writes an
// audit trail to the log. It shares the server's configuration.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"expenses/internal/amqp"
	"expenses/internal/config"
	applog "expenses/internal/log"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting expenses-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = amqpClient.ConsumeEvents(ctx, func(event *amqp.ExpenseEvent) error {
		switch event.Type {
		case amqp.EventExpenseSaved:
			logger.Info("Expense saved",
				applog.FieldComponent, applog.ComponentWorker,
				"id", event.ID,
				applog.FieldOwner, event.Owner,
				applog.FieldAmountCents, event.AmountCents,
				applog.FieldCategory, event.Category,
				"date", event.Date)
		case amqp.EventExpenseDeleted:
			logger.Info("Expense deleted",
				applog.FieldComponent, applog.ComponentWorker,
				"id", event.ID,
				applog.FieldOwner, event.Owner)
		default:
			logger.Warn("Unknown event type", "type", event.Type, "id", event.ID)
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Event consumption failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}

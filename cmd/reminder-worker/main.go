package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/mmynk/splitledger/internal/amqp"
	"github.com/mmynk/splitledger/internal/config"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/reminder"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
	"github.com/mmynk/splitledger/pkg/logging"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	slog.Info("Starting reminder-worker")

	if err := cfg.Validate(); err != nil {
		slog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	loc, err := cfg.Location()
	if err != nil {
		slog.Error("Failed to load timezone", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err, "path", cfg.DBPath)
		os.Exit(1)
	}
	defer store.Close()

	var publisher reminder.Publisher = reminder.LogPublisher{}
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			slog.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		publisher = client
		slog.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		slog.Info("AMQP disabled, reminders will only be logged")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var opts []reminder.Option
	// A one-shot run exits before anything could scrape it.
	if cfg.MetricsEnabled && !cfg.ReminderRunOnce {
		m := metrics.New()
		opts = append(opts, reminder.WithMetrics(m))

		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.MetricsPort))
		if err != nil {
			slog.Error("Failed to open metrics listener", "error", err, "port", cfg.MetricsPort)
			os.Exit(1)
		}
		go func() {
			if err := m.Serve(ctx, ln); err != nil {
				slog.Error("Metrics server failed", "error", err)
			}
		}()
		slog.Info("Serving metrics", "address", ln.Addr().String())
	}
	job := reminder.NewJob(ledger.New(store, ledger.WithLocation(loc)), publisher, opts...)

	if cfg.ReminderRunOnce {
		res, err := job.RunOnce(ctx)
		if err != nil {
			slog.Error("Reminder run failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Reminder run complete", "debtors", res.Debtors, "sent", res.Sent, "failed", res.Failed)
		return
	}

	slog.Info("Reminder job scheduled", "interval", cfg.ReminderInterval)
	if err := job.Run(ctx, cfg.ReminderInterval); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Reminder job stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("Reminder-worker shutdown complete")
}

// Command tally-worker consumes export messages and mirrors transactions
// to a Google Sheets spreadsheet.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"tally/internal/amqp"
	blobsqlite "tally/internal/blob/sqlite"
	"tally/internal/config"
	"tally/internal/ledger"
	"tally/internal/log"
	sheetsgoogle "tally/internal/sheets/google"
	"tally/internal/worker"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tally-worker: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.AMQPURL == "" {
		return errors.New("AMQP_URL is required for the export worker")
	}
	if cfg.DataBackend != "sqlite" {
		// The worker reads the same database the server writes.
		return fmt.Errorf("export worker requires the sqlite backend, got %q", cfg.DataBackend)
	}

	logConfig := log.DefaultConfig()
	logConfig.Component = log.ComponentWorker
	logger := log.New(logConfig)
	log.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	blobs, err := blobsqlite.Open(cfg.SQLiteDBPath)
	if err != nil {
		return fmt.Errorf("open blob store: %w", err)
	}
	defer blobs.Close()

	sheetsClient, err := sheetsgoogle.NewFromEnv(ctx)
	if err != nil {
		return fmt.Errorf("sheets client: %w", err)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return fmt.Errorf("connect AMQP: %w", err)
	}
	defer amqpClient.Close()

	syncWorker := worker.NewSyncWorker(ledger.NewStore(blobs), sheetsClient, sheetsClient)

	logger.InfoContext(ctx, "Export worker started", "queue", cfg.AMQPQueue)
	if err := amqpClient.Consume(ctx, syncWorker.HandleMessage); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("consume: %w", err)
	}

	logger.Info("Export worker stopped")
	return nil
}

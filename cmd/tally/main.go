// Command tally runs the personal finance tracker's JSON API server.
package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"tally/internal/amqp"
	"tally/internal/auth"
	"tally/internal/blob"
	blobmemory "tally/internal/blob/memory"
	blobsqlite "tally/internal/blob/sqlite"
	"tally/internal/config"
	"tally/internal/http"
	"tally/internal/ledger"
	"tally/internal/log"
	"tally/internal/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tally: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Best-effort: a missing .env file is fine.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	blobs, cleanup, err := openBlobStore(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.InfoContext(ctx, "Storage ready", "backend", cfg.DataBackend)

	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			// The local store is the source of truth; run without export.
			logger.WarnContext(ctx, "AMQP unavailable, export pipeline disabled", log.FieldError, err.Error())
			amqpClient = nil
		} else {
			defer amqpClient.Close()
			logger.InfoContext(ctx, "AMQP connected", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	ledgerStore := ledger.NewStore(blobs)
	srv := http.NewServer(http.Options{
		Addr:         ":" + cfg.Port,
		Auth:         auth.NewStore(blobs),
		Ledger:       ledgerStore,
		Transactions: services.NewTransactionService(ledgerStore, amqpClient),
		Logger:       logger.WithComponent(log.ComponentHTTP),
		CacheSize:    cfg.CacheSize,
		CacheTTL:     cfg.CacheTTL,
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoContext(ctx, "Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openBlobStore(cfg *config.Config) (blob.Store, func(), error) {
	switch cfg.DataBackend {
	case "memory":
		return blobmemory.New(), func() {}, nil
	default:
		store, err := blobsqlite.Open(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open blob store: %w", err)
		}
		return store, func() { store.Close() }, nil
	}
}

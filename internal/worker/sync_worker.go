// Package worker exports ledger transactions to a spreadsheet, driven by
// AMQP messages.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"tally/internal/amqp"
	"tally/internal/ledger"
	"tally/internal/sheets"
)

type SyncWorker struct {
	ledger   *ledger.Store
	appender sheets.TransactionAppender
	remover  sheets.TransactionRemover
}

func NewSyncWorker(ledger *ledger.Store, appender sheets.TransactionAppender, remover sheets.TransactionRemover) *SyncWorker {
	return &SyncWorker{
		ledger:   ledger,
		appender: appender,
		remover:  remover,
	}
}

// HandleMessage processes one export instruction. It returns an error only
// for retryable failures; a transaction that no longer exists is dropped.
func (w *SyncWorker) HandleMessage(ctx context.Context, msg *amqp.Message) error {
	switch msg.Op {
	case amqp.OpSync:
		return w.sync(ctx, msg.TransactionID)
	case amqp.OpDelete:
		return w.remove(ctx, msg.TransactionID)
	default:
		slog.WarnContext(ctx, "Unknown export op, dropping message", "op", msg.Op)
		return nil
	}
}

func (w *SyncWorker) sync(ctx context.Context, id string) error {
	t, ok := w.ledger.Get(ctx, id)
	if !ok {
		// Deleted between publish and consume; nothing left to export.
		slog.WarnContext(ctx, "Transaction vanished before export, dropping message",
			"transaction_id", id)
		return nil
	}

	// Drop any previously exported row first so an edit replaces instead
	// of duplicating.
	if err := w.remover.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove stale row: %w", err)
	}

	ref, err := w.appender.Append(ctx, t)
	if err != nil {
		return fmt.Errorf("append row: %w", err)
	}

	slog.InfoContext(ctx, "Transaction synced",
		"transaction_id", id,
		"sheets_ref", ref)
	return nil
}

func (w *SyncWorker) remove(ctx context.Context, id string) error {
	if err := w.remover.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove row: %w", err)
	}
	return nil
}

// Package services orchestrates store writes with the async export
// pipeline.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/ledger"
)

// TransactionService performs ledger mutations and publishes a matching
// export message. Publishing is best-effort: the local write is the source
// of truth and a broker failure never fails the request.
type TransactionService struct {
	ledger     *ledger.Store
	amqpClient *amqp.Client
}

// NewTransactionService creates the service. amqpClient may be nil, in
// which case export messages are skipped.
func NewTransactionService(ledger *ledger.Store, amqpClient *amqp.Client) *TransactionService {
	return &TransactionService{
		ledger:     ledger,
		amqpClient: amqpClient,
	}
}

func (s *TransactionService) Create(ctx context.Context, t core.Transaction) error {
	if err := s.ledger.Create(ctx, t); err != nil {
		return fmt.Errorf("save transaction: %w", err)
	}
	s.publish(ctx, amqp.OpSync, t.ID)
	return nil
}

func (s *TransactionService) Update(ctx context.Context, t core.Transaction) error {
	if err := s.ledger.Update(ctx, t); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	s.publish(ctx, amqp.OpSync, t.ID)
	return nil
}

func (s *TransactionService) Delete(ctx context.Context, id string) error {
	if err := s.ledger.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	s.publish(ctx, amqp.OpDelete, id)
	return nil
}

func (s *TransactionService) publish(ctx context.Context, op amqp.Op, id string) {
	if s.amqpClient == nil {
		slog.DebugContext(ctx, "AMQP client not available, skipping export message",
			"op", op, "transaction_id", id)
		return
	}
	if err := s.amqpClient.Publish(ctx, op, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish export message",
			"op", op, "transaction_id", id, "error", err)
	}
}

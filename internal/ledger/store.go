// Package ledger owns the transaction collection for all users,
// scoped by user id on read.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"tally/internal/blob"
	"tally/internal/core"
)

// All transactions live intermixed in one blob; userId is the only
// partition key.
const keyTransactions = "transactions"

// Store reads and writes the transaction blob. It performs no validation:
// callers construct transactions through core.NewTransaction.
type Store struct {
	blobs blob.Store
}

func NewStore(blobs blob.Store) *Store {
	return &Store{blobs: blobs}
}

// List returns the transactions belonging to userID, in storage order.
// It never fails: read and parse errors degrade to an empty result.
func (s *Store) List(ctx context.Context, userID string) []core.Transaction {
	var out []core.Transaction
	for _, t := range s.all(ctx) {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out
}

// Get returns the transaction with the given id, regardless of owner.
func (s *Store) Get(ctx context.Context, id string) (core.Transaction, bool) {
	for _, t := range s.all(ctx) {
		if t.ID == id {
			return t, true
		}
	}
	return core.Transaction{}, false
}

// Create appends the transaction to the collection.
func (s *Store) Create(ctx context.Context, t core.Transaction) error {
	err := s.blobs.Mutate(ctx, keyTransactions, func(current []byte) ([]byte, error) {
		transactions := decode(ctx, current)
		transactions = append(transactions, t)
		return json.Marshal(transactions)
	})
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	slog.InfoContext(ctx, "Transaction created",
		"transaction_id", t.ID,
		"user_id", t.UserID,
		"type", t.Type,
		"amount_cents", t.Amount.Cents)
	return nil
}

// Update replaces the transaction with a matching id in place, preserving
// its position. A missing id is a silent no-op: the UI edits entries it
// just listed, so a vanished id means the entry was deleted concurrently
// and there is nothing useful to report.
func (s *Store) Update(ctx context.Context, t core.Transaction) error {
	err := s.blobs.Mutate(ctx, keyTransactions, func(current []byte) ([]byte, error) {
		transactions := decode(ctx, current)
		for i := range transactions {
			if transactions[i].ID == t.ID {
				transactions[i] = t
				break
			}
		}
		return json.Marshal(transactions)
	})
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return nil
}

// Delete removes the transaction with the given id. A missing id is a
// silent no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	err := s.blobs.Mutate(ctx, keyTransactions, func(current []byte) ([]byte, error) {
		transactions := decode(ctx, current)
		kept := transactions[:0]
		for _, t := range transactions {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		return json.Marshal(kept)
	})
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

func (s *Store) all(ctx context.Context) []core.Transaction {
	data, err := s.blobs.Get(ctx, keyTransactions)
	if err != nil {
		slog.WarnContext(ctx, "Transaction read failed, treating as empty", "error", err)
		return nil
	}
	return decode(ctx, data)
}

func decode(ctx context.Context, data []byte) []core.Transaction {
	if data == nil {
		return nil
	}
	var transactions []core.Transaction
	if err := json.Unmarshal(data, &transactions); err != nil {
		slog.WarnContext(ctx, "Transaction blob corrupted, treating as empty", "error", err)
		return nil
	}
	return transactions
}

// Package sheets defines the ports for exporting transactions to an
// external spreadsheet.
package sheets

import (
	"context"

	"tally/internal/core"
)

type (
	// TransactionAppender writes one transaction as a new row.
	TransactionAppender interface {
		Append(ctx context.Context, t core.Transaction) (rowRef string, err error)
	}

	// TransactionRemover deletes the row holding the given transaction id.
	TransactionRemover interface {
		Remove(ctx context.Context, transactionID string) error
	}
)

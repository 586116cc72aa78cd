package sheets

import (
	"context"

	"ledgerly/internal/core"
)

// Ports for outbound spreadsheet adapters. The backend assigns IDs at
// append time and performs full-row replaces on update; no transactional
// guarantees exist beyond what the spreadsheet gives for free.
type (
	TransactionLister interface {
		// ListTransactions returns all rows of the given kind, already
		// normalized, in sheet order.
		ListTransactions(ctx context.Context, kind core.Kind) ([]core.Transaction, error)
	}

	TransactionAppender interface {
		// AppendTransaction stores a new row and returns the assigned id.
		// The ID field of the input is ignored.
		AppendTransaction(ctx context.Context, t core.Transaction) (id string, err error)
	}

	TransactionUpdater interface {
		// UpdateTransaction replaces the row with the matching id. An
		// absent id is a silent no-op.
		UpdateTransaction(ctx context.Context, t core.Transaction) error
	}

	TransactionDeleter interface {
		// DeleteTransaction removes the row with the matching id. An
		// absent id is a silent no-op.
		DeleteTransaction(ctx context.Context, kind core.Kind, id string) error
	}

	CategoryLister interface {
		// ListCategories returns both category sets.
		ListCategories(ctx context.Context) (core.Catalog, error)
	}

	CategoryAppender interface {
		AppendCategory(ctx context.Context, kind core.Kind, cat core.Category) error
	}

	CategoryDeleter interface {
		// DeleteCategory removes entries matching name and kind. An absent
		// name is a silent no-op.
		DeleteCategory(ctx context.Context, kind core.Kind, name string) error
	}
)

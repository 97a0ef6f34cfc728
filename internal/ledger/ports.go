// Package ledger implements the expense record management engine: id
// allocation, the CRUD lifecycle with per-owner isolation, and the pure
// filter/sort/pagination helpers composed over record collections.
package ledger

import (
	"context"

	"expenses/internal/core"
)

// RecordStore is the durable storage collaborator. Scoped operations touch
// a single owner's records; the unscoped variants span all owners. A read
// miss returns (nil, nil), never an error.
type RecordStore interface {
	FindAll(ctx context.Context) ([]core.Expense, error)
	FindAllByOwner(ctx context.Context, owner int64) ([]core.Expense, error)
	FindByID(ctx context.Context, id int64) (*core.Expense, error)
	FindByIDAndOwner(ctx context.Context, id, owner int64) (*core.Expense, error)
	Insert(ctx context.Context, e core.Expense) error
	Update(ctx context.Context, e core.Expense) error
	DeleteByID(ctx context.Context, id int64) error
	DeleteByIDAndOwner(ctx context.Context, id, owner int64) error
	DeleteAll(ctx context.Context) error
	DeleteAllByOwner(ctx context.Context, owner int64) error
	// FindPage returns records ordered by date descending, then id descending.
	FindPage(ctx context.Context, page, size int) ([]core.Expense, error)
	FindPageByOwner(ctx context.Context, page, size int, owner int64) ([]core.Expense, error)
	Count(ctx context.Context) (int64, error)
	CountByOwner(ctx context.Context, owner int64) (int64, error)
}

// EventPublisher receives best-effort notifications after successful
// mutations. Publish failures never fail the originating operation.
type EventPublisher interface {
	PublishExpenseSaved(ctx context.Context, e core.Expense) error
	PublishExpenseDeleted(ctx context.Context, id, owner int64) error
}

package repository

import (
	"context"

	"github.com/maxviazov/bookstore-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager scopes a unit of work to one read-only transaction: the callback
// sees a single consistent snapshot and any write is rejected.
type TxManager interface {
	WithinReadOnlyTx(ctx context.Context, fn TxFunc) error
}

// CategoryRepository declares read access to product categories.
// GetByID returns ErrNotFound when the id is unknown.
type CategoryRepository interface {
	GetByID(ctx context.Context, id int64) (model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
}

// ProductRepository declares read access to products.
type ProductRepository interface {
	// ListByCategory returns one page of the products whose category is categoryID.
	ListByCategory(ctx context.Context, categoryID int64, p PageRequest) (PageResult[model.Product], error)
}

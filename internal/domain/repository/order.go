package repository

import (
	"context"

	"github.com/omarsel/flashmart/internal/domain/model"
)

// OrderRepository describes persistence operations for the purchase ledger.
// Orders are insert-only; the single mutation allowed is admin deletion.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	Delete(ctx context.Context, id int64) error
	Report(ctx context.Context) (*model.SalesReport, error)
}

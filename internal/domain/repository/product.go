package repository

import (
	"context"

	"github.com/omarsel/flashmart/internal/domain/model"
)

// ProductRepository describes persistence operations for catalog items.
type ProductRepository interface {
	Create(ctx context.Context, name string, price float64, imageRef string) (*model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	ListAvailable(ctx context.Context) ([]model.Product, error)
	ListAll(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, id int64, upd model.ProductUpdate) (*model.Product, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

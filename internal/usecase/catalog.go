package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/omarsel/flashmart/internal/domain/errors"
	"github.com/omarsel/flashmart/internal/domain/model"
	"github.com/omarsel/flashmart/internal/domain/repository"
)

// CatalogUseCase encapsulates catalog browsing and admin product management.
type CatalogUseCase struct {
	products repository.ProductRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products}
}

// ListAvailable returns purchasable products ordered by id ascending.
func (u *CatalogUseCase) ListAvailable(ctx context.Context) ([]model.Product, error) {
	return u.products.ListAvailable(ctx)
}

// ListAll returns the full catalog for the admin view, unavailable items included.
func (u *CatalogUseCase) ListAll(ctx context.Context) ([]model.Product, error) {
	return u.products.ListAll(ctx)
}

// Add creates a product. Name and a positive price are required; the image
// reference falls back to the placeholder when omitted.
func (u *CatalogUseCase) Add(ctx context.Context, name string, price float64, imageRef string) (*model.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainErrors.ValidationError{Field: "name", Reason: "required"}
	}
	if price <= 0 {
		return nil, domainErrors.ValidationError{Field: "price", Reason: "must be positive"}
	}
	imageRef = strings.TrimSpace(imageRef)
	if imageRef == "" {
		imageRef = model.PlaceholderImage
	}
	return u.products.Create(ctx, name, price, imageRef)
}

// Update applies a partial edit to a product.
func (u *CatalogUseCase) Update(ctx context.Context, id int64, upd model.ProductUpdate) (*model.Product, error) {
	if upd.Name != nil {
		trimmed := strings.TrimSpace(*upd.Name)
		if trimmed == "" {
			return nil, domainErrors.ValidationError{Field: "name", Reason: "required"}
		}
		upd.Name = &trimmed
	}
	if upd.Price != nil && *upd.Price <= 0 {
		return nil, domainErrors.ValidationError{Field: "price", Reason: "must be positive"}
	}
	return u.products.Update(ctx, id, upd)
}

// Remove deletes a product. Existing orders keep their frozen product
// name and price, so the ledger is unaffected.
func (u *CatalogUseCase) Remove(ctx context.Context, id int64) error {
	return u.products.Delete(ctx, id)
}

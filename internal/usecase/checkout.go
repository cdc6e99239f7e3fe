package usecase

import (
	"context"

	"github.com/google/uuid"

	domainErrors "github.com/omarsel/flashmart/internal/domain/errors"
	"github.com/omarsel/flashmart/internal/domain/model"
	"github.com/omarsel/flashmart/internal/domain/repository"
)

// SubmissionLimiter throttles checkout submissions per identity. The
// returned release function gives the slot back when the write fails.
type SubmissionLimiter interface {
	Acquire(userID int64) (func(), error)
}

// CheckoutUseCase turns a validated checkout submission into exactly one
// order record.
type CheckoutUseCase struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	limiter  SubmissionLimiter
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(products repository.ProductRepository, orders repository.OrderRepository, limiter SubmissionLimiter) *CheckoutUseCase {
	return &CheckoutUseCase{products: products, orders: orders, limiter: limiter}
}

// Submit validates the request, enforces the per-identity checkout interval,
// and inserts one order with the product's name and price frozen at purchase
// time. Validation and rate-limit failures abort before any write.
func (u *CheckoutUseCase) Submit(ctx context.Context, userID int64, req model.CheckoutRequest) (*model.Order, error) {
	req, err := ValidateCheckout(req)
	if err != nil {
		return nil, err
	}

	product, err := u.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.Available {
		return nil, domainErrors.ErrProductUnavailable
	}

	release, err := u.limiter.Acquire(userID)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		Reference:     uuid.New(),
		UserID:        &userID,
		BuyerName:     req.BuyerName,
		ClassLabel:    req.ClassLabel,
		StudentNumber: req.StudentNumber,
		ProductID:     &product.ID,
		ProductName:   product.Name,
		Price:         product.Price,
	}

	created, err := u.orders.Create(ctx, order)
	if err != nil {
		release()
		return nil, err
	}
	return created, nil
}

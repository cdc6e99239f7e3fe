package test

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/omarsel/flashmart/internal/domain/model"
)

// AuthFacadeStub provides controllable behaviour for auth endpoints.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	AnonymousFn    func(context.Context) (int64, string, error)
	ParseFn        func(string) (int64, error)
	IsAdminFn      func(context.Context, int64) (bool, error)
}

// Register delegates to the configured function or issues a fixed token.
func (s AuthFacadeStub) Register(ctx context.Context, email, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, email, password)
	}
	return "token", nil
}

// Authenticate delegates to the configured function or issues a fixed token.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return "token", nil
}

// SignInAnonymously delegates or returns a default identity.
func (s AuthFacadeStub) SignInAnonymously(ctx context.Context) (int64, string, error) {
	if s.AnonymousFn != nil {
		return s.AnonymousFn(ctx)
	}
	return 1, "anonymous-token", nil
}

// ParseToken delegates or accepts every token as user 1.
func (s AuthFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// IsAdmin delegates or denies the grant.
func (s AuthFacadeStub) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	if s.IsAdminFn != nil {
		return s.IsAdminFn(ctx, userID)
	}
	return false, nil
}

// CatalogFacadeStub serves a fixed storefront catalog.
type CatalogFacadeStub struct {
	ListFn func(context.Context) ([]model.Product, error)
}

// AvailableProducts returns the configured catalog or one default item.
func (s CatalogFacadeStub) AvailableProducts(ctx context.Context) ([]model.Product, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return []model.Product{{ID: 1, Name: "Kingston Flashdrive 16GB", Price: 120, ImageRef: "image1.jpg", Available: true}}, nil
}

// CheckoutFacadeStub simulates purchase submissions.
type CheckoutFacadeStub struct {
	AnonymousFn func(context.Context) (int64, string, error)
	ValidateFn  func(model.CheckoutRequest) (model.CheckoutRequest, error)
	CheckoutFn  func(context.Context, int64, model.CheckoutRequest) (*model.Order, error)

	mu        sync.Mutex
	Checkouts []int64
}

// SignInAnonymously delegates or returns a default identity.
func (s *CheckoutFacadeStub) SignInAnonymously(ctx context.Context) (int64, string, error) {
	if s.AnonymousFn != nil {
		return s.AnonymousFn(ctx)
	}
	return 1, "anonymous-token", nil
}

// ValidateCheckout delegates or accepts the request unchanged.
func (s *CheckoutFacadeStub) ValidateCheckout(req model.CheckoutRequest) (model.CheckoutRequest, error) {
	if s.ValidateFn != nil {
		return s.ValidateFn(req)
	}
	return req, nil
}

// Checkout records the calling user and returns a completed order.
func (s *CheckoutFacadeStub) Checkout(ctx context.Context, userID int64, req model.CheckoutRequest) (*model.Order, error) {
	s.mu.Lock()
	s.Checkouts = append(s.Checkouts, userID)
	s.mu.Unlock()
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, userID, req)
	}
	return &model.Order{
		ID:            1,
		Reference:     uuid.MustParse("2b4f8f1e-3f63-4f16-9c21-0a5f71f2d9aa"),
		UserID:        &userID,
		BuyerName:     req.BuyerName,
		ClassLabel:    req.ClassLabel,
		StudentNumber: req.StudentNumber,
		ProductName:   "Kingston Flashdrive 16GB",
		Price:         120,
		CreatedAt:     time.Unix(0, 0).UTC(),
	}, nil
}

// ProductAdminFacadeStub simulates catalog management.
type ProductAdminFacadeStub struct {
	ListFn   func(context.Context) ([]model.Product, error)
	AddFn    func(context.Context, string, float64, string) (*model.Product, error)
	UpdateFn func(context.Context, int64, model.ProductUpdate) (*model.Product, error)
	RemoveFn func(context.Context, int64) error
}

// AllProducts returns the configured catalog or one default item.
func (s ProductAdminFacadeStub) AllProducts(ctx context.Context) ([]model.Product, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return []model.Product{{ID: 1, Name: "Kingston Flashdrive 16GB", Price: 120, ImageRef: "image1.jpg", Available: true}}, nil
}

// AddProduct delegates or echoes the new product with id 1.
func (s ProductAdminFacadeStub) AddProduct(ctx context.Context, name string, price float64, imageRef string) (*model.Product, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, name, price, imageRef)
	}
	return &model.Product{ID: 1, Name: name, Price: price, ImageRef: imageRef, Available: true}, nil
}

// UpdateProduct delegates or returns an updated product.
func (s ProductAdminFacadeStub) UpdateProduct(ctx context.Context, id int64, upd model.ProductUpdate) (*model.Product, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, upd)
	}
	p := &model.Product{ID: id, Name: "Kingston Flashdrive 16GB", Price: 120, ImageRef: "image1.jpg", Available: true}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.ImageRef != nil {
		p.ImageRef = *upd.ImageRef
	}
	if upd.Available != nil {
		p.Available = *upd.Available
	}
	return p, nil
}

// RemoveProduct executes the configured handler.
func (s ProductAdminFacadeStub) RemoveProduct(ctx context.Context, id int64) error {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, id)
	}
	return nil
}

// LedgerFacadeStub simulates the purchase ledger.
type LedgerFacadeStub struct {
	OrdersFn func(context.Context) ([]model.Order, error)
	ReportFn func(context.Context) (*model.SalesReport, error)
	RemoveFn func(context.Context, int64) error
	ExportFn func(context.Context, io.Writer) (int, error)

	Removed []int64
}

// Orders returns the configured ledger or one default entry.
func (s *LedgerFacadeStub) Orders(ctx context.Context) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx)
	}
	userID := int64(1)
	return []model.Order{{
		ID:            1,
		Reference:     uuid.MustParse("2b4f8f1e-3f63-4f16-9c21-0a5f71f2d9aa"),
		UserID:        &userID,
		BuyerName:     "Jane Doe",
		ClassLabel:    "10A",
		StudentNumber: "23",
		ProductName:   "Kingston Flashdrive 16GB",
		Price:         120,
		CreatedAt:     time.Unix(0, 0).UTC(),
	}}, nil
}

// SalesReport returns the configured aggregate or a default one.
func (s *LedgerFacadeStub) SalesReport(ctx context.Context) (*model.SalesReport, error) {
	if s.ReportFn != nil {
		return s.ReportFn(ctx)
	}
	return &model.SalesReport{
		TotalRevenue:   120,
		TotalPurchases: 1,
		PerProduct:     []model.ProductSales{{ProductName: "Kingston Flashdrive 16GB", Count: 1}},
	}, nil
}

// RemoveOrder records the removed id.
func (s *LedgerFacadeStub) RemoveOrder(ctx context.Context, id int64) error {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, id)
	}
	s.Removed = append(s.Removed, id)
	return nil
}

// ExportOrdersCSV delegates or writes a minimal document.
func (s *LedgerFacadeStub) ExportOrdersCSV(ctx context.Context, w io.Writer) (int, error) {
	if s.ExportFn != nil {
		return s.ExportFn(ctx, w)
	}
	if _, err := io.WriteString(w, "Buyer Name,Class,Student Number,Product Name,Price,Date/Time\n"); err != nil {
		return 0, err
	}
	return 0, nil
}

// StoreFacadeStub aggregates the per-area stubs behind the full facade.
type StoreFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	*CheckoutFacadeStub
	ProductAdminFacadeStub
	*LedgerFacadeStub
}

// NewStoreFacadeStub constructs an aggregate stub with usable defaults.
func NewStoreFacadeStub() *StoreFacadeStub {
	return &StoreFacadeStub{
		CheckoutFacadeStub: &CheckoutFacadeStub{},
		LedgerFacadeStub:   &LedgerFacadeStub{},
	}
}

// SignInAnonymously resolves the embedding ambiguity in favour of the
// checkout stub so handler tests observe a single identity source.
func (s *StoreFacadeStub) SignInAnonymously(ctx context.Context) (int64, string, error) {
	return s.CheckoutFacadeStub.SignInAnonymously(ctx)
}

// PurgerStub records anonymous account purge invocations for worker tests.
type PurgerStub struct {
	PurgeFn func(context.Context, time.Time) (int64, error)

	mu    sync.Mutex
	Calls []time.Time
	Count int64
	Err   error
}

// PurgeAnonymousAccounts records the cutoff and returns configured results.
func (s *PurgerStub) PurgeAnonymousAccounts(ctx context.Context, olderThan time.Time) (int64, error) {
	s.mu.Lock()
	s.Calls = append(s.Calls, olderThan)
	s.mu.Unlock()
	if s.PurgeFn != nil {
		return s.PurgeFn(ctx, olderThan)
	}
	return s.Count, s.Err
}

// CallCount returns the number of purge invocations observed so far.
func (s *PurgerStub) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}

// HealthCheckerStub reports a configurable health state.
type HealthCheckerStub struct {
	Err error
}

// HealthCheck returns the configured error.
func (s HealthCheckerStub) HealthCheck(ctx context.Context) error {
	return s.Err
}

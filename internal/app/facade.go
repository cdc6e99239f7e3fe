package app

import (
	"context"
	"io"
	"time"

	"github.com/omarsel/flashmart/internal/domain/model"
	"github.com/omarsel/flashmart/internal/usecase"
)

// StoreFacade aggregates the storefront and admin use cases behind one
// surface consumed by HTTP handlers and the cleanup worker.
type StoreFacade struct {
	auth     *usecase.AuthUseCase
	catalog  *usecase.CatalogUseCase
	checkout *usecase.CheckoutUseCase
	ledger   *usecase.LedgerUseCase
}

// NewStoreFacade constructs StoreFacade.
func NewStoreFacade(auth *usecase.AuthUseCase, catalog *usecase.CatalogUseCase, checkout *usecase.CheckoutUseCase, ledger *usecase.LedgerUseCase) *StoreFacade {
	return &StoreFacade{auth: auth, catalog: catalog, checkout: checkout, ledger: ledger}
}

func (f *StoreFacade) Register(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, email, password)
	return token, err
}

func (f *StoreFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *StoreFacade) SignInAnonymously(ctx context.Context) (int64, string, error) {
	usr, token, err := f.auth.SignInAnonymously(ctx)
	if err != nil {
		return 0, "", err
	}
	return usr.ID, token, nil
}

func (f *StoreFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *StoreFacade) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return f.auth.IsAdmin(ctx, userID)
}

func (f *StoreFacade) PurgeAnonymousAccounts(ctx context.Context, olderThan time.Time) (int64, error) {
	return f.auth.PurgeAnonymous(ctx, olderThan)
}

func (f *StoreFacade) AvailableProducts(ctx context.Context) ([]model.Product, error) {
	return f.catalog.ListAvailable(ctx)
}

func (f *StoreFacade) AllProducts(ctx context.Context) ([]model.Product, error) {
	return f.catalog.ListAll(ctx)
}

func (f *StoreFacade) AddProduct(ctx context.Context, name string, price float64, imageRef string) (*model.Product, error) {
	return f.catalog.Add(ctx, name, price, imageRef)
}

func (f *StoreFacade) UpdateProduct(ctx context.Context, id int64, upd model.ProductUpdate) (*model.Product, error) {
	return f.catalog.Update(ctx, id, upd)
}

func (f *StoreFacade) RemoveProduct(ctx context.Context, id int64) error {
	return f.catalog.Remove(ctx, id)
}

func (f *StoreFacade) ValidateCheckout(req model.CheckoutRequest) (model.CheckoutRequest, error) {
	return usecase.ValidateCheckout(req)
}

func (f *StoreFacade) Checkout(ctx context.Context, userID int64, req model.CheckoutRequest) (*model.Order, error) {
	return f.checkout.Submit(ctx, userID, req)
}

func (f *StoreFacade) Orders(ctx context.Context) ([]model.Order, error) {
	return f.ledger.List(ctx)
}

func (f *StoreFacade) SalesReport(ctx context.Context) (*model.SalesReport, error) {
	return f.ledger.Report(ctx)
}

func (f *StoreFacade) RemoveOrder(ctx context.Context, id int64) error {
	return f.ledger.Remove(ctx, id)
}

func (f *StoreFacade) ExportOrdersCSV(ctx context.Context, w io.Writer) (int, error) {
	return f.ledger.ExportCSV(ctx, w)
}

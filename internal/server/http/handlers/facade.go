package handlers

import (
	"context"
	"io"

	"github.com/omarsel/flashmart/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	SignInAnonymously(ctx context.Context) (int64, string, error)
	ParseToken(token string) (int64, error)
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// CatalogFacade exposes the public storefront catalog.
type CatalogFacade interface {
	AvailableProducts(ctx context.Context) ([]model.Product, error)
}

// CheckoutFacade turns submissions into orders, creating an anonymous
// identity when the request has no session. Validation is exposed
// separately so the handler can reject a submission before any identity
// is minted or any row is written.
type CheckoutFacade interface {
	SignInAnonymously(ctx context.Context) (int64, string, error)
	ValidateCheckout(req model.CheckoutRequest) (model.CheckoutRequest, error)
	Checkout(ctx context.Context, userID int64, req model.CheckoutRequest) (*model.Order, error)
}

// ProductAdminFacade provides catalog management for admins.
type ProductAdminFacade interface {
	AllProducts(ctx context.Context) ([]model.Product, error)
	AddProduct(ctx context.Context, name string, price float64, imageRef string) (*model.Product, error)
	UpdateProduct(ctx context.Context, id int64, upd model.ProductUpdate) (*model.Product, error)
	RemoveProduct(ctx context.Context, id int64) error
}

// LedgerFacade provides the purchase ledger view for admins.
type LedgerFacade interface {
	Orders(ctx context.Context) ([]model.Order, error)
	SalesReport(ctx context.Context) (*model.SalesReport, error)
	RemoveOrder(ctx context.Context, id int64) error
	ExportOrdersCSV(ctx context.Context, w io.Writer) (int, error)
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	AuthFacade
	CatalogFacade
	CheckoutFacade
	ProductAdminFacade
	LedgerFacade
}

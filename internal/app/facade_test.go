package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	domainErrors "github.com/omarsel/flashmart/internal/domain/errors"
	"github.com/omarsel/flashmart/internal/domain/model"
	testhelpers "github.com/omarsel/flashmart/internal/test"
	"github.com/omarsel/flashmart/internal/usecase"
)

func newFacade() (*StoreFacade, *testhelpers.UserRepositoryStub, *testhelpers.ProductRepositoryStub, *testhelpers.OrderRepositoryStub, *testhelpers.LimiterStub) {
	userRepo := testhelpers.NewUserRepositoryStub()
	strategy := testhelpers.StrategyStub{ParseFn: func(string) (int64, error) { return 99, nil }}
	authUC := usecase.NewAuthUseCase(userRepo, testhelpers.HasherStub{}, strategy)

	productRepo := testhelpers.NewProductRepositoryStub()
	catalogUC := usecase.NewCatalogUseCase(productRepo)

	orderRepo := &testhelpers.OrderRepositoryStub{}
	limiter := &testhelpers.LimiterStub{}
	checkoutUC := usecase.NewCheckoutUseCase(productRepo, orderRepo, limiter)
	ledgerUC := usecase.NewLedgerUseCase(orderRepo)

	facade := NewStoreFacade(authUC, catalogUC, checkoutUC, ledgerUC)
	return facade, userRepo, productRepo, orderRepo, limiter
}

func TestStoreFacadeAuth(t *testing.T) {
	facade, users, _, _, _ := newFacade()
	token, err := facade.Register(context.Background(), "user@example.com", "pass")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	if _, err := users.GetByEmail(context.Background(), "user@example.com"); err != nil {
		t.Fatalf("user not stored: %v", err)
	}

	token, err = facade.Authenticate(context.Background(), "user@example.com", "pass")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	id, err := facade.ParseToken("anything")
	if err != nil {
		t.Fatalf("parse token returned error: %v", err)
	}
	if id != 99 {
		t.Fatalf("expected id 99, got %d", id)
	}

	userID, token, err := facade.SignInAnonymously(context.Background())
	if err != nil || userID == 0 || token != "token" {
		t.Fatalf("unexpected anonymous sign-in: id=%d token=%q err=%v", userID, token, err)
	}

	admin, err := facade.IsAdmin(context.Background(), userID)
	if err != nil || admin {
		t.Fatalf("anonymous identity must not be admin: admin=%v err=%v", admin, err)
	}
}

func TestStoreFacadeCatalog(t *testing.T) {
	facade, _, products, _, _ := newFacade()

	created, err := facade.AddProduct(context.Background(), "Kingston Flashdrive 16GB", 120, "")
	if err != nil {
		t.Fatalf("add returned error: %v", err)
	}
	if created.ImageRef != model.PlaceholderImage {
		t.Fatalf("expected placeholder image, got %q", created.ImageRef)
	}

	available := false
	if _, err := facade.UpdateProduct(context.Background(), created.ID, model.ProductUpdate{Available: &available}); err != nil {
		t.Fatalf("update returned error: %v", err)
	}

	visible, err := facade.AvailableProducts(context.Background())
	if err != nil || len(visible) != 0 {
		t.Fatalf("expected empty storefront, got %v err=%v", visible, err)
	}
	all, err := facade.AllProducts(context.Background())
	if err != nil || len(all) != 1 {
		t.Fatalf("expected full admin catalog, got %v err=%v", all, err)
	}

	if err := facade.RemoveProduct(context.Background(), created.ID); err != nil {
		t.Fatalf("remove returned error: %v", err)
	}
	if _, err := products.GetByID(context.Background(), created.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected product gone, got %v", err)
	}
}

func TestStoreFacadeValidateCheckout(t *testing.T) {
	facade, _, _, _, _ := newFacade()

	req, err := facade.ValidateCheckout(model.CheckoutRequest{ProductID: 1, BuyerName: "  Jane Doe  ", ClassLabel: "10A", StudentNumber: "23"})
	if err != nil {
		t.Fatalf("validate returned error: %v", err)
	}
	if req.BuyerName != "Jane Doe" {
		t.Fatalf("expected trimmed name, got %q", req.BuyerName)
	}

	var violation domainErrors.ValidationError
	if _, err := facade.ValidateCheckout(model.CheckoutRequest{ProductID: 1, BuyerName: "X", ClassLabel: "10A", StudentNumber: "23"}); !errors.As(err, &violation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestStoreFacadeCheckoutAndLedger(t *testing.T) {
	facade, _, products, orders, limiter := newFacade()
	seeded := products.Seed(model.Product{Name: "Kingston Flashdrive 16GB", Price: 120, Available: true})

	order, err := facade.Checkout(context.Background(), 7, model.CheckoutRequest{
		ProductID:     seeded.ID,
		BuyerName:     "Jane Doe",
		ClassLabel:    "10A",
		StudentNumber: "23",
	})
	if err != nil {
		t.Fatalf("checkout returned error: %v", err)
	}
	if order.Price != 120 || order.ProductName != "Kingston Flashdrive 16GB" {
		t.Fatalf("product details not frozen: %+v", order)
	}
	if len(limiter.Acquired) != 1 {
		t.Fatalf("limiter not consulted: %v", limiter.Acquired)
	}

	listed, err := facade.Orders(context.Background())
	if err != nil || len(listed) != 1 {
		t.Fatalf("unexpected ledger: %v err=%v", listed, err)
	}

	report, err := facade.SalesReport(context.Background())
	if err != nil || report.TotalRevenue != 120 || report.TotalPurchases != 1 {
		t.Fatalf("unexpected report: %+v err=%v", report, err)
	}

	var buf strings.Builder
	count, err := facade.ExportOrdersCSV(context.Background(), &buf)
	if err != nil || count != 1 {
		t.Fatalf("unexpected export: count=%d err=%v", count, err)
	}
	if !strings.Contains(buf.String(), "120 EGP") {
		t.Fatalf("unexpected export body %q", buf.String())
	}

	if err := facade.RemoveOrder(context.Background(), order.ID); err != nil {
		t.Fatalf("remove returned error: %v", err)
	}
	if len(orders.Orders) != 0 {
		t.Fatalf("expected empty ledger, got %v", orders.Orders)
	}
}

func TestStoreFacadePurgeAnonymousAccounts(t *testing.T) {
	facade, users, _, _, _ := newFacade()
	users.PurgeCount = 4

	cutoff := time.Now().Add(-30 * 24 * time.Hour)
	removed, err := facade.PurgeAnonymousAccounts(context.Background(), cutoff)
	if err != nil || removed != 4 {
		t.Fatalf("unexpected purge result: removed=%d err=%v", removed, err)
	}
	if len(users.PurgedBefore) != 1 || !users.PurgedBefore[0].Equal(cutoff) {
		t.Fatalf("cutoff not forwarded: %v", users.PurgedBefore)
	}
}

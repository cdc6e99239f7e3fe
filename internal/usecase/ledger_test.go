package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	domainErrors "github.com/omarsel/flashmart/internal/domain/errors"
	"github.com/omarsel/flashmart/internal/domain/model"
	testhelpers "github.com/omarsel/flashmart/internal/test"
)

func seedLedger(t *testing.T, orders *testhelpers.OrderRepositoryStub, entries ...model.Order) {
	t.Helper()
	for i := range entries {
		if _, err := orders.Create(context.Background(), &entries[i]); err != nil {
			t.Fatalf("seed order: %v", err)
		}
	}
}

func TestLedgerUseCaseListNewestFirst(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{}
	seedLedger(t, orders,
		model.Order{BuyerName: "First", ProductName: "Drive", Price: 100},
		model.Order{BuyerName: "Second", ProductName: "Drive", Price: 100},
	)
	uc := NewLedgerUseCase(orders)

	listed, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(listed) != 2 || listed[0].BuyerName != "Second" {
		t.Fatalf("expected newest first, got %+v", listed)
	}
}

func TestLedgerUseCaseReport(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{}
	seedLedger(t, orders,
		model.Order{BuyerName: "A", ProductName: "Kingston Flashdrive 16GB", Price: 120},
		model.Order{BuyerName: "B", ProductName: "Kingston Flashdrive 32GB", Price: 150},
		model.Order{BuyerName: "C", ProductName: "Kingston Flashdrive 16GB", Price: 120},
	)
	uc := NewLedgerUseCase(orders)

	report, err := uc.Report(context.Background())
	if err != nil {
		t.Fatalf("report returned error: %v", err)
	}
	if report.TotalRevenue != 390 || report.TotalPurchases != 3 {
		t.Fatalf("unexpected totals: %+v", report)
	}
	counts := map[string]int{}
	for _, p := range report.PerProduct {
		counts[p.ProductName] = p.Count
	}
	if counts["Kingston Flashdrive 16GB"] != 2 || counts["Kingston Flashdrive 32GB"] != 1 {
		t.Fatalf("unexpected per-product counts: %+v", report.PerProduct)
	}
}

func TestLedgerUseCaseRemove(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{}
	seedLedger(t, orders, model.Order{BuyerName: "A", ProductName: "Drive", Price: 100})
	uc := NewLedgerUseCase(orders)

	if err := uc.Remove(context.Background(), 1); err != nil {
		t.Fatalf("remove returned error: %v", err)
	}
	if err := uc.Remove(context.Background(), 1); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found on second remove, got %v", err)
	}
}

func TestLedgerUseCaseExportCSV(t *testing.T) {
	created := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	orders := &testhelpers.OrderRepositoryStub{}
	seedLedger(t, orders,
		model.Order{BuyerName: "Jane Doe", ClassLabel: "10A", StudentNumber: "23", ProductName: "Kingston Flashdrive 16GB", Price: 120, CreatedAt: created},
		model.Order{BuyerName: "John Smith", ClassLabel: "9B", StudentNumber: "7", ProductName: "Redragon Flashdrive 32GB", Price: 135.5, CreatedAt: created},
	)
	uc := NewLedgerUseCase(orders)

	var buf strings.Builder
	count, err := uc.ExportCSV(context.Background(), &buf)
	if err != nil {
		t.Fatalf("export returned error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 exported orders, got %d", count)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Buyer Name,Class,Student Number,Product Name,Price,Date/Time" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(buf.String(), "120 EGP") || !strings.Contains(buf.String(), "135.5 EGP") {
		t.Fatalf("prices not rendered with unit: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "2026-08-28T10:30:00Z") {
		t.Fatalf("timestamps not rendered as RFC 3339: %q", buf.String())
	}
}

func TestLedgerUseCaseExportCSVEscapesDelimiters(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{}
	seedLedger(t, orders, model.Order{
		BuyerName: `Jane "JJ" Doe`, ClassLabel: "10A", StudentNumber: "23",
		ProductName: "Drive, 16GB", Price: 120,
	})
	uc := NewLedgerUseCase(orders)

	var buf strings.Builder
	if _, err := uc.ExportCSV(context.Background(), &buf); err != nil {
		t.Fatalf("export returned error: %v", err)
	}
	if !strings.Contains(buf.String(), `"Jane ""JJ"" Doe"`) {
		t.Fatalf("quotes not escaped: %q", buf.String())
	}
	if !strings.Contains(buf.String(), `"Drive, 16GB"`) {
		t.Fatalf("comma field not quoted: %q", buf.String())
	}
}

func TestLedgerUseCaseExportCSVEmptyLedger(t *testing.T) {
	uc := NewLedgerUseCase(&testhelpers.OrderRepositoryStub{})

	var buf strings.Builder
	count, err := uc.ExportCSV(context.Background(), &buf)
	if err != nil {
		t.Fatalf("export returned error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected zero exported orders, got %d", count)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected header only, got %q", buf.String())
	}
}

func TestLedgerUseCaseExportCSVRepositoryError(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{Err: fmt.Errorf("db down")}
	uc := NewLedgerUseCase(orders)
	var buf strings.Builder
	if _, err := uc.ExportCSV(context.Background(), &buf); err == nil {
		t.Fatal("expected repository error")
	}
	if buf.Len() != 0 {
		t.Fatalf("no bytes must be written on error, got %q", buf.String())
	}
}

func TestExportFilename(t *testing.T) {
	at := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	if got := ExportFilename(at); got != "purchases_2026-08-28T10:30:00.000Z.csv" {
		t.Fatalf("unexpected filename %q", got)
	}
	shifted := time.Date(2026, 8, 28, 12, 30, 0, 0, time.FixedZone("EET", 2*3600))
	if got := ExportFilename(shifted); got != "purchases_2026-08-28T10:30:00.000Z.csv" {
		t.Fatalf("expected UTC normalization, got %q", got)
	}
}

func TestFormatPrice(t *testing.T) {
	cases := map[float64]string{
		120:   "120 EGP",
		135.5: "135.5 EGP",
		99.99: "99.99 EGP",
	}
	for price, want := range cases {
		if got := FormatPrice(price); got != want {
			t.Fatalf("FormatPrice(%v) = %q, want %q", price, got, want)
		}
	}
}

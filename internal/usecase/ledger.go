package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/omarsel/flashmart/internal/domain/model"
	"github.com/omarsel/flashmart/internal/domain/repository"
)

// csvHeader is the fixed purchase export header.
var csvHeader = []string{"Buyer Name", "Class", "Student Number", "Product Name", "Price", "Date/Time"}

// LedgerUseCase serves the purchase ledger: listing, aggregate stats,
// CSV export, and admin deletion.
type LedgerUseCase struct {
	orders repository.OrderRepository
}

// NewLedgerUseCase constructs LedgerUseCase.
func NewLedgerUseCase(orders repository.OrderRepository) *LedgerUseCase {
	return &LedgerUseCase{orders: orders}
}

// List returns all orders, newest first, with their frozen product name and price.
func (u *LedgerUseCase) List(ctx context.Context) ([]model.Order, error) {
	return u.orders.List(ctx)
}

// Report aggregates total revenue, purchase count, and per-product sale counts.
func (u *LedgerUseCase) Report(ctx context.Context) (*model.SalesReport, error) {
	return u.orders.Report(ctx)
}

// Remove deletes one order from the ledger.
func (u *LedgerUseCase) Remove(ctx context.Context, id int64) error {
	return u.orders.Delete(ctx, id)
}

// ExportCSV writes the ledger as RFC 4180 CSV: one header row plus one row
// per order, the price column formatted as "<amount> EGP". Fields containing
// delimiters or quotes are escaped by the encoder. Returns the number of
// exported orders.
func (u *LedgerUseCase) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	orders, err := u.orders.List(ctx)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return 0, err
	}
	for _, o := range orders {
		row := []string{
			o.BuyerName,
			o.ClassLabel,
			o.StudentNumber,
			o.ProductName,
			FormatPrice(o.Price),
			o.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, err
	}
	return len(orders), nil
}

// ExportFilename builds the download name for a CSV export taken at the
// given moment, e.g. "purchases_2026-08-28T10:30:00.000Z.csv".
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("purchases_%s.csv", now.UTC().Format("2006-01-02T15:04:05.000Z"))
}

// FormatPrice renders a price with the EGP unit, without trailing zeros.
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64) + " EGP"
}

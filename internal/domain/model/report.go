package model

// ProductSales counts purchases per product, matched by frozen product name.
type ProductSales struct {
	ProductName string
	Count       int
}

// SalesReport aggregates the purchase ledger for the admin dashboard.
type SalesReport struct {
	TotalRevenue   float64
	TotalPurchases int
	PerProduct     []ProductSales
}

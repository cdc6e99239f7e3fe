package dto

import "time"

// OrderResponse represents one purchase ledger entry in the admin view.
type OrderResponse struct {
	ID            int64     `json:"id"`
	Reference     string    `json:"reference"`
	BuyerName     string    `json:"buyer_name"`
	ClassLabel    string    `json:"class_label"`
	StudentNumber string    `json:"student_number"`
	ProductName   string    `json:"product_name"`
	Price         float64   `json:"price"`
	CreatedAt     time.Time `json:"created_at"`
}

// ProductSalesResponse counts sales for one product.
type ProductSalesResponse struct {
	ProductName string `json:"product_name"`
	Count       int    `json:"count"`
}

// ReportResponse aggregates the ledger for the admin dashboard.
type ReportResponse struct {
	TotalRevenue   float64                `json:"total_revenue"`
	TotalPurchases int                    `json:"total_purchases"`
	PerProduct     []ProductSalesResponse `json:"per_product"`
}

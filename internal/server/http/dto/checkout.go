package dto

import "time"

// CheckoutRequest describes one checkout submission.
type CheckoutRequest struct {
	ProductID     int64  `json:"product_id"`
	BuyerName     string `json:"buyer_name"`
	ClassLabel    string `json:"class_label"`
	StudentNumber string `json:"student_number"`
}

// CheckoutResponse confirms a completed purchase.
type CheckoutResponse struct {
	Reference   string    `json:"reference"`
	ProductName string    `json:"product_name"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

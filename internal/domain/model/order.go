package model

import (
	"time"

	"github.com/google/uuid"
)

// Order is an immutable record of one completed checkout.
//
// ProductName and Price are frozen at purchase time, so the ledger keeps
// reporting the historical amount even after the product is edited or
// deleted. UserID and ProductID are pointers because account cleanup and
// product deletion must never cascade into the ledger.
type Order struct {
	ID            int64
	Reference     uuid.UUID
	UserID        *int64
	BuyerName     string
	ClassLabel    string
	StudentNumber string
	ProductID     *int64
	ProductName   string
	Price         float64
	CreatedAt     time.Time
}

// CheckoutRequest is the validated input of one checkout submission.
type CheckoutRequest struct {
	ProductID     int64
	BuyerName     string
	ClassLabel    string
	StudentNumber string
}

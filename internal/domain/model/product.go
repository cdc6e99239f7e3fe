package model

import "time"

// PlaceholderImage is used when a product is created without an image reference.
const PlaceholderImage = "placeholder.jpg"

// Product is a catalog item offered for sale.
type Product struct {
	ID        int64
	Name      string
	Price     float64
	ImageRef  string
	Available bool
	CreatedAt time.Time
}

// ProductUpdate carries optional fields for a partial product edit.
// Nil fields are left unchanged.
type ProductUpdate struct {
	Name      *string
	Price     *float64
	ImageRef  *string
	Available *bool
}

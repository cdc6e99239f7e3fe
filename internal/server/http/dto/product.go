package dto

// ProductResponse represents one catalog item.
type ProductResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageRef  string  `json:"image"`
	Available bool    `json:"available"`
}

// ProductCreateRequest describes admin product creation payload.
type ProductCreateRequest struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageRef string  `json:"image"`
}

// ProductUpdateRequest describes a partial product edit. Omitted fields
// are left unchanged.
type ProductUpdateRequest struct {
	Name      *string  `json:"name"`
	Price     *float64 `json:"price"`
	ImageRef  *string  `json:"image"`
	Available *bool    `json:"available"`
}

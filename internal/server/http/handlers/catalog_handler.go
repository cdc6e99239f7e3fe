package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omarsel/flashmart/internal/domain/model"
	"github.com/omarsel/flashmart/internal/server/http/dto"
)

// CatalogHandler serves the public storefront catalog.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// List handles GET /api/products. A store failure yields a transient
// notice; the client renders an empty catalog.
func (h *CatalogHandler) List(c *gin.Context) {
	products, err := h.facade.AvailableProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "catalog temporarily unavailable"})
		return
	}

	response := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, toProductResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

func toProductResponse(p model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImageRef:  p.ImageRef,
		Available: p.Available,
	}
}

package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/omarsel/flashmart/internal/domain/errors"
	"github.com/omarsel/flashmart/internal/domain/model"
	"github.com/omarsel/flashmart/internal/server/http/dto"
	"github.com/omarsel/flashmart/internal/usecase"
)

// AdminHandler manages product CRUD and the purchase ledger.
type AdminHandler struct {
	products ProductAdminFacade
	ledger   LedgerFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(products ProductAdminFacade, ledger LedgerFacade) *AdminHandler {
	return &AdminHandler{products: products, ledger: ledger}
}

// ListProducts handles GET /api/admin/products.
func (h *AdminHandler) ListProducts(c *gin.Context) {
	products, err := h.products.AllProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "could not load products"})
		return
	}

	response := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, toProductResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

// AddProduct handles POST /api/admin/products.
func (h *AdminHandler) AddProduct(c *gin.Context) {
	var req dto.ProductCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	product, err := h.products.AddProduct(c.Request.Context(), req.Name, req.Price, req.ImageRef)
	if err != nil {
		h.writeProductError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResponse(*product))
}

// UpdateProduct handles PUT /api/admin/products/:id.
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.ProductUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	product, err := h.products.UpdateProduct(c.Request.Context(), id, model.ProductUpdate{
		Name:      req.Name,
		Price:     req.Price,
		ImageRef:  req.ImageRef,
		Available: req.Available,
	})
	if err != nil {
		h.writeProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

// DeleteProduct handles DELETE /api/admin/products/:id. Existing orders
// keep their frozen product reference.
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.products.RemoveProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListOrders handles GET /api/admin/orders.
func (h *AdminHandler) ListOrders(c *gin.Context) {
	orders, err := h.ledger.Orders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "could not load purchases"})
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, dto.OrderResponse{
			ID:            o.ID,
			Reference:     o.Reference.String(),
			BuyerName:     o.BuyerName,
			ClassLabel:    o.ClassLabel,
			StudentNumber: o.StudentNumber,
			ProductName:   o.ProductName,
			Price:         o.Price,
			CreatedAt:     o.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}

// OrderStats handles GET /api/admin/orders/stats.
func (h *AdminHandler) OrderStats(c *gin.Context) {
	report, err := h.ledger.SalesReport(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "could not compute stats"})
		return
	}

	response := dto.ReportResponse{
		TotalRevenue:   report.TotalRevenue,
		TotalPurchases: report.TotalPurchases,
		PerProduct:     make([]dto.ProductSalesResponse, 0, len(report.PerProduct)),
	}
	for _, ps := range report.PerProduct {
		response.PerProduct = append(response.PerProduct, dto.ProductSalesResponse{
			ProductName: ps.ProductName,
			Count:       ps.Count,
		})
	}
	c.JSON(http.StatusOK, response)
}

// ExportOrders handles GET /api/admin/orders/export, streaming the ledger
// as a CSV attachment.
func (h *AdminHandler) ExportOrders(c *gin.Context) {
	var buf bytes.Buffer
	if _, err := h.ledger.ExportOrdersCSV(c.Request.Context(), &buf); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "export failed"})
		return
	}

	filename := usecase.ExportFilename(time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// DeleteOrder handles DELETE /api/admin/orders/:id. The destructive call
// requires explicit confirmation.
func (h *AdminHandler) DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "deletion requires confirm=true"})
		return
	}

	if err := h.ledger.RemoveOrder(c.Request.Context(), id); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) writeProductError(c *gin.Context, err error) {
	var validationErr domainErrors.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: validationErr.Error()})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	default:
		c.Status(http.StatusInternalServerError)
	}
}

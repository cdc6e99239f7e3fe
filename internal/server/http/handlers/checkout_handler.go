package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/omarsel/flashmart/internal/domain/errors"
	"github.com/omarsel/flashmart/internal/domain/model"
	"github.com/omarsel/flashmart/internal/server/http/dto"
	"github.com/omarsel/flashmart/internal/server/http/middleware"
)

// CheckoutHandler manages the checkout endpoint.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// Submit handles POST /api/checkout. The form is validated first; only a
// submission that passes gets an anonymous identity minted for it when the
// request has no session, so invalid submissions cause no write at all.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed checkout payload"})
		return
	}

	checkout, err := h.facade.ValidateCheckout(model.CheckoutRequest{
		ProductID:     req.ProductID,
		BuyerName:     req.BuyerName,
		ClassLabel:    req.ClassLabel,
		StudentNumber: req.StudentNumber,
	})
	if err != nil {
		h.writeCheckoutError(c, err)
		return
	}

	userID, ok := CurrentUserID(c)
	if !ok {
		id, token, err := h.facade.SignInAnonymously(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "could not start checkout session"})
			return
		}
		middleware.SetAuthCookie(c, token)
		userID = id
	}

	order, err := h.facade.Checkout(c.Request.Context(), userID, checkout)
	if err != nil {
		h.writeCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CheckoutResponse{
		Reference:   order.Reference.String(),
		ProductName: order.ProductName,
		Price:       order.Price,
		CreatedAt:   order.CreatedAt,
	})
}

func (h *CheckoutHandler) writeCheckoutError(c *gin.Context, err error) {
	var validationErr domainErrors.ValidationError
	var rateErr domainErrors.RateLimitError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: validationErr.Error()})
	case errors.As(err, &rateErr):
		retryAfter := int64(rateErr.RetryAfter.Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		c.Header("Retry-After", formatSeconds(retryAfter))
		c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
			Error:             "please wait before purchasing again",
			RetryAfterSeconds: retryAfter,
		})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "unknown product"})
	case errors.Is(err, domainErrors.ErrProductUnavailable):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "product is not available"})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "purchase failed, please try again"})
	}
}

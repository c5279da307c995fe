package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/commerce-api/internal/api/metrics"
	"github.com/storefront/commerce-api/internal/core/domain"
	"github.com/storefront/commerce-api/internal/core/ports"
)

// CartHandler handles HTTP requests for cart mutations. Both routes require
// an authenticated user; the identity comes from the Auth middleware.
type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"  validate:"required,gt=0"`
}

type removeItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// Add handles POST /cart/add.
//
// @Summary      Add a product to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addItemRequest  true  "Product and quantity"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /cart/add [post]
func (h *CartHandler) Add(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.AddItem(c.Request().Context(), userID, req.ProductID, req.Quantity); err != nil {
		metrics.CartMutationsTotal.WithLabelValues("add", mutationResult(err)).Inc()
		return err
	}

	metrics.CartMutationsTotal.WithLabelValues("add", "ok").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Product added to cart successfully"})
}

// Remove handles POST /cart/remove.
//
// @Summary      Remove a product from the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      removeItemRequest  true  "Product to remove"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /cart/remove [post]
func (h *CartHandler) Remove(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req removeItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.RemoveItem(c.Request().Context(), userID, req.ProductID); err != nil {
		metrics.CartMutationsTotal.WithLabelValues("remove", mutationResult(err)).Inc()
		return err
	}

	metrics.CartMutationsTotal.WithLabelValues("remove", "ok").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Product removed from cart successfully"})
}

func mutationResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation_error"
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrCartNotFound),
		errors.Is(err, domain.ErrItemNotFound):
		return "not_found"
	default:
		return "error"
	}
}

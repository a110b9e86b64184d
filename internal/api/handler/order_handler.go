package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/portal/internal/api/metrics"
	"github.com/shopstack/portal/internal/core/domain"
	"github.com/shopstack/portal/internal/core/ports"
)

type OrderHandler struct {
	orders ports.OrderService
}

func NewOrderHandler(orders ports.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type placeOrderRequest struct {
	Product string `json:"product" validate:"required"`
}

type orderListResponse struct {
	Orders []*domain.Order `json:"orders"`
}

// PlaceOrder buys a product for the authenticated user. The buyer identity
// comes from the session, never from the request body.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      placeOrderRequest  true  "Product to buy"
// @Success      201   {object}  domain.Order
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /orders [post]
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return err
	}

	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.orders.PlaceOrder(c.Request().Context(), sess.Username, req.Product)
	if err != nil {
		return err
	}

	metrics.OrdersPlacedTotal.Inc()
	return c.JSON(http.StatusCreated, order)
}

// ListOrders returns the authenticated user's purchase history.
//
// @Summary      List own orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  orderListResponse
// @Failure      401   {object}  map[string]string
// @Router       /orders [get]
func (h *OrderHandler) ListOrders(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return err
	}

	orders, err := h.orders.ListOrders(c.Request().Context(), sess.Username)
	if err != nil {
		return err
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	return c.JSON(http.StatusOK, orderListResponse{Orders: orders})
}

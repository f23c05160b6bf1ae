package handler

import (
	"github.com/gin-gonic/gin"
	orderapp "github.com/labakery/backend/internal/application/order"
)

// OrderHandler serves storefront checkout and back-office order management
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Checkout places a storefront order.
// POST /api/orders
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req orderapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "create order")
		return
	}
	req.UserID = optionalUserID(c)

	resp, err := h.orderService.Checkout(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err, "create order")
		return
	}
	h.Success(c, resp)
}

// List returns a page of orders.
// GET /api/admin/orders?origin=&status=&page=&pageSize=
func (h *OrderHandler) List(c *gin.Context) {
	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err, "fetch orders")
		return
	}

	page, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err, "fetch orders")
		return
	}
	h.Success(c, page)
}

// GetByID returns one order with its items.
// GET /api/admin/orders/:id
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "order")
	if !ok {
		return
	}

	o, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err, "fetch order")
		return
	}
	h.Success(c, o)
}

// Update patches an order; a present items list replaces every line.
// PATCH /api/admin/orders/:id
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "order")
	if !ok {
		return
	}

	var req orderapp.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "update order")
		return
	}

	o, err := h.orderService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err, "update order")
		return
	}
	h.Success(c, o)
}

// CreatePOSOrder records an in-person sale.
// POST /api/admin/pos-orders
func (h *OrderHandler) CreatePOSOrder(c *gin.Context) {
	var req orderapp.CreatePOSOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "create POS order")
		return
	}

	resp, err := h.orderService.CreatePOSOrder(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err, "create POS order")
		return
	}
	h.Success(c, resp)
}

// TestNotification sends a sample order notification and reports the
// delivery result.
// POST /api/admin/test-telegram
func (h *OrderHandler) TestNotification(c *gin.Context) {
	h.Success(c, h.orderService.SendTestNotification(c.Request.Context()))
}

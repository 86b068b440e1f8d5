package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ShahriarRefat0/Book2Door-server/internal/model"
	"github.com/ShahriarRefat0/Book2Door-server/pkg/auth"
	"github.com/ShahriarRefat0/Book2Door-server/pkg/kafka"
)

// CreateOrder godoc
//
//	@Summary	Pre-create a pending order, reserving stock
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Success	201	{object}	model.Order
//	@Router		/orders [post]
func (h *Handler) CreateOrder(c echo.Context) error {
	var req model.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	email, err := auth.EmailFromCtxOrErr(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	order, err := h.orderSvc.CreateOrder(c.Request().Context(), req, email)
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusCreated, order)
}

// GetOrders godoc
//
//	@Summary	List the caller's orders
//	@Tags		orders
//	@Produce	json
//	@Success	200	{array}	model.Order
//	@Router		/orders [get]
func (h *Handler) GetOrders(c echo.Context) error {
	email, err := auth.EmailFromCtxOrErr(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	orders, err := h.orderSvc.ListOrders(c.Request().Context(), email)
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

// CancelOrder godoc
//
//	@Summary	Cancel an order
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"order id"
//	@Success	200	{object}	model.Order
//	@Router		/orders/cancel/{id} [patch]
func (h *Handler) CancelOrder(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "order id is empty")
	}
	order, err := h.orderSvc.CancelOrder(c.Request().Context(), id)
	if err != nil {
		return h.mapError(err)
	}
	h.publishStatus(order, kafka.EventOrderCancelled)
	return c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus godoc
//
//	@Summary	Set an order's fulfillment status
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"order id"
//	@Param		input	body		model.UpdateOrderStatusRequest	true	"new status"
//	@Success	200		{object}	model.Order
//	@Router		/orders/update-status/{id} [patch]
func (h *Handler) UpdateOrderStatus(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "order id is empty")
	}
	var req model.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	order, err := h.orderSvc.UpdateOrderStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return h.mapError(err)
	}
	h.publishStatus(order, kafka.EventOrderStatusChanged)
	return c.JSON(http.StatusOK, order)
}

func (h *Handler) publishStatus(order model.Order, eventType string) {
	event := kafka.OrderEvent{
		Timestamp:     time.Now().UTC(),
		EventType:     eventType,
		OrderID:       order.ID,
		BookID:        order.BookID,
		CustomerEmail: order.CustomerEmail,
		SellerEmail:   order.SellerEmail,
		Status:        string(order.OrderStatus),
		Amount:        order.Price,
	}
	if order.TransactionID != nil {
		event.TransactionID = *order.TransactionID
	}
	if err := h.enqueuer.Enqueue(h.topic, event); err != nil {
		h.log.Warn("enqueue order event", zap.Error(err))
	}
}

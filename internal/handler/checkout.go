package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ShahriarRefat0/Book2Door-server/internal/errs"
	"github.com/ShahriarRefat0/Book2Door-server/internal/model"
	"github.com/ShahriarRefat0/Book2Door-server/pkg/auth"
	"github.com/ShahriarRefat0/Book2Door-server/pkg/kafka"
	"github.com/ShahriarRefat0/Book2Door-server/pkg/money"
)

// CreateCheckoutSession godoc
//
//	@Summary	Create a provider checkout session for a single book
//	@Tags		checkout
//	@Accept		json
//	@Produce	json
//	@Param		input	body		model.CreateCheckoutSessionRequest	true	"checkout payload"
//	@Success	200		{object}	model.CreateCheckoutSessionResponse
//	@Router		/create-checkout-session [post]
func (h *Handler) CreateCheckoutSession(c echo.Context) error {
	var req model.CreateCheckoutSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	email, err := auth.EmailFromCtxOrErr(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	req.Customer.Email = email
	if err := c.Validate(req); err != nil {
		return err
	}

	url, err := h.checkoutSvc.CreateCheckoutSession(c.Request().Context(), req)
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, model.CreateCheckoutSessionResponse{URL: url})
}

// PaymentSuccess godoc
//
//	@Summary	Confirm a completed checkout session (idempotent)
//	@Tags		checkout
//	@Accept		json
//	@Produce	json
//	@Param		input	body		model.ConfirmPaymentRequest	true	"session reference"
//	@Success	200		{object}	model.ConfirmPaymentResponse
//	@Router		/payment-success [post]
func (h *Handler) PaymentSuccess(c echo.Context) error {
	var req model.ConfirmPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	resp, err := h.checkoutSvc.ConfirmPayment(c.Request().Context(), req.SessionID)
	if err != nil {
		return h.mapError(err)
	}

	if err := h.enqueuer.Enqueue(h.topic, kafka.OrderEvent{
		Timestamp:     time.Now().UTC(),
		EventType:     kafka.EventOrderCommitted,
		OrderID:       resp.OrderID,
		TransactionID: resp.TransactionID,
		Status:        string(model.OrderStatusPending),
	}); err != nil {
		h.log.Warn("enqueue order event", zap.Error(err))
	}

	return c.JSON(http.StatusOK, resp)
}

// mapError translates the service error taxonomy into HTTP codes.
func (h *Handler) mapError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, errs.ErrPaymentIncomplete),
		errors.Is(err, money.ErrInvalidAmount):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrBookNotFound),
		errors.Is(err, errs.ErrSessionNotFound),
		errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrOutOfStock):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, errs.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, errs.ErrGateway):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

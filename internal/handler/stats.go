package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ShahriarRefat0/Book2Door-server/pkg/auth"
)

// AdminStatistics godoc
//
//	@Summary	Marketplace-wide aggregates
//	@Tags		statistics
//	@Produce	json
//	@Success	200	{object}	model.AdminStats
//	@Router		/admin-statistics [get]
func (h *Handler) AdminStatistics(c echo.Context) error {
	st, err := h.statsSvc.AdminStats(c.Request().Context())
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, st)
}

// LibrarianStatistics godoc
//
//	@Summary	Aggregates scoped to the seller's own catalog
//	@Tags		statistics
//	@Produce	json
//	@Success	200	{object}	model.LibrarianStats
//	@Router		/librarian-statistics [get]
func (h *Handler) LibrarianStatistics(c echo.Context) error {
	email, err := auth.EmailFromCtxOrErr(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	st, err := h.statsSvc.LibrarianStats(c.Request().Context(), email)
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, st)
}

// CustomerStatistics godoc
//
//	@Summary	Aggregates scoped to the caller's own orders
//	@Tags		statistics
//	@Produce	json
//	@Success	200	{object}	model.CustomerStats
//	@Router		/customer-statistics [get]
func (h *Handler) CustomerStatistics(c echo.Context) error {
	email, err := auth.EmailFromCtxOrErr(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	st, err := h.statsSvc.CustomerStats(c.Request().Context(), email)
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, st)
}

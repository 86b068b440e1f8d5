package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ShahriarRefat0/Book2Door-server/internal/model"
	"github.com/ShahriarRefat0/Book2Door-server/pkg/auth"
)

func (h *Handler) ListBooks(c echo.Context) error {
	books, err := h.bookSvc.ListBooks(c.Request().Context())
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) GetBook(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "book id is empty")
	}
	book, err := h.bookSvc.GetBook(c.Request().Context(), id)
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) CreateBook(c echo.Context) error {
	var req model.CreateBookRequest
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
	book, err := h.bookSvc.CreateBook(c.Request().Context(), req, email)
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusCreated, book)
}

package handler

import (
	"net/http"

	"catalog/internal/usecase"

	"github.com/labstack/echo/v4"
)

type BookHandler struct {
	uc   *usecase.BookUsecase
	auth echo.MiddlewareFunc
}

// DI
func NewBookHandler(uc *usecase.BookUsecase, auth echo.MiddlewareFunc) *BookHandler {
	return &BookHandler{uc: uc, auth: auth}
}

func (h *BookHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/books", h.list)
	e.GET("/books/:id", h.detail)

	e.POST("/books", h.create, h.auth)
	e.PUT("/books/:id", h.update, h.auth)
	e.DELETE("/books/:id", h.delete, h.auth)
}

type BookRequest struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Price    int64  `json:"price"`
	Category *int64 `json:"category"`
}

func (h *BookHandler) list(c echo.Context) error {
	body, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSONBlob(http.StatusOK, body)
}

func (h *BookHandler) detail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	b, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *BookHandler) create(c echo.Context) error {
	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	b, err := h.uc.Create(c.Request().Context(), usecase.BookInput{
		Title:      req.Title,
		Author:     req.Author,
		Price:      req.Price,
		CategoryID: req.Category,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *BookHandler) update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	b, err := h.uc.Update(c.Request().Context(), id, usecase.BookInput{
		Title:      req.Title,
		Author:     req.Author,
		Price:      req.Price,
		CategoryID: req.Category,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *BookHandler) delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

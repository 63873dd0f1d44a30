package handler

import (
	"net/http"

	"catalog/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ModelHandler struct {
	uc   *usecase.ModelUsecase
	auth echo.MiddlewareFunc
}

// DI
func NewModelHandler(uc *usecase.ModelUsecase, auth echo.MiddlewareFunc) *ModelHandler {
	return &ModelHandler{uc: uc, auth: auth}
}

func (h *ModelHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/models", h.list)
	e.GET("/models/:id", h.detail)

	e.POST("/models", h.create, h.auth)
	e.PUT("/models/:id", h.update, h.auth)
	e.DELETE("/models/:id", h.delete, h.auth)
}

type ModelRequest struct {
	Title    string `json:"title"`
	Category *int64 `json:"category"`
}

func (h *ModelHandler) list(c echo.Context) error {
	models, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, models)
}

func (h *ModelHandler) detail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	m, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *ModelHandler) create(c echo.Context) error {
	var req ModelRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	m, err := h.uc.Create(c.Request().Context(), usecase.ModelInput{
		Title:      req.Title,
		CategoryID: req.Category,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *ModelHandler) update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req ModelRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	m, err := h.uc.Update(c.Request().Context(), id, usecase.ModelInput{
		Title:      req.Title,
		CategoryID: req.Category,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *ModelHandler) delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func registerRoutes(e *echo.Echo, h Handlers) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	h.Product.RegisterRoutes(e)
	h.Category.RegisterRoutes(e)
	h.Model.RegisterRoutes(e)
	h.Book.RegisterRoutes(e)
	h.Auth.RegisterRoutes(e)
}

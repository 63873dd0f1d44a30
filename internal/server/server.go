package server

import (
	"catalog/internal/handler"
	mw "catalog/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Handlersはルーティングに参加する全ハンドラ。
type Handlers struct {
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Model    *handler.ModelHandler
	Book     *handler.BookHandler
	Auth     *handler.AuthHandler
}

// Newはミドルウェアとルートを組んだechoインスタンスを返す。
func New(h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(mw.Logger)

	registerRoutes(e, h)

	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}

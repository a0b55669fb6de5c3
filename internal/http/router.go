package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "feedpoll/docs"
	"feedpoll/internal/handler"
)

// Handlers bundles every API handler mounted under /api.
type Handlers struct {
	Feed    *handler.FeedHandler
	Post    *handler.PostHandler
	State   *handler.StateHandler
	Refresh *handler.RefreshHandler
	Export  *handler.ExportHandler
	OPML    *handler.OPMLHandler
	Locale  *handler.LocaleHandler
}

func NewRouter(h Handlers, staticDir string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(RequestLoggerMiddleware())

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	h.Feed.RegisterRoutes(api)
	h.Post.RegisterRoutes(api)
	h.State.RegisterRoutes(api)
	h.Refresh.RegisterRoutes(api)
	h.Export.RegisterRoutes(api)
	h.OPML.RegisterRoutes(api)
	h.Locale.RegisterRoutes(api)

	registerStatic(e, staticDir)

	return e
}

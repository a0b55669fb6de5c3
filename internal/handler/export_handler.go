package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"feedpoll/internal/locale"
	"feedpoll/internal/service"
)

type ExportHandler struct {
	service    service.ExportService
	translator *locale.Translator
}

func NewExportHandler(service service.ExportService, translator *locale.Translator) *ExportHandler {
	return &ExportHandler{service: service, translator: translator}
}

func (h *ExportHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/posts.atom", h.Atom)
	g.GET("/posts.rss", h.RSS)
}

// Atom renders the post list as an Atom feed.
// @Summary Export posts as Atom
// @Tags export
// @Produce application/atom+xml
// @Router /posts.atom [get]
func (h *ExportHandler) Atom(c echo.Context) error {
	out, err := h.service.Atom(c.Request().Context())
	if err != nil {
		return writeServiceError(c, h.translator, err)
	}
	return c.Blob(http.StatusOK, "application/atom+xml; charset=utf-8", []byte(out))
}

// RSS renders the post list as an RSS 2.0 feed.
// @Summary Export posts as RSS
// @Tags export
// @Produce application/rss+xml
// @Router /posts.rss [get]
func (h *ExportHandler) RSS(c echo.Context) error {
	out, err := h.service.RSS(c.Request().Context())
	if err != nil {
		return writeServiceError(c, h.translator, err)
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(out))
}

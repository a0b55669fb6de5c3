package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"feedpoll/internal/locale"
	"feedpoll/internal/service"
)

type RefreshHandler struct {
	service    service.RefreshService
	translator *locale.Translator
}

type refreshResponse struct {
	Feeds    int `json:"feeds"`
	Failed   int `json:"failed"`
	Admitted int `json:"admitted"`
}

type refreshStatusResponse struct {
	Refreshing bool `json:"refreshing"`
}

func NewRefreshHandler(service service.RefreshService, translator *locale.Translator) *RefreshHandler {
	return &RefreshHandler{service: service, translator: translator}
}

func (h *RefreshHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/refresh", h.Status)
	g.POST("/refresh", h.Refresh)
}

// Status reports whether a polling cycle is in flight.
// @Summary Polling cycle status
// @Tags feeds
// @Produce json
// @Success 200 {object} refreshStatusResponse
// @Router /refresh [get]
func (h *RefreshHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, refreshStatusResponse{Refreshing: h.service.IsRefreshing()})
}

// Refresh runs one polling cycle right away.
// @Summary Refresh all feeds
// @Tags feeds
// @Produce json
// @Success 200 {object} refreshResponse
// @Failure 409 {object} errorResponse
// @Router /refresh [post]
func (h *RefreshHandler) Refresh(c echo.Context) error {
	result, err := h.service.RefreshAll(c.Request().Context())
	if err != nil {
		return writeServiceError(c, h.translator, err)
	}
	return c.JSON(http.StatusOK, refreshResponse{
		Feeds:    result.Feeds,
		Failed:   result.Failed,
		Admitted: result.Admitted,
	})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"feedpoll/internal/locale"
	"feedpoll/internal/model"
	"feedpoll/internal/service"
)

type FeedHandler struct {
	service    service.FeedService
	translator *locale.Translator
}

type createFeedRequest struct {
	URL string `json:"url"`
}

type createFeedResponse struct {
	messageResponse
	Feed model.Feed `json:"feed"`
}

func NewFeedHandler(service service.FeedService, translator *locale.Translator) *FeedHandler {
	return &FeedHandler{service: service, translator: translator}
}

func (h *FeedHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/feeds", h.Create)
	g.GET("/feeds", h.List)
}

// Create subscribes to a feed.
// @Summary Submit a feed URL
// @Description Validate, fetch and subscribe to an RSS feed
// @Tags feeds
// @Accept json
// @Produce json
// @Param feed body createFeedRequest true "Feed submission"
// @Success 201 {object} createFeedResponse
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Failure 504 {object} errorResponse
// @Router /feeds [post]
func (h *FeedHandler) Create(c echo.Context) error {
	var req createFeedRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	feed, err := h.service.Add(c.Request().Context(), req.URL)
	if err != nil {
		return writeServiceError(c, h.translator, err)
	}
	return c.JSON(http.StatusCreated, createFeedResponse{
		messageResponse: messageResponse{
			Message: h.translator.Translate(locale.KeyLoaded, requestLanguages(c)...),
			Key:     locale.KeyLoaded,
		},
		Feed: feed,
	})
}

// List returns the subscribed feeds, newest first.
// @Summary List feeds
// @Tags feeds
// @Produce json
// @Success 200 {array} model.Feed
// @Router /feeds [get]
func (h *FeedHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.List(c.Request().Context()))
}

package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"feedpoll/internal/locale"
	"feedpoll/internal/model"
	"feedpoll/internal/service"
)

type PostHandler struct {
	service    service.PostService
	translator *locale.Translator
}

type postResponse struct {
	ID           string `json:"id"`
	FeedURL      string `json:"feedUrl"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Link         string `json:"link"`
	DiscoveredAt string `json:"discoveredAt"`
	Visited      bool   `json:"visited"`
}

func NewPostHandler(service service.PostService, translator *locale.Translator) *PostHandler {
	return &PostHandler{service: service, translator: translator}
}

func (h *PostHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/posts", h.List)
	g.POST("/posts/:id/open", h.Open)
	g.GET("/modal", h.Modal)
}

// List returns every post, newest discovery first.
// @Summary List posts
// @Tags posts
// @Produce json
// @Success 200 {array} postResponse
// @Router /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	visited := lo.SliceToMap(h.service.Visited(ctx), func(id string) (string, struct{}) {
		return id, struct{}{}
	})
	posts := h.service.List(ctx)
	response := lo.Map(posts, func(p model.Post, _ int) postResponse {
		_, seen := visited[p.ID]
		return toPostResponse(p, seen)
	})
	return c.JSON(http.StatusOK, response)
}

// Open shows a post in the detail view and marks it visited.
// @Summary Open a post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} model.ModalSelection
// @Failure 404 {object} errorResponse
// @Router /posts/{id}/open [post]
func (h *PostHandler) Open(c echo.Context) error {
	modal, err := h.service.Open(c.Request().Context(), parsePostIDParam(c))
	if err != nil {
		return writeServiceError(c, h.translator, err)
	}
	return c.JSON(http.StatusOK, modal)
}

// Modal returns the current detail view selection.
// @Summary Current modal selection
// @Tags posts
// @Produce json
// @Success 200 {object} model.ModalSelection
// @Router /modal [get]
func (h *PostHandler) Modal(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Modal(c.Request().Context()))
}

func toPostResponse(p model.Post, visited bool) postResponse {
	return postResponse{
		ID:           p.ID,
		FeedURL:      p.FeedURL,
		Title:        p.Title,
		Description:  p.Description,
		Link:         p.Link,
		DiscoveredAt: p.DiscoveredAt.UTC().Format(time.RFC3339),
		Visited:      visited,
	}
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"feedpoll/internal/locale"
)

type LocaleHandler struct {
	translator *locale.Translator
}

type localesResponse struct {
	Default   string   `json:"default"`
	Languages []string `json:"languages"`
}

func NewLocaleHandler(translator *locale.Translator) *LocaleHandler {
	return &LocaleHandler{translator: translator}
}

func (h *LocaleHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/locales", h.List)
}

// List returns the languages user-facing messages can be rendered in.
// @Summary List message languages
// @Tags locales
// @Produce json
// @Success 200 {object} localesResponse
// @Router /locales [get]
func (h *LocaleHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, localesResponse{
		Default:   h.translator.DefaultLanguage(),
		Languages: h.translator.Languages(),
	})
}

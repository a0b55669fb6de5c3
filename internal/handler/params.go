package handler

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// requestLanguages returns the language preferences of the request, most
// specific first: the lang query parameter, then the Accept-Language header.
func requestLanguages(c echo.Context) []string {
	var langs []string
	if lang := strings.TrimSpace(c.QueryParam("lang")); lang != "" {
		langs = append(langs, lang)
	}
	if accept := c.Request().Header.Get("Accept-Language"); accept != "" {
		langs = append(langs, accept)
	}
	return langs
}

func parsePostIDParam(c echo.Context) string {
	return strings.TrimSpace(c.Param("id"))
}

package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"feedpoll/internal/locale"
	"feedpoll/internal/logger"
	"feedpoll/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
	Key   string `json:"key,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
	Key     string `json:"key"`
}

// writeServiceError maps service sentinels to HTTP status codes. Errors that
// carry a translation key are answered with the message in the request language.
func writeServiceError(c echo.Context, tr *locale.Translator, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrAlreadyRefreshing):
		status = http.StatusConflict
	case errors.Is(err, service.ErrTimeout):
		status = http.StatusGatewayTimeout
	case errors.Is(err, service.ErrParse):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrFeedFetch):
		status = http.StatusBadGateway
	}

	if key := service.ErrorKey(err); key != "" {
		return c.JSON(status, errorResponse{Error: tr.Translate(key, requestLanguages(c)...), Key: key})
	}

	switch status {
	case http.StatusNotFound:
		return c.JSON(status, errorResponse{Error: "resource not found"})
	case http.StatusConflict:
		return c.JSON(status, errorResponse{Error: "conflict"})
	case http.StatusInternalServerError:
		logger.Error("unhandled service error", "module", "handler", "action", "request", "resource", "http", "result", "failed",
			"path", c.Request().URL.Path, "error", err)
		return c.JSON(status, errorResponse{Error: "internal error"})
	default:
		return c.JSON(status, errorResponse{Error: http.StatusText(status)})
	}
}

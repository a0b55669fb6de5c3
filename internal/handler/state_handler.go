package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"feedpoll/internal/logger"
	"feedpoll/internal/state"
)

// eventBuffer bounds the changes queued for one slow stream client.
const eventBuffer = 64

type StateHandler struct {
	store *state.Store
}

func NewStateHandler(store *state.Store) *StateHandler {
	return &StateHandler{store: store}
}

func (h *StateHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/state", h.Snapshot)
	g.GET("/events", h.Events)
}

// Snapshot returns the whole application state.
// @Summary State snapshot
// @Tags state
// @Produce json
// @Success 200 {object} state.Snapshot
// @Router /state [get]
func (h *StateHandler) Snapshot(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Snapshot())
}

// Events streams state changes as server-sent events. The first event is a
// full snapshot; each later event names the changed path.
// @Summary State change stream
// @Tags state
// @Produce text/event-stream
// @Router /events [get]
func (h *StateHandler) Events(c echo.Context) error {
	changes := make(chan state.Change, eventBuffer)
	unsubscribe := h.store.Subscribe(func(change state.Change) {
		select {
		case changes <- change:
		default:
			logger.Warn("state event dropped", "module", "handler", "action", "stream", "resource", "state", "result", "failed",
				"path", string(change.Path))
		}
	})
	defer unsubscribe()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	if err := writeEvent(res, "snapshot", h.store.Snapshot()); err != nil {
		return nil
	}

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case change := <-changes:
			if err := writeEvent(res, "change", change); err != nil {
				logger.Debug("state stream closed", "module", "handler", "action", "stream", "resource", "state", "result", "ok", "error", err)
				return nil
			}
		}
	}
}

func writeEvent(res *echo.Response, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event, err)
	}
	if _, err := fmt.Fprintf(res, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	res.Flush()
	return nil
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	ws "upcyclehub/internal/infrastructure/websocket"
)

type HealthHandler struct {
	registry *ws.Registry
}

func NewHealthHandler(registry *ws.Registry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ok",
		"online": h.registry.Online(),
	})
}

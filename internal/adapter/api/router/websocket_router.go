package router

import (
	"github.com/labstack/echo/v4"

	"upcyclehub/internal/adapter/api/handler"
)

func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	// No auth middleware here: the connection authenticates itself with
	// its first protocol event.
	e.GET("/ws", wsHandler.HandleWebSocket)
}

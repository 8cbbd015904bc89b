package router

import (
	"github.com/labstack/echo/v4"

	"upcyclehub/internal/adapter/api/handler"
	"upcyclehub/internal/adapter/api/middleware"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	Conversation *handler.ConversationHandler
	WebSocket    *handler.WebSocketHandler
	Health       *handler.HealthHandler
}

func Setup(e *echo.Echo, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	SetupHealthRouter(e, h.Health)
	SetupAuthRouter(e, h.Auth, authMiddleware)
	SetupProductRouter(e, h.Product, authMiddleware)
	SetupConversationRouter(e, h.Conversation, authMiddleware)
	SetupWebSocketRouter(e, h.WebSocket)
}

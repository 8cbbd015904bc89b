package router

import (
	"github.com/labstack/echo/v4"

	"upcyclehub/internal/adapter/api/handler"
	"upcyclehub/internal/adapter/api/middleware"
)

func SetupConversationRouter(e *echo.Echo, conversationHandler *handler.ConversationHandler, authMiddleware *middleware.AuthMiddleware) {
	conversations := e.Group("/api/conversations")
	conversations.Use(authMiddleware.Authenticate)

	conversations.GET("", conversationHandler.ListConversations)
	conversations.POST("", conversationHandler.OpenConversation)
	conversations.GET("/:id/messages", conversationHandler.GetMessages)
	conversations.POST("/:id/messages", conversationHandler.SendMessage)
}

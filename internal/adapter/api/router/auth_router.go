package router

import (
	"github.com/labstack/echo/v4"

	"upcyclehub/internal/adapter/api/handler"
	"upcyclehub/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authHandler *handler.AuthHandler, authMiddleware *middleware.AuthMiddleware) {
	auth := e.Group("/api/auth")

	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me, authMiddleware.Authenticate)
}

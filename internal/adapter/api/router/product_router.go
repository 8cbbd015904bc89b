package router

import (
	"github.com/labstack/echo/v4"

	"upcyclehub/internal/adapter/api/handler"
	"upcyclehub/internal/adapter/api/middleware"
)

func SetupProductRouter(e *echo.Echo, productHandler *handler.ProductHandler, authMiddleware *middleware.AuthMiddleware) {
	products := e.Group("/api/products")

	// Browsing is public
	products.GET("", productHandler.ListProducts)
	products.GET("/:id", productHandler.GetProduct)
	products.GET("/:id/images", productHandler.ListProductImages)

	// Mutations require a signed-in seller
	products.POST("", productHandler.CreateProduct, authMiddleware.Authenticate)
	products.PUT("/:id", productHandler.UpdateProduct, authMiddleware.Authenticate)
	products.DELETE("/:id", productHandler.DeleteProduct, authMiddleware.Authenticate)
	products.POST("/:id/images", productHandler.AddProductImage, authMiddleware.Authenticate)
}

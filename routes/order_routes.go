package routes

import (
	"tolvuleiga/controllers"
	"tolvuleiga/middleware"

	"github.com/gin-gonic/gin"
)

// SetupOrderRoutes registers the customer-facing order endpoints.
func SetupOrderRoutes(r *gin.Engine, deps Deps) {
	orderController := controllers.NewOrderController(deps.Orders, deps.Cache, deps.Notifier)

	orderGroup := r.Group("/user/orders", middleware.JWTAuthMiddleware())
	{
		orderGroup.POST("/create", orderController.CreateOrder)
		orderGroup.GET("/my-orders", orderController.GetMyOrders)
		orderGroup.GET("/:order_id", orderController.GetOrderByID)
		orderGroup.GET("/:order_id/receipt", orderController.GetReceipt)
		orderGroup.POST("/:order_id/extension", orderController.RequestExtension)
	}
}

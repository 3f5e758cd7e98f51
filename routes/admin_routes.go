package routes

import (
	admincontrollers "tolvuleiga/controllers/admin"
	"tolvuleiga/middleware"
	"tolvuleiga/utils"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes registers the operator console endpoints.
func SetupAdminRoutes(r *gin.Engine, deps Deps) {
	adminController := admincontrollers.NewAdminController(utils.GetDB(), deps.Orders, deps.Cache, deps.Notifier)

	adminGroup := r.Group("/admin", middleware.JWTAuthMiddleware(), middleware.AdminOnly())
	{
		adminGroup.GET("/orders", adminController.ListOrders)
		adminGroup.POST("/orders/:order_id/status", adminController.SetStatus)
		adminGroup.DELETE("/orders/:order_id", adminController.DeleteOrder)
		adminGroup.POST("/orders/:order_id/regenerate", adminController.RegenerateReceipt)
		adminGroup.POST("/orders/:order_id/reminder", adminController.SendReminder)
		adminGroup.GET("/extension-requests", adminController.ListExtensionRequests)
	}
}

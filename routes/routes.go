package routes

import (
	"tolvuleiga/config"
	"tolvuleiga/controllers"
	"tolvuleiga/middleware"
	"tolvuleiga/services"
	"tolvuleiga/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps carries the wired services into route registration.
type Deps struct {
	Orders   *services.OrderService
	Cache    *services.DocumentCache
	Notifier *services.Notifier
	Storage  services.ObjectStorage
}

// SetupRouter creates the gin engine and registers every route.
func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RecoveryMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://tolvuleiga.is", "https://www.tolvuleiga.is"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	authController := controllers.NewAuthController(utils.GetDB())
	pricingController := controllers.NewPricingController(deps.Orders)
	productController := controllers.NewProductController(utils.GetDB(), deps.Storage, cfg.ProductImgBuckets)
	contactController := controllers.NewContactController(deps.Notifier)

	r.POST("/auth/session", authController.CreateSession)
	r.POST("/pricing/quote", pricingController.Quote)
	r.POST("/contact", contactController.Submit)

	productGroup := r.Group("/products")
	{
		productGroup.GET("/pcs", productController.ListPCs)
		productGroup.GET("/consoles", productController.ListConsoles)
		productGroup.GET("/:kind/:id", productController.GetProduct)
		productGroup.GET("/:kind/:id/image-url", productController.GetImageURL)
	}

	SetupOrderRoutes(r, deps)
	SetupAdminRoutes(r, deps)

	return r
}

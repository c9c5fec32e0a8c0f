package router

import (
	"github.com/gin-gonic/gin"

	"wooltrace/internal/config"
	"wooltrace/internal/domain"
	"wooltrace/internal/handler"
	"wooltrace/internal/middleware"
	"wooltrace/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	batchH *handler.BatchHandler,
	qualityH *handler.QualityHandler,
	shopH *handler.ShopHandler,
	adminH *handler.AdminHandler,
	monitoringH *handler.MonitoringHandler,
	chatH *handler.ChatHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.GET("/auth/me", authH.Me)

	// Batch lifecycle
	batches := protected.Group("/batches")
	batches.POST("", middleware.RequirePermission(domain.CapCreateBatch, domain.CapSellWool), batchH.Create)
	batches.GET("", batchH.List)
	batches.GET("/:id", batchH.GetByID)
	batches.PATCH("/:id", middleware.RequirePermission(domain.CapCreateBatch), batchH.Update)
	batches.PATCH("/:id/status", middleware.RequirePermission(domain.CapUpdateBatchStage), batchH.UpdateStage)
	batches.POST("/:id/logs", middleware.RequirePermission(domain.CapAddProcessingLogs), batchH.AddLog)
	batches.POST("/:id/images", middleware.RequirePermission(domain.CapCreateBatch), batchH.UploadImage)
	batches.DELETE("/:id/images", middleware.RequirePermission(domain.CapCreateBatch), batchH.RemoveImage)
	batches.GET("/:id/label", batchH.Label)

	// Quality inspection workflow
	quality := protected.Group("/quality")
	quality.POST("/inspect", middleware.RequirePermission(domain.CapCreateQualityInspection), qualityH.RecordInspection)
	quality.PATCH("/approve/:id", middleware.RequirePermission(domain.CapApproveBatch), qualityH.Approve)
	quality.PATCH("/reject/:id", middleware.RequirePermission(domain.CapRejectBatch), qualityH.Reject)
	quality.GET("/my", middleware.RequirePermission(domain.CapViewQualityResults), qualityH.MyResults)
	quality.GET("/analytics", middleware.RequirePermission(domain.CapViewQualityAnalytics), qualityH.Analytics)
	quality.GET("/logs", middleware.RequirePermission(domain.CapViewQualityLogs), qualityH.Logs)

	// Marketplace
	shop := protected.Group("/shop")
	shop.GET("/products", middleware.RequirePermission(domain.CapViewProducts, domain.CapViewMarketplace), shopH.Products)
	shop.GET("/products/:id", middleware.RequirePermission(domain.CapViewProducts, domain.CapViewMarketplace), shopH.Product)
	shop.POST("/order", middleware.RequirePermission(domain.CapBuyWool), shopH.PlaceOrder)
	shop.DELETE("/order/:id", middleware.RequirePermission(domain.CapBuyWool), shopH.DeleteOrder)
	shop.POST("/order/:id/pay", middleware.RequirePermission(domain.CapBuyWool), shopH.PayOrder)
	shop.GET("/orders/my", middleware.RequirePermission(domain.CapViewOrderHistory), shopH.MyOrders)

	// Mill monitoring
	protected.GET("/monitoring/sensors", middleware.RequirePermission(domain.CapAccessMonitoring), monitoringH.Snapshot)

	// Assistant
	protected.POST("/chat", chatH.Ask)

	// Admin routes - user management and exports
	admin := protected.Group("/admin")
	admin.Use(middleware.RequirePermission(domain.CapManageUsers))
	admin.GET("/users", adminH.ListUsers)
	admin.GET("/users/:id", adminH.GetUser)
	admin.PATCH("/assign-role/:id", adminH.AssignRole)
	admin.GET("/export/batches.csv", adminH.ExportBatchesCSV)
	admin.GET("/export/batches.xlsx", adminH.ExportBatchesXLSX)

	return r
}

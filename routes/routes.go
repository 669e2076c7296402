package routes

import (
	"kiosk-ordering-api/handlers"
	"kiosk-ordering-api/middleware"
	"kiosk-ordering-api/realtime"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, hub *realtime.Hub) {
	handlers.Notifier = hub

	// Real-time channel; clients subscribe via join messages
	r.GET("/ws", realtime.ServeWS(hub))

	api := r.Group("/api")

	// ── Menu ───────────────────────────────────────────────────────
	api.GET("/menu", handlers.ListMenu)
	api.GET("/menu/:id", handlers.GetMenuItem)

	menuAdmin := api.Group("/menu")
	menuAdmin.Use(middleware.AuthRequired(), middleware.RoleRequired("admin"))
	{
		menuAdmin.POST("", handlers.CreateMenuItem)
		menuAdmin.PUT("/:id", handlers.UpdateMenuItem)
		menuAdmin.DELETE("/:id", handlers.DeleteMenuItem)
	}

	// ── Orders (kiosk + kitchen display) ───────────────────────────
	api.POST("/order", handlers.CreateOrder)
	api.GET("/order", handlers.ListOrders)
	api.GET("/order/:orderId", handlers.GetOrder)
	api.PUT("/order/:orderId/status", handlers.UpdateOrderStatus)
	api.PUT("/order/:orderId/receipt", handlers.MarkReceiptPrinted)

	// ── Payment (simulated gateway) ────────────────────────────────
	api.POST("/payment", handlers.ProcessPayment)

	// ── Admin ──────────────────────────────────────────────────────
	api.POST("/admin/login", handlers.Login)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired("admin"))
	{
		admin.GET("/verify", handlers.VerifyToken)
		admin.GET("/dashboard/stats", handlers.DashboardStats)
	}
}

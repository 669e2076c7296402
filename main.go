package main

import (
	"log"
	"net/http"
	"os"

	"kiosk-ordering-api/config"
	"kiosk-ordering-api/realtime"
	"kiosk-ordering-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	// Configuration and database
	config.Load()
	config.InitDB(config.DBPath())

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for the kiosk frontend
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Server is running"})
	})

	// Root route - API information
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Restaurant Ordering System API",
			"version": "1.0.0",
			"endpoints": gin.H{
				"menu":    "/api/menu",
				"orders":  "/api/order",
				"payment": "/api/payment",
				"admin":   "/api/admin",
				"health":  "/api/health",
				"ws":      "/ws",
			},
		})
	})

	// Real-time hub and all routes
	hub := realtime.NewHub()
	routes.SetupRoutes(r, hub)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

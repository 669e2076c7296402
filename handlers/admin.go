package handlers

import (
	"math"
	"net/http"
	"time"

	"kiosk-ordering-api/config"
	"kiosk-ordering-api/middleware"
	"kiosk-ordering-api/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates the admin against configured credentials and
// returns a JWT
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Username != config.AdminUsername ||
		bcrypt.CompareHashAndPassword([]byte(config.AdminPasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := middleware.GenerateToken(req.Username, "admin")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    gin.H{"username": req.Username, "role": "admin"},
	})
}

// VerifyToken confirms the bearer token is still valid
func VerifyToken(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"user": gin.H{
			"username": middleware.GetUsername(c),
			"role":     middleware.GetRole(c),
		},
	})
}

type recentOrder struct {
	ID            string               `json:"id"`
	OrderNumber   string               `json:"orderNumber"`
	TokenNumber   string               `json:"tokenNumber"`
	TotalAmount   float64              `json:"totalAmount"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
	OrderStatus   models.OrderStatus   `json:"orderStatus"`
	CreatedAt     time.Time            `json:"created_at"`
}

// percentChange implements the dashboard's change rule: against a zero
// baseline, any revenue today counts as 100% growth, no revenue as 0.
func percentChange(today, yesterday float64) float64 {
	if yesterday > 0 {
		return math.Round((today-yesterday)/yesterday*1000) / 10
	}
	if today > 0 {
		return 100
	}
	return 0
}

func paidTotals(from, to time.Time) (revenue float64, count int64, err error) {
	paid := func() *gorm.DB {
		return config.DB.Model(&models.Order{}).
			Where("created_at >= ? AND created_at < ?", from, to).
			Where("payment_status = ?", models.PaymentPaid)
	}
	if err = paid().Count(&count).Error; err != nil {
		return 0, 0, err
	}
	err = paid().Select("COALESCE(SUM(total_amount), 0)").Scan(&revenue).Error
	return revenue, count, err
}

// DashboardStats recomputes the admin dashboard aggregates on demand:
// today vs yesterday paid revenue/counts, pending orders, stock buckets
// and the five most recent orders. No caching; polling plus the
// dashboard-update signal bound staleness.
func DashboardStats(c *gin.Context) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)
	yesterday := today.AddDate(0, 0, -1)

	todayRevenue, todayCount, err := paidTotals(today, tomorrow)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "success": false})
		return
	}
	yesterdayRevenue, yesterdayCount, err := paidTotals(yesterday, today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "success": false})
		return
	}

	var pendingOrders int64
	if err := config.DB.Model(&models.Order{}).
		Where("order_status NOT IN ?", []models.OrderStatus{models.StatusDelivered, models.StatusCancelled}).
		Count(&pendingOrders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "success": false})
		return
	}

	// Low stock is strictly between zero and the threshold; out-of-stock
	// items are a separate bucket.
	var lowStockItems int64
	if err := config.DB.Model(&models.MenuItem{}).
		Where("stock > 0 AND stock < min_stock").
		Count(&lowStockItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "success": false})
		return
	}

	var totalMenuItems int64
	if err := config.DB.Model(&models.MenuItem{}).Count(&totalMenuItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "success": false})
		return
	}

	var recent []recentOrder
	if err := config.DB.Model(&models.Order{}).
		Select("id, order_number, token_number, total_amount, payment_status, order_status, created_at").
		Order("created_at desc").Limit(5).
		Scan(&recent).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "success": false})
		return
	}
	if recent == nil {
		recent = []recentOrder{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"todayRevenue":   todayRevenue,
			"todayOrders":    todayCount,
			"pendingOrders":  pendingOrders,
			"lowStockItems":  lowStockItems,
			"totalMenuItems": totalMenuItems,
			"revenueChange":  percentChange(todayRevenue, yesterdayRevenue),
			"ordersChange":   percentChange(float64(todayCount), float64(yesterdayCount)),
			"recentOrders":   recent,
		},
	})
}

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"kiosk-ordering-api/config"
	"kiosk-ordering-api/middleware"
	"kiosk-ordering-api/models"
	"kiosk-ordering-api/realtime"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testAdminUser     = "admin"
	testAdminPassword = "kiosk-test-password"
)

// setupTest wires a fresh in-memory store, a fresh hub and a router with
// the same routes main registers.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	// a single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.MenuItem{}, &models.Order{}, &models.OrderLine{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	config.DB = db

	config.JWTSecret = []byte("test-secret")
	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash test password: %v", err)
	}
	config.AdminUsername = testAdminUser
	config.AdminPasswordHash = string(hash)

	Notifier = realtime.NewHub()

	r := gin.New()
	api := r.Group("/api")
	api.GET("/menu", ListMenu)
	api.GET("/menu/:id", GetMenuItem)
	menuAdmin := api.Group("/menu")
	menuAdmin.Use(middleware.AuthRequired(), middleware.RoleRequired("admin"))
	{
		menuAdmin.POST("", CreateMenuItem)
		menuAdmin.PUT("/:id", UpdateMenuItem)
		menuAdmin.DELETE("/:id", DeleteMenuItem)
	}
	api.POST("/order", CreateOrder)
	api.GET("/order", ListOrders)
	api.GET("/order/:orderId", GetOrder)
	api.PUT("/order/:orderId/status", UpdateOrderStatus)
	api.PUT("/order/:orderId/receipt", MarkReceiptPrinted)
	api.POST("/payment", ProcessPayment)
	api.POST("/admin/login", Login)
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired("admin"))
	{
		admin.GET("/verify", VerifyToken)
		admin.GET("/dashboard/stats", DashboardStats)
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return v
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := middleware.GenerateToken(testAdminUser, "admin")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

// wsEvent mirrors the broadcast envelope with a raw payload for decoding
type wsEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func receiveEvent(t *testing.T, c *realtime.Client) wsEvent {
	t.Helper()
	select {
	case b := <-c.Receive():
		var ev wsEvent
		if err := json.Unmarshal(b, &ev); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return wsEvent{}
	}
}

func seedMenuItem(t *testing.T, item models.MenuItem) models.MenuItem {
	t.Helper()
	if err := config.DB.Create(&item).Error; err != nil {
		t.Fatalf("seed menu item: %v", err)
	}
	return item
}

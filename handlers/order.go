package handlers

import (
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"kiosk-ordering-api/config"
	"kiosk-ordering-api/models"
	"kiosk-ordering-api/realtime"
	"kiosk-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderLineRequest struct {
	ItemID        string                `json:"itemId"`
	Name          string                `json:"name" binding:"required"`
	Quantity      int                   `json:"quantity"`
	Price         float64               `json:"price"`
	Customization *models.Customization `json:"customization"`
	IsCombo       bool                  `json:"isCombo"`
	ComboItems    []string              `json:"comboItems"`
}

type CreateOrderRequest struct {
	Items         []OrderLineRequest   `json:"items" binding:"required,min=1"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// orderSeq is the monotonically-read order count folded into order
// numbers. Seeded once from the store so the sequence continues across
// restarts; the timestamp+random parts cover the cross-process case.
var (
	orderSeq     atomic.Int64
	orderSeqOnce sync.Once
)

func nextOrderSeq() int64 {
	orderSeqOnce.Do(func() {
		var count int64
		if err := config.DB.Model(&models.Order{}).Count(&count).Error; err != nil {
			log.Printf("order sequence seed: %v", err)
		}
		orderSeq.Store(count)
	})
	return orderSeq.Add(1)
}

func generateOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%04d-%04d", time.Now().UnixMilli(), nextOrderSeq(), rand.Intn(10000))
}

// generateTokenNumber returns a 4-digit code for kitchen call-out.
// Collisions across orders are acceptable; token plus time context
// disambiguates on the counter display.
func generateTokenNumber() string {
	return fmt.Sprintf("%d", 1000+rand.Intn(9000))
}

// estimateTime returns preparation minutes for n lines, clamped to [15,35]
func estimateTime(n int) int {
	est := n*3 + 15
	if est < 15 {
		est = 15
	}
	if est > 35 {
		est = 35
	}
	return est
}

// CreateOrder validates the submitted lines, computes the total
// server-side, persists the order and decrements stock best-effort, then
// fans the new order out to admin and kitchen subscribers.
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order must contain at least one item"})
		return
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentCash
	}
	if !models.ValidPaymentMethod(paymentMethod) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment method"})
		return
	}
	// Kiosk UX is pay-before-submit, so creation defaults to Paid
	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = models.PaymentPaid
	}
	if !models.ValidPaymentStatus(paymentStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment status"})
		return
	}

	// Never trust a client-supplied total: recompute from the lines
	var total float64
	lines := make([]models.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity < 0 || item.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Item quantity and price must be non-negative"})
			return
		}
		qty := item.Quantity
		if qty == 0 {
			qty = 1
		}
		total += item.Price * float64(qty)

		line := models.OrderLine{
			Name:          item.Name,
			Quantity:      qty,
			Price:         item.Price,
			Customization: item.Customization,
			IsCombo:       item.IsCombo,
			ComboItems:    item.ComboItems,
		}
		if item.ItemID != "" {
			id := item.ItemID
			line.ItemID = &id
		}
		lines = append(lines, line)
	}

	order := models.Order{
		ID:            uuid.NewString(),
		OrderNumber:   generateOrderNumber(),
		TokenNumber:   generateTokenNumber(),
		Items:         lines,
		TotalAmount:   total,
		PaymentMethod: paymentMethod,
		PaymentStatus: paymentStatus,
		OrderStatus:   models.StatusPlaced,
		EstimatedTime: estimateTime(len(req.Items)),
	}

	if err := config.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	// Best-effort inventory decrement, floored at zero. A failed line is
	// logged and skipped; it never aborts the order.
	for _, line := range order.Items {
		if line.ItemID == nil {
			continue
		}
		res := config.DB.Model(&models.MenuItem{}).
			Where("id = ?", *line.ItemID).
			Update("stock", gorm.Expr("MAX(stock - ?, 0)", line.Quantity))
		if res.Error != nil {
			log.Printf("inventory decrement for item %s: %v", *line.ItemID, res.Error)
		}
	}

	notify(realtime.EventNewOrder, order, realtime.RoomAdmin, realtime.RoomKitchen)
	notify(realtime.EventDashboardUpdate, gin.H{
		"message": "New order placed - dashboard refresh required",
		"orderId": order.ID,
	}, realtime.RoomAdmin)

	c.JSON(http.StatusCreated, order)
}

// GetOrder returns a single order with its lines
func GetOrder(c *gin.Context) {
	var order models.Order
	if err := config.DB.Preload("Items").First(&order, "id = ?", c.Param("orderId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// ListOrders is the admin view: optional whole-day and payment-status
// filters, newest first, capped at 100.
func ListOrders(c *gin.Context) {
	query := config.DB.Preload("Items")

	if date := c.Query("date"); date != "" {
		day, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		query = query.Where("created_at >= ? AND created_at < ?", day, day.AddDate(0, 0, 1))
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("payment_status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("created_at desc").Limit(100).Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"data": orders, "success": true})
}

// UpdateOrderStatus moves an order through the lifecycle. The transition
// table is enforced server-side; illegal moves are rejected without
// mutating the order.
func UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}
	if !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var order models.Order
	if err := config.DB.Preload("Items").First(&order, "id = ?", c.Param("orderId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := statemachine.CanTransition(order.OrderStatus, req.Status); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":           err.Error(),
			"currentStatus":   order.OrderStatus,
			"requestedStatus": req.Status,
			"validNextStates": statemachine.ValidTransitionsFrom(order.OrderStatus),
		})
		return
	}

	if err := config.DB.Model(&order).Update("order_status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}
	order.OrderStatus = req.Status

	notify(realtime.EventOrderStatusUpdated, order,
		realtime.RoomAdmin, realtime.RoomKitchen, realtime.OrderRoom(order.ID))
	notify(realtime.EventDashboardUpdate, gin.H{
		"message": "Order status updated - dashboard refresh required",
		"orderId": order.ID,
	}, realtime.RoomAdmin)

	c.JSON(http.StatusOK, order)
}

// MarkReceiptPrinted flips receiptPrinted once; repeat calls are no-ops
func MarkReceiptPrinted(c *gin.Context) {
	var order models.Order
	if err := config.DB.Preload("Items").First(&order, "id = ?", c.Param("orderId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if !order.ReceiptPrinted {
		if err := config.DB.Model(&order).Update("receipt_printed", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update receipt status"})
			return
		}
		order.ReceiptPrinted = true
	}
	c.JSON(http.StatusOK, order)
}

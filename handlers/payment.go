package handlers

import (
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"kiosk-ordering-api/models"

	"github.com/gin-gonic/gin"
)

type PaymentRequest struct {
	Amount        float64              `json:"amount"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
}

// gatewayDelay simulates payment-network latency; overridden in tests
var gatewayDelay = func() {
	time.Sleep(time.Second + time.Duration(rand.Intn(1000))*time.Millisecond)
}

const txnRefChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func transactionID() string {
	var b strings.Builder
	for i := 0; i < 9; i++ {
		b.WriteByte(txnRefChars[rand.Intn(len(txnRefChars))])
	}
	return fmt.Sprintf("TXN-%d-%s", time.Now().UnixMilli(), b.String())
}

// ProcessPayment is a simulated gateway with a ~90% success rate. It is a
// stand-in collaborator only and must be swapped for a real integration
// before production use.
func ProcessPayment(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}
	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}

	gatewayDelay()

	if rand.Float64() > 0.1 {
		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"transactionId": transactionID(),
			"amount":        req.Amount,
			"paymentMethod": req.PaymentMethod,
			"message":       "Payment successful",
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   "Payment failed. Please try again.",
		"message": "Payment gateway error",
	})
}

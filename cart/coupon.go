package cart

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

type CouponType string

const (
	CouponPercentage CouponType = "percentage"
	CouponFlat       CouponType = "flat"
)

type Coupon struct {
	Code        string     `json:"code"`
	Type        CouponType `json:"type"`
	Value       float64    `json:"value"`
	Description string     `json:"description"`
	MinAmount   float64    `json:"minAmount"`
}

// Coupons is the catalog of codes the kiosk accepts
var Coupons = map[string]Coupon{
	"WELCOME10": {
		Code:        "WELCOME10",
		Type:        CouponPercentage,
		Value:       10,
		Description: "10% off on your first order",
		MinAmount:   100,
	},
	"FLAT50": {
		Code:        "FLAT50",
		Type:        CouponFlat,
		Value:       50,
		Description: "Flat ₹50 off",
		MinAmount:   200,
	},
	"SAVE20": {
		Code:        "SAVE20",
		Type:        CouponPercentage,
		Value:       20,
		Description: "20% off on orders above ₹500",
		MinAmount:   500,
	},
	"HAPPY100": {
		Code:        "HAPPY100",
		Type:        CouponFlat,
		Value:       100,
		Description: "₹100 off on orders above ₹1000",
		MinAmount:   1000,
	},
}

var ErrInvalidCoupon = errors.New("invalid coupon code")

// ValidateCoupon resolves a code and checks the minimum-order gate
// against the given subtotal.
func ValidateCoupon(code string, subtotal float64) (Coupon, error) {
	coupon, ok := Coupons[strings.ToUpper(code)]
	if !ok {
		return Coupon{}, ErrInvalidCoupon
	}
	if subtotal < coupon.MinAmount {
		return Coupon{}, fmt.Errorf("minimum order amount of ₹%.0f required", coupon.MinAmount)
	}
	return coupon, nil
}

// Discount returns the reduction for a subtotal; percentage coupons round
// to the nearest whole currency unit.
func (cp Coupon) Discount(subtotal float64) float64 {
	if cp.Type == CouponPercentage {
		return math.Round(subtotal * cp.Value / 100)
	}
	return cp.Value
}

package models

import "time"

// OrderStatus is the canonical five-state order lifecycle
type OrderStatus string

const (
	StatusPlaced    OrderStatus = "Placed"
	StatusPreparing OrderStatus = "Preparing"
	StatusReady     OrderStatus = "Ready"
	StatusDelivered OrderStatus = "Delivered"
	StatusCancelled OrderStatus = "Cancelled"
)

var validStatuses = map[OrderStatus]bool{
	StatusPlaced:    true,
	StatusPreparing: true,
	StatusReady:     true,
	StatusDelivered: true,
	StatusCancelled: true,
}

// ValidStatus reports whether s is one of the five order states
func ValidStatus(s OrderStatus) bool {
	return validStatuses[s]
}

// IsTerminal reports whether no further transitions are possible
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "Cash"
	PaymentCard PaymentMethod = "Card"
	PaymentUPI  PaymentMethod = "UPI"
)

var validPaymentMethods = map[PaymentMethod]bool{
	PaymentCash: true,
	PaymentCard: true,
	PaymentUPI:  true,
}

func ValidPaymentMethod(m PaymentMethod) bool {
	return validPaymentMethods[m]
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentFailed  PaymentStatus = "Failed"
)

var validPaymentStatuses = map[PaymentStatus]bool{
	PaymentPending: true,
	PaymentPaid:    true,
	PaymentFailed:  true,
}

func ValidPaymentStatus(s PaymentStatus) bool {
	return validPaymentStatuses[s]
}

type Order struct {
	ID             string        `json:"id" gorm:"primaryKey"`
	OrderNumber    string        `json:"orderNumber" gorm:"uniqueIndex;not null"`
	TokenNumber    string        `json:"tokenNumber"` // 4-digit counter call-out, not an identity
	Items          []OrderLine   `json:"items" gorm:"foreignKey:OrderID"`
	TotalAmount    float64       `json:"totalAmount" gorm:"not null"`
	PaymentMethod  PaymentMethod `json:"paymentMethod" gorm:"not null"`
	PaymentStatus  PaymentStatus `json:"paymentStatus" gorm:"not null"`
	OrderStatus    OrderStatus   `json:"orderStatus" gorm:"not null"`
	ReceiptPrinted bool          `json:"receiptPrinted"`
	EstimatedTime  int           `json:"estimatedTime"` // minutes
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// Customization carries the per-line options chosen on the kiosk
type Customization struct {
	Size   string   `json:"size,omitempty"`
	AddOns []string `json:"addOns,omitempty"`
	Notes  string   `json:"notes,omitempty"`
}

// OrderLine snapshots name and price at order time; ItemID is nil for
// combo/ad-hoc lines with no catalog reference
type OrderLine struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	OrderID       string         `json:"order_id" gorm:"not null;index"`
	ItemID        *string        `json:"itemId"`
	Name          string         `json:"name" gorm:"not null"`
	Quantity      int            `json:"quantity" gorm:"not null"`
	Price         float64        `json:"price" gorm:"not null"`
	Customization *Customization `json:"customization,omitempty" gorm:"serializer:json"`
	IsCombo       bool           `json:"isCombo"`
	ComboItems    []string       `json:"comboItems,omitempty" gorm:"serializer:json"`
}

// Package cart is the kiosk-local side of checkout: cart lines, coupons,
// loyalty points and favorites persisted to a per-kiosk file. None of it
// is server state — once an order is created its totalAmount is
// authoritative and nothing here can change it.
package cart

import (
	"bytes"
	"encoding/json"
	"log"
	"os"
	"sync"

	"kiosk-ordering-api/handlers"
	"kiosk-ordering-api/models"

	"github.com/google/uuid"
)

// Line is one cart entry. LineID is generated locally so the same menu
// item with different customizations becomes separate lines.
type Line struct {
	LineID        string                `json:"lineId"`
	ItemID        string                `json:"itemId,omitempty"`
	Name          string                `json:"name"`
	Price         float64               `json:"price"`
	Quantity      int                   `json:"quantity"`
	Customization *models.Customization `json:"customization,omitempty"`
	IsCombo       bool                  `json:"isCombo,omitempty"`
	ComboItems    []string              `json:"comboItems,omitempty"`
}

type cartState struct {
	Lines  []Line  `json:"items"`
	Coupon *Coupon `json:"coupon,omitempty"`
}

// Cart holds the in-progress order. Every mutation is written back to the
// backing file; a missing or corrupt file just means an empty cart.
type Cart struct {
	mu          sync.Mutex
	path        string
	state       cartState
	lastRemoved *Line
}

// Load opens the cart persisted at path. An empty path keeps the cart
// in memory only.
func Load(path string) *Cart {
	c := &Cart{path: path}
	if path == "" {
		return c
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c
	}
	if err := json.Unmarshal(data, &c.state); err != nil {
		c.state = cartState{}
	}
	return c
}

func (c *Cart) save() {
	if c.path == "" {
		return
	}
	data, err := json.MarshalIndent(c.state, "", "  ")
	if err != nil {
		log.Printf("cart: marshal: %v", err)
		return
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		log.Printf("cart: save: %v", err)
	}
}

func sameCustomization(a, b *models.Customization) bool {
	ab, _ := json.Marshal(a)
	bb, _ := json.Marshal(b)
	return bytes.Equal(ab, bb)
}

// Add puts one unit of a menu item in the cart, merging with an existing
// line only when the customization matches exactly.
func (c *Cart) Add(item models.MenuItem, customization *models.Customization) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.state.Lines {
		line := &c.state.Lines[i]
		if line.ItemID == item.ID && sameCustomization(line.Customization, customization) {
			line.Quantity++
			c.save()
			return
		}
	}
	c.state.Lines = append(c.state.Lines, Line{
		LineID:        uuid.NewString(),
		ItemID:        item.ID,
		Name:          item.Name,
		Price:         item.Price,
		Quantity:      1,
		Customization: customization,
	})
	c.save()
}

// AddCombo puts a bundled deal in the cart as a single priced line with
// no catalog reference.
func (c *Cart) AddCombo(name string, price float64, comboItems []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Lines = append(c.state.Lines, Line{
		LineID:     uuid.NewString(),
		Name:       name,
		Price:      price,
		Quantity:   1,
		IsCombo:    true,
		ComboItems: comboItems,
	})
	c.save()
}

// Remove deletes a line, remembering it for UndoRemove
func (c *Cart) Remove(lineID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.state.Lines {
		if c.state.Lines[i].LineID == lineID {
			removed := c.state.Lines[i]
			c.lastRemoved = &removed
			c.state.Lines = append(c.state.Lines[:i], c.state.Lines[i+1:]...)
			c.save()
			return
		}
	}
}

// UndoRemove restores the most recently removed line
func (c *Cart) UndoRemove() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastRemoved == nil {
		return
	}
	c.state.Lines = append(c.state.Lines, *c.lastRemoved)
	c.lastRemoved = nil
	c.save()
}

// UpdateQuantity sets a line's quantity; zero or less removes the line
func (c *Cart) UpdateQuantity(lineID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.state.Lines {
		if c.state.Lines[i].LineID == lineID {
			if quantity <= 0 {
				c.state.Lines = append(c.state.Lines[:i], c.state.Lines[i+1:]...)
			} else {
				c.state.Lines[i].Quantity = quantity
			}
			c.save()
			return
		}
	}
}

// Lines returns a copy of the current cart lines
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.state.Lines))
	copy(out, c.state.Lines)
	return out
}

// Subtotal is the sum of price times quantity over all lines
func (c *Cart) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subtotalLocked()
}

func (c *Cart) subtotalLocked() float64 {
	var sum float64
	for _, line := range c.state.Lines {
		sum += line.Price * float64(line.Quantity)
	}
	return sum
}

// ApplyCoupon validates the code against the current subtotal and
// attaches it to the cart.
func (c *Cart) ApplyCoupon(code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	coupon, err := ValidateCoupon(code, c.subtotalLocked())
	if err != nil {
		return err
	}
	c.state.Coupon = &coupon
	c.save()
	return nil
}

// RemoveCoupon detaches any applied coupon
func (c *Cart) RemoveCoupon() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Coupon = nil
	c.save()
}

// Coupon returns the currently applied coupon, if any
func (c *Cart) Coupon() *Coupon {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Coupon
}

// Discount is the coupon reduction against the current subtotal
func (c *Cart) Discount() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Coupon == nil {
		return 0
	}
	return c.state.Coupon.Discount(c.subtotalLocked())
}

// Total is the amount due: subtotal less any coupon discount
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := c.subtotalLocked()
	if c.state.Coupon != nil {
		total -= c.state.Coupon.Discount(total)
	}
	return total
}

// Clear empties the cart and drops coupon and undo state
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = cartState{}
	c.lastRemoved = nil
	c.save()
}

// Checkout flattens the cart into the create-order request submitted to
// the ordering service. The server recomputes the total from the lines.
func (c *Cart) Checkout(method models.PaymentMethod) handlers.CreateOrderRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]handlers.OrderLineRequest, 0, len(c.state.Lines))
	for _, line := range c.state.Lines {
		items = append(items, handlers.OrderLineRequest{
			ItemID:        line.ItemID,
			Name:          line.Name,
			Quantity:      line.Quantity,
			Price:         line.Price,
			Customization: line.Customization,
			IsCombo:       line.IsCombo,
			ComboItems:    line.ComboItems,
		})
	}
	return handlers.CreateOrderRequest{
		Items:         items,
		PaymentMethod: method,
		PaymentStatus: models.PaymentPaid,
	}
}

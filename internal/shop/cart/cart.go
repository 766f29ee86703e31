// Package cart implements the per-session shopping cart and its WhatsApp checkout.
package cart

import (
	"github.com/food-punch-karachi/server/internal/shop/catalog"
)

// DeliveryFee is charged once per non-empty order, in rupees.
const DeliveryFee = 150

// Line is one item in the cart.
type Line struct {
	Item     catalog.Item `json:"item"`
	Quantity int          `json:"quantity"`
}

// Cart is an ordered list of lines plus whether the cart view is open.
type Cart struct {
	Lines []Line `json:"lines"`
	Open  bool   `json:"open"`
}

// Add increments the line for item, appending a new line with quantity 1 when absent.
func (c *Cart) Add(item catalog.Item) {
	for i := range c.Lines {
		if c.Lines[i].Item.ID == item.ID {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, Line{Item: item, Quantity: 1})
}

// UpdateQuantity shifts the quantity of the line by delta, never below 1.
// It reports whether the line exists.
func (c *Cart) UpdateQuantity(itemID string, delta int) bool {
	for i := range c.Lines {
		if c.Lines[i].Item.ID == itemID {
			c.Lines[i].Quantity = max(1, c.Lines[i].Quantity+delta)
			return true
		}
	}
	return false
}

// Remove drops the line for itemID and reports whether it existed.
func (c *Cart) Remove(itemID string) bool {
	for i := range c.Lines {
		if c.Lines[i].Item.ID == itemID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// Quantity returns the quantity of itemID, 0 when absent.
func (c *Cart) Quantity(itemID string) int {
	for _, l := range c.Lines {
		if l.Item.ID == itemID {
			return l.Quantity
		}
	}
	return 0
}

func (c *Cart) TotalItems() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Subtotal() int {
	sum := 0
	for _, l := range c.Lines {
		sum += l.Item.Price * l.Quantity
	}
	return sum
}

func (c *Cart) DeliveryFee() int {
	if len(c.Lines) == 0 {
		return 0
	}
	return DeliveryFee
}

func (c *Cart) Total() int {
	return c.Subtotal() + c.DeliveryFee()
}

// Clone returns a deep copy safe to hand out of a store.
func (c *Cart) Clone() *Cart {
	out := &Cart{Open: c.Open, Lines: make([]Line, len(c.Lines))}
	copy(out.Lines, c.Lines)
	return out
}

// Summary is the cart as presented to clients, totals included.
type Summary struct {
	Lines       []Line `json:"lines"`
	Open        bool   `json:"open"`
	TotalItems  int    `json:"totalItems"`
	Subtotal    int    `json:"subtotal"`
	DeliveryFee int    `json:"deliveryFee"`
	Total       int    `json:"total"`
}

func (c *Cart) Summary() Summary {
	lines := c.Lines
	if lines == nil {
		lines = []Line{}
	}
	return Summary{
		Lines:       lines,
		Open:        c.Open,
		TotalItems:  c.TotalItems(),
		Subtotal:    c.Subtotal(),
		DeliveryFee: c.DeliveryFee(),
		Total:       c.Total(),
	}
}

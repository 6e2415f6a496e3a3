// Package cart holds the transient basket a customer fills while browsing.
// Nothing here touches storage; a cart becomes persistent only when it is
// checked out as an order.
package cart

import "restaurant-service/internal/domain"

type Line struct {
	MenuItemID uint64 `json:"id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	Quantity   int    `json:"quantity"`
	Image      string `json:"image,omitempty"`
}

type Cart struct {
	lines []Line
}

func New(lines ...Line) *Cart {
	c := &Cart{}
	for _, l := range lines {
		c.Add(l)
	}
	return c
}

// Add appends the line, or increases the quantity when the menu item is
// already in the cart.
func (c *Cart) Add(l Line) {
	for i := range c.lines {
		if c.lines[i].MenuItemID == l.MenuItemID {
			c.lines[i].Quantity += l.Quantity
			return
		}
	}
	c.lines = append(c.lines, l)
}

// UpdateQuantity sets the quantity of an existing line. A quantity below one
// removes the line.
func (c *Cart) UpdateQuantity(menuItemID uint64, quantity int) {
	if quantity < 1 {
		c.Remove(menuItemID)
		return
	}
	for i := range c.lines {
		if c.lines[i].MenuItemID == menuItemID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

func (c *Cart) Remove(menuItemID uint64) {
	out := c.lines[:0]
	for _, l := range c.lines {
		if l.MenuItemID != menuItemID {
			out = append(out, l)
		}
	}
	c.lines = out
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.Price * int64(l.Quantity)
	}
	return total
}

// OrderItems snapshots the cart lines as order items.
func (c *Cart) OrderItems() []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(c.lines))
	for _, l := range c.lines {
		items = append(items, domain.OrderItem{
			MenuItemID: l.MenuItemID,
			Quantity:   l.Quantity,
			Price:      l.Price,
			Name:       l.Name,
		})
	}
	return items
}

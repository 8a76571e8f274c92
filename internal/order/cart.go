package order

import (
	"fmt"
	"strings"

	"github.com/littlelemon/tablebook/internal/internaltypes"
)

type Type string

const (
	Delivery Type = "delivery"
	Pickup   Type = "pickup"
)

func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case Delivery:
		return Delivery, nil
	case Pickup:
		return Pickup, nil
	}
	return "", fmt.Errorf("order type %q: %w", s, internaltypes.ErrInvalidInput)
}

// Line is one aggregated cart entry for a distinct menu item.
type Line struct {
	ItemID    int    `json:"itemId"`
	Name      string `json:"name"`
	UnitPrice Money  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
}

func (l Line) Subtotal() Money { return l.UnitPrice.Times(l.Quantity) }

// Cart keeps one line per item in first-insertion order. The zero value is
// an empty delivery cart. It is not safe for concurrent use.
type Cart struct {
	typ   Type
	lines []Line
	index map[int]int
}

func NewCart() *Cart {
	return &Cart{typ: Delivery, index: map[int]int{}}
}

// FromLines rebuilds a cart, merging repeated ids and dropping lines with
// quantity below one.
func FromLines(typ Type, lines []Line) *Cart {
	c := NewCart()
	if typ == Pickup {
		c.typ = Pickup
	}
	for _, l := range lines {
		if l.Quantity < 1 {
			continue
		}
		if i, ok := c.index[l.ItemID]; ok {
			c.lines[i].Quantity += l.Quantity
			continue
		}
		c.index[l.ItemID] = len(c.lines)
		c.lines = append(c.lines, l)
	}
	return c
}

func (c *Cart) Type() Type {
	if c.typ == "" {
		return Delivery
	}
	return c.typ
}

func (c *Cart) SetType(t Type) { c.typ = t }

// AddItem adds one unit of item.
func (c *Cart) AddItem(item MenuItem) {
	if i, ok := c.index[item.ID]; ok {
		c.lines[i].Quantity++
		return
	}
	if c.index == nil {
		c.index = map[int]int{}
	}
	c.index[item.ID] = len(c.lines)
	c.lines = append(c.lines, Line{ItemID: item.ID, Name: item.Name, UnitPrice: item.Price, Quantity: 1})
}

// UpdateQuantity sets the quantity of a line; anything below one removes it.
// Unknown ids are ignored.
func (c *Cart) UpdateQuantity(itemID, quantity int) {
	if quantity < 1 {
		c.RemoveItem(itemID)
		return
	}
	if i, ok := c.index[itemID]; ok {
		c.lines[i].Quantity = quantity
	}
}

func (c *Cart) RemoveItem(itemID int) {
	i, ok := c.index[itemID]
	if !ok {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	delete(c.index, itemID)
	for j := i; j < len(c.lines); j++ {
		c.index[c.lines[j].ItemID] = j
	}
}

func (c *Cart) Clear() {
	c.lines = nil
	c.index = map[int]int{}
}

func (c *Cart) Lines() []Line {
	return append([]Line(nil), c.lines...)
}

func (c *Cart) Line(itemID int) (Line, bool) {
	i, ok := c.index[itemID]
	if !ok {
		return Line{}, false
	}
	return c.lines[i], true
}

func (c *Cart) Len() int { return len(c.lines) }

func (c *Cart) Empty() bool { return len(c.lines) == 0 }

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Total() Money {
	var total Money
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

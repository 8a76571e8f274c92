package order

import (
	"errors"
	"testing"

	"github.com/littlelemon/tablebook/internal/internaltypes"
)

var (
	salad  = MenuItem{ID: 1, Name: "Greek Salad", Price: 1299}
	bread  = MenuItem{ID: 2, Name: "Bruschetta", Price: 999}
	sorbet = MenuItem{ID: 6, Name: "Lemon Sorbet", Price: 699}
)

func lineIDs(c *Cart) []int {
	var ids []int
	for _, l := range c.Lines() {
		ids = append(ids, l.ItemID)
	}
	return ids
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAddItemTwice(t *testing.T) {
	c := NewCart()
	c.AddItem(salad)
	c.AddItem(salad)

	if c.Len() != 1 {
		t.Fatalf("expected one line, got %d", c.Len())
	}
	l, ok := c.Line(salad.ID)
	if !ok || l.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %+v", l)
	}
	if c.Total() != 2*salad.Price {
		t.Fatalf("expected total %v, got %v", 2*salad.Price, c.Total())
	}
}

func TestAddItemKeepsInsertionOrder(t *testing.T) {
	c := NewCart()
	c.AddItem(bread)
	c.AddItem(salad)
	c.AddItem(bread)
	c.AddItem(sorbet)

	if got := lineIDs(c); !equalInts(got, []int{2, 1, 6}) {
		t.Fatalf("unexpected order %v", got)
	}
	if c.Count() != 4 {
		t.Fatalf("expected 4 units, got %d", c.Count())
	}
}

func TestUpdateQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		expected []int
		qty      int
	}{
		{name: "setHigher", quantity: 5, expected: []int{1, 2}, qty: 5},
		{name: "setOne", quantity: 1, expected: []int{1, 2}, qty: 1},
		{name: "zeroRemoves", quantity: 0, expected: []int{2}},
		{name: "negativeRemoves", quantity: -3, expected: []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCart()
			c.AddItem(salad)
			c.AddItem(bread)
			c.UpdateQuantity(salad.ID, tt.quantity)

			if got := lineIDs(c); !equalInts(got, tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, got)
			}
			if tt.qty > 0 {
				l, _ := c.Line(salad.ID)
				if l.Quantity != tt.qty {
					t.Fatalf("expected quantity %d, got %d", tt.qty, l.Quantity)
				}
			}
		})
	}
}

func TestUpdateQuantityZeroEqualsRemove(t *testing.T) {
	build := func() *Cart {
		c := NewCart()
		c.AddItem(salad)
		c.AddItem(bread)
		c.AddItem(sorbet)
		c.AddItem(bread)
		return c
	}

	a := build()
	a.UpdateQuantity(bread.ID, 0)
	b := build()
	b.RemoveItem(bread.ID)

	la, lb := a.Lines(), b.Lines()
	if len(la) != len(lb) {
		t.Fatalf("line counts differ: %v vs %v", la, lb)
	}
	for i := range la {
		if la[i] != lb[i] {
			t.Fatalf("lines differ at %d: %+v vs %+v", i, la[i], lb[i])
		}
	}
	if a.Total() != b.Total() {
		t.Fatalf("totals differ: %v vs %v", a.Total(), b.Total())
	}

	a.AddItem(bread)
	if got := lineIDs(a); !equalInts(got, []int{1, 6, 2}) {
		t.Fatalf("index out of sync after removal: %v", got)
	}
}

func TestUpdateQuantityUnknownID(t *testing.T) {
	c := NewCart()
	c.AddItem(salad)
	c.UpdateQuantity(99, 3)
	if c.Len() != 1 || c.Count() != 1 {
		t.Fatalf("unknown id must be a no-op, got %+v", c.Lines())
	}
}

func TestRemoveItem(t *testing.T) {
	c := NewCart()
	c.RemoveItem(salad.ID)
	if !c.Empty() {
		t.Fatal("remove on empty cart must be a no-op")
	}

	c.AddItem(salad)
	c.RemoveItem(salad.ID)
	if !c.Empty() || c.Len() != 0 {
		t.Fatalf("expected empty cart, got %+v", c.Lines())
	}
	if c.Total() != 0 {
		t.Fatalf("expected zero total, got %v", c.Total())
	}
}

func TestTotal(t *testing.T) {
	c := NewCart()
	if c.Total() != 0 {
		t.Fatalf("empty cart total must be 0, got %v", c.Total())
	}

	c.AddItem(salad)
	c.AddItem(bread)
	c.UpdateQuantity(bread.ID, 3)
	want := salad.Price + 3*bread.Price
	if c.Total() != want {
		t.Fatalf("expected %v, got %v", want, c.Total())
	}

	c.UpdateQuantity(bread.ID, 1)
	if c.Total() != salad.Price+bread.Price {
		t.Fatalf("total not recomputed after update: %v", c.Total())
	}
}

func TestLinesReturnsCopy(t *testing.T) {
	c := NewCart()
	c.AddItem(salad)
	lines := c.Lines()
	lines[0].Quantity = 40
	if l, _ := c.Line(salad.ID); l.Quantity != 1 {
		t.Fatal("Lines must not expose internal state")
	}
}

func TestFromLines(t *testing.T) {
	c := FromLines(Pickup, []Line{
		{ItemID: 1, Name: "Greek Salad", UnitPrice: 1299, Quantity: 1},
		{ItemID: 2, Name: "Bruschetta", UnitPrice: 999, Quantity: 0},
		{ItemID: 6, Name: "Lemon Sorbet", UnitPrice: 699, Quantity: 2},
		{ItemID: 1, Name: "Greek Salad", UnitPrice: 1299, Quantity: 2},
	})
	if c.Type() != Pickup {
		t.Fatalf("expected pickup, got %s", c.Type())
	}
	if got := lineIDs(c); !equalInts(got, []int{1, 6}) {
		t.Fatalf("unexpected lines %v", got)
	}
	if l, _ := c.Line(1); l.Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %d", l.Quantity)
	}

	if FromLines("bogus", nil).Type() != Delivery {
		t.Fatal("unknown type must default to delivery")
	}
}

func TestClear(t *testing.T) {
	c := NewCart()
	c.AddItem(salad)
	c.Clear()
	c.AddItem(bread)
	if got := lineIDs(c); !equalInts(got, []int{2}) {
		t.Fatalf("unexpected lines after clear %v", got)
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{in: "delivery", want: Delivery},
		{in: " Pickup ", want: Pickup},
		{in: "drive-thru", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.in)
		if tt.wantErr {
			if !errors.Is(err, internaltypes.ErrInvalidInput) {
				t.Fatalf("%q: expected ErrInvalidInput, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("%q: expected %s, got %s (%v)", tt.in, tt.want, got, err)
		}
	}
}

func TestZeroValueCart(t *testing.T) {
	menu := DefaultMenu()
	var c Cart
	if c.Type() != Delivery || !c.Empty() || c.Total() != 0 {
		t.Fatalf("zero cart should be an empty delivery cart, got %s %d %s", c.Type(), c.Len(), c.Total())
	}

	c.UpdateQuantity(menu[0].ID, 3)
	c.RemoveItem(menu[0].ID)
	c.AddItem(menu[0])
	c.AddItem(menu[0])
	c.AddItem(menu[1])
	if c.Len() != 2 || c.Count() != 3 {
		t.Fatalf("expected 2 lines and 3 units, got %d and %d", c.Len(), c.Count())
	}
	if want := menu[0].Price.Times(2) + menu[1].Price; c.Total() != want {
		t.Fatalf("expected %s, got %s", want, c.Total())
	}
	c.RemoveItem(menu[0].ID)
	if l, ok := c.Line(menu[1].ID); !ok || l.Quantity != 1 {
		t.Fatalf("expected remaining line for item %d, got %+v", menu[1].ID, l)
	}
}

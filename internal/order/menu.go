package order

import (
	"fmt"

	"github.com/littlelemon/tablebook/internal/internaltypes"
)

type MenuItem struct {
	ID          int    `json:"id"`
	Category    string `json:"category"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Money  `json:"-"`
}

type Menu []MenuItem

func DefaultMenu() Menu {
	return Menu{
		{ID: 1, Category: "Starters", Name: "Greek Salad", Description: "Fresh tomatoes, cucumbers, olives, and feta cheese", Price: 1299},
		{ID: 2, Category: "Starters", Name: "Bruschetta", Description: "Grilled bread with tomatoes, garlic, and herbs", Price: 999},
		{ID: 3, Category: "Main Courses", Name: "Grilled Sea Bass", Description: "Fresh sea bass with Mediterranean herbs and lemon", Price: 2899},
		{ID: 4, Category: "Main Courses", Name: "Lamb Chops", Description: "Grilled lamb chops with rosemary and garlic", Price: 3299},
		{ID: 5, Category: "Desserts", Name: "Baklava", Description: "Traditional phyllo pastry with nuts and honey", Price: 899},
		{ID: 6, Category: "Desserts", Name: "Lemon Sorbet", Description: "Refreshing homemade lemon sorbet", Price: 699},
	}
}

func (m Menu) Find(id int) (MenuItem, error) {
	for _, it := range m {
		if it.ID == id {
			return it, nil
		}
	}
	return MenuItem{}, fmt.Errorf("menu item %d: %w", id, internaltypes.ErrNotFound)
}

// Categories returns category names in menu order.
func (m Menu) Categories() []string {
	var out []string
	seen := map[string]bool{}
	for _, it := range m {
		if !seen[it.Category] {
			seen[it.Category] = true
			out = append(out, it.Category)
		}
	}
	return out
}

func (m Menu) InCategory(category string) []MenuItem {
	var out []MenuItem
	for _, it := range m {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

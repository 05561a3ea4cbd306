// Package shopping derives a consolidated shopping list from a weekly meal
// plan: unit normalization, ingredient aggregation, category classification,
// list generation, and checklist state.
package shopping

import "time"

// ShoppingItem is one aggregated line of a shopping list.
type ShoppingItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Amount      float64  `json:"amount"`
	Unit        string   `json:"unit"`
	Category    string   `json:"category"`
	Checked     bool     `json:"checked"`
	FromRecipes []string `json:"fromRecipes"`

	mergeKey string
}

// ShoppingList is the derived list for one meal plan. It is rebuildable at
// any time; rebuilding replaces the item set.
type ShoppingList struct {
	ID            string         `json:"id"`
	MealPlanID    string         `json:"mealPlanId"`
	WeekStartDate string         `json:"weekStartDate"`
	Items         []ShoppingItem `json:"items"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// Clone returns a deep copy of the list.
func (l *ShoppingList) Clone() *ShoppingList {
	out := *l
	out.Items = make([]ShoppingItem, len(l.Items))
	for i, item := range l.Items {
		ci := item
		ci.FromRecipes = append([]string(nil), item.FromRecipes...)
		out.Items[i] = ci
	}
	return &out
}

// Item returns a pointer to the item with the given id, or nil.
func (l *ShoppingList) Item(id string) *ShoppingItem {
	for i := range l.Items {
		if l.Items[i].ID == id {
			return &l.Items[i]
		}
	}
	return nil
}

// Progress reports checked and total counts. Ratio is 0 for an empty list.
func (l *ShoppingList) Progress() (checked, total int, ratio float64) {
	total = len(l.Items)
	for _, item := range l.Items {
		if item.Checked {
			checked++
		}
	}
	if total == 0 {
		return 0, 0, 0
	}
	return checked, total, float64(checked) / float64(total)
}

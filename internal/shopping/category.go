package shopping

import (
	"sort"
	"strings"
)

// CategoryOrder is the fixed display priority for shopping categories.
// Categories outside this list sort after all of them, alphabetically; items
// within a category keep first-seen order.
var CategoryOrder = []string{"produce", "dairy", "meat", "pantry", "spices", "frozen", "other"}

// categoryLexicons pair each category with its keyword list. Order matters:
// the first matching category wins, so "chili sauce" is spices before it is
// pantry.
var categoryLexicons = []struct {
	category string
	keywords []string
}{
	{"produce", []string{
		"lettuce", "tomato", "onion", "garlic", "carrot", "celery",
		"pepper", "cucumber", "zucchini", "broccoli", "spinach",
		"kale", "cabbage", "mushroom", "potato", "avocado", "lemon",
		"lime", "orange", "apple", "banana", "berry", "basil",
		"cilantro", "parsley", "arugula",
	}},
	{"dairy", []string{
		"milk", "cream", "cheese", "butter", "yogurt", "sour cream",
		"parmesan", "mozzarella", "cheddar", "feta",
	}},
	{"meat", []string{
		"chicken", "beef", "pork", "turkey", "lamb", "fish", "salmon",
		"tuna", "shrimp", "bacon", "sausage", "ham",
	}},
	{"spices", []string{
		"salt", "cumin", "paprika", "oregano", "thyme",
		"cinnamon", "nutmeg", "ginger", "curry", "chili", "cayenne",
		"turmeric", "coriander", "bay leaf", "vanilla",
	}},
	{"frozen", []string{"frozen", "ice cream", "popsicle"}},
	{"pantry", []string{
		"flour", "sugar", "rice", "pasta", "bread", "oil", "vinegar",
		"sauce", "stock", "broth", "bean", "chickpea", "lentil",
		"honey", "maple", "peanut butter", "jam",
	}},
}

// Classify assigns a shopping category to an item. A non-empty category hint
// from the source recipe is trusted as-is; otherwise the normalized name is
// matched against the keyword lexicons, falling back to "other". Pure and
// deterministic.
func Classify(item ShoppingItem) string {
	if item.Category != "" {
		return item.Category
	}
	name := strings.ToLower(item.Name)
	for _, lex := range categoryLexicons {
		for _, kw := range lex.keywords {
			if strings.Contains(name, kw) {
				return lex.category
			}
		}
	}
	return "other"
}

// categoryRank orders categories for display: the priority list first, then
// everything else after it.
func categoryRank(category string) int {
	for i, c := range CategoryOrder {
		if c == category {
			return i
		}
	}
	return len(CategoryOrder)
}

// CategoryGroup is one display section of a shopping list.
type CategoryGroup struct {
	Category string
	Items    []ShoppingItem
}

// Grouped partitions items by category in display order. Unknown categories
// come after the known ones, alphabetically.
func Grouped(items []ShoppingItem) []CategoryGroup {
	byCategory := map[string][]ShoppingItem{}
	var categories []string
	for _, item := range items {
		if _, seen := byCategory[item.Category]; !seen {
			categories = append(categories, item.Category)
		}
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}
	sort.SliceStable(categories, func(i, j int) bool {
		ri, rj := categoryRank(categories[i]), categoryRank(categories[j])
		if ri != rj {
			return ri < rj
		}
		return categories[i] < categories[j]
	})
	groups := make([]CategoryGroup, 0, len(categories))
	for _, c := range categories {
		groups = append(groups, CategoryGroup{Category: c, Items: byCategory[c]})
	}
	return groups
}

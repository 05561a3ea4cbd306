package shopping

import (
	"strings"

	"mealmind/internal/plan"
)

// nameModifiers are preparation or quality prefixes stripped before merging,
// so "fresh chopped basil" and "basil" land on one line.
var nameModifiers = []string{
	"fresh ", "frozen ", "dried ", "canned ",
	"chopped ", "diced ", "minced ", "sliced ", "grated ", "shredded ",
	"peeled ", "unpeeled ", "whole ", "halved ", "quartered ",
	"cooked ", "uncooked ", "raw ", "roasted ",
	"boneless ", "skinless ", "bone-in ",
	"organic ", "free-range ", "grass-fed ",
	"unsalted ", "salted ", "sweetened ", "unsweetened ",
	"extra virgin ", "virgin ", "refined ",
	"large ", "medium ", "small ", "baby ",
}

// singularNames maps common plural ingredient names to their singular form.
var singularNames = map[string]string{
	"eggs": "egg", "onions": "onion", "tomatoes": "tomato",
	"potatoes": "potato", "sweet potatoes": "sweet potato",
	"carrots": "carrot", "cloves": "clove", "bananas": "banana",
	"apples": "apple", "berries": "berry", "beans": "bean",
	"green beans": "green bean", "chickpeas": "chickpea",
	"lentils": "lentil", "peppers": "pepper",
	"bell peppers": "bell pepper", "mushrooms": "mushroom",
	"zucchinis": "zucchini", "cucumbers": "cucumber",
	"avocados": "avocado", "lemons": "lemon", "limes": "lime",
	"oranges": "orange", "strawberries": "strawberry",
	"blueberries": "blueberry", "raspberries": "raspberry",
}

// NormalizeName canonicalizes an ingredient name for merging: lower-case,
// trim, drop leading quantity tokens left over from extraction, strip
// preparation modifiers, and collapse common plurals.
func NormalizeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))

	// Drop leading quantity tokens ("2 cups flour" should not have reached
	// the name field, but extraction is unreliable).
	fields := strings.Fields(n)
	for len(fields) > 0 && isQuantityToken(fields[0]) {
		fields = fields[1:]
	}
	n = strings.Join(fields, " ")

	for _, mod := range nameModifiers {
		n = strings.ReplaceAll(n, mod, "")
	}
	n = strings.Join(strings.Fields(n), " ")

	if singular, ok := singularNames[n]; ok {
		return singular
	}
	return n
}

func isQuantityToken(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if (r < '0' || r > '9') && r != '.' && r != '/' && r != '-' && r != '½' && r != '¼' && r != '¾' {
			return false
		}
	}
	return true
}

// MergeKey is the (normalized name, normalized unit) pair deciding whether
// two ingredient occurrences aggregate into one line.
func MergeKey(name, unit string) string {
	return NormalizeName(name) + "|" + NormalizeUnit(unit)
}

// Aggregate merges ingredient occurrences across meals into shopping line
// items. Occurrences merge iff both normalized name and normalized unit
// match; the same ingredient in grams and in cups stays as two lines rather
// than silently converting or dropping quantity. Output keeps first-seen
// order of distinct merge keys; classification and ids happen downstream.
func Aggregate(meals []plan.PlannedMeal) []ShoppingItem {
	byKey := map[string]int{}
	var items []ShoppingItem

	for _, meal := range meals {
		for _, ing := range meal.Ingredients {
			name := NormalizeName(ing.Name)
			if name == "" {
				continue
			}
			amount, unit := Normalize(ing.Amount, ing.Unit)
			key := name + "|" + unit

			if idx, ok := byKey[key]; ok {
				item := &items[idx]
				item.Amount += amount
				if !containsString(item.FromRecipes, meal.RecipeName) {
					item.FromRecipes = append(item.FromRecipes, meal.RecipeName)
				}
				// A later occurrence may carry the category hint the first
				// one was missing.
				if item.Category == "" && ing.Category != "" {
					item.Category = strings.ToLower(strings.TrimSpace(ing.Category))
				}
				continue
			}

			byKey[key] = len(items)
			items = append(items, ShoppingItem{
				Name:        name,
				Amount:      amount,
				Unit:        unit,
				Category:    strings.ToLower(strings.TrimSpace(ing.Category)),
				FromRecipes: []string{meal.RecipeName},
				mergeKey:    key,
			})
		}
	}
	return items
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

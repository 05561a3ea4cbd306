package shopping

import (
	"strconv"
	"strings"

	"mealmind/internal/plan"
)

// unitAliases maps abbreviations to canonical unit tokens.
var unitAliases = map[string]string{
	"tbsp": "tablespoon",
	"tbs":  "tablespoon",
	"tsp":  "teaspoon",
	"oz":   "ounce",
	"lb":   "pound",
	"lbs":  "pound",
	"qt":   "quart",
	"pt":   "pint",
	"gal":  "gallon",
	"ml":   "milliliter",
	"l":    "liter",
	"g":    "gram",
	"kg":   "kilogram",
	"c":    "cup",
}

// canonicalUnits is the set of tokens plural forms collapse into.
var canonicalUnits = map[string]bool{
	"tablespoon": true, "teaspoon": true, "cup": true, "ounce": true,
	"pound": true, "quart": true, "pint": true, "gallon": true,
	"milliliter": true, "liter": true, "gram": true, "kilogram": true,
	"clove": true, "piece": true, "slice": true, "can": true,
	"bunch": true, "head": true, "stick": true, "pinch": true,
}

// NormalizeUnit lower-cases and trims a unit and maps known synonyms and
// plurals to one canonical token. Unmapped units pass through unchanged, so
// a novel unit never fails; it simply does not merge with a canonical one.
func NormalizeUnit(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		return ""
	}
	if canonical, ok := unitAliases[u]; ok {
		return canonical
	}
	if canonicalUnits[u] {
		return u
	}
	singular := strings.TrimSuffix(u, "s")
	if canonical, ok := unitAliases[singular]; ok {
		return canonical
	}
	if canonicalUnits[singular] {
		return singular
	}
	return u
}

// ParseAmount parses an ingredient amount as a float. Ingredient data comes
// from unreliable free-text extraction, so any unparsable input degrades to
// 0 instead of failing; an item with amount 0 renders unit-less.
func ParseAmount(a plan.Amount) float64 {
	s := strings.TrimSpace(string(a))
	if s == "" {
		return 0
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	// Simple fractions ("1/2") show up in extracted recipes.
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, errN := strconv.ParseFloat(strings.TrimSpace(num), 64)
		d, errD := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if errN == nil && errD == nil && d != 0 {
			return n / d
		}
	}
	return 0
}

// Normalize canonicalizes a quantity/unit pair for comparison and summation.
// It never fails: bad amounts become 0 and unknown units pass through.
func Normalize(amount plan.Amount, unit string) (float64, string) {
	return ParseAmount(amount), NormalizeUnit(unit)
}

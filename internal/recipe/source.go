// Package recipe supplies planned meals from external sources: full-week
// generation, generative regeneration of a single slot, and web page import.
package recipe

import (
	"context"

	"mealmind/internal/plan"
)

// Constraints narrow what a source may generate for a slot.
type Constraints struct {
	Restrictions []string // dietary restrictions, must be followed
	Dislikes     []string // ingredients to never include
	Cuisines     []string // preferred cuisines
	CurrentMeal  string   // recipe name being replaced, if any
	Servings     int
}

// Source produces a meal for a slot. The planner treats the result as an
// opaque PlannedMeal to insert via the slot editor.
type Source interface {
	Regenerate(ctx context.Context, mealType plan.MealType, c Constraints) (*plan.PlannedMeal, error)
}

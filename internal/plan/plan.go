// Package plan holds the weekly meal plan model and the pure slot
// transitions used to edit it.
package plan

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"mealmind/internal/errs"
	"mealmind/internal/week"
)

// Status is the lifecycle state of a meal plan.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusFinalized Status = "finalized"
)

// MealType addresses one of the four daily slots.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

// MealTypes lists the valid slot types in day order.
var MealTypes = []MealType{Breakfast, Lunch, Dinner, Snack}

// ValidMealType reports whether t is one of the four known slot types.
func ValidMealType(t MealType) bool {
	for _, m := range MealTypes {
		if m == t {
			return true
		}
	}
	return false
}

// Amount is an ingredient quantity as extracted from free text. Source
// recipes deliver it as either a JSON number or a string, so it keeps the
// raw token and leaves parsing to the shopping layer.
type Amount string

// UnmarshalJSON accepts a number, a string, or null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*a = ""
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*a = Amount(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = Amount(n.String())
	return nil
}

// MarshalJSON emits the amount as a number when it parses as one, otherwise
// as a string, so round-tripped documents keep the source shape.
func (a Amount) MarshalJSON() ([]byte, error) {
	if a == "" {
		return []byte(`""`), nil
	}
	if _, err := strconv.ParseFloat(string(a), 64); err == nil {
		return []byte(a), nil
	}
	return json.Marshal(string(a))
}

// Ingredient is a single ingredient record from a recipe. The fields come
// from free-text extraction and may be empty or wrong; downstream consumers
// normalize rather than trust them.
type Ingredient struct {
	Name     string `json:"name"`
	Amount   Amount `json:"amount"`
	Unit     string `json:"unit"`
	Category string `json:"category,omitempty"`
}

// PlannedMeal is one recipe assigned to a (date, mealType) slot.
type PlannedMeal struct {
	RecipeID          string       `json:"recipeId"`
	RecipeName        string       `json:"recipeName"`
	RecipeDescription string       `json:"recipeDescription,omitempty"`
	MealType          MealType     `json:"mealType"`
	Servings          int          `json:"servings"`
	PrepTimeMinutes   int          `json:"prepTimeMinutes"`
	CookTimeMinutes   int          `json:"cookTimeMinutes"`
	Cuisine           string       `json:"cuisine,omitempty"`
	Difficulty        string       `json:"difficulty,omitempty"`
	Ingredients       []Ingredient `json:"ingredients"`
	Instructions      []string     `json:"instructions"`
	ImageURL          string       `json:"imageUrl,omitempty"`
}

// DayPlan holds the meals of a single calendar date.
type DayPlan struct {
	Date    string        `json:"date"`
	DayName string        `json:"dayName"`
	Meals   []PlannedMeal `json:"meals"`
}

// MealPlan is a full weekly plan: exactly seven consecutive days starting at
// a Monday, at most one meal per (date, mealType).
type MealPlan struct {
	ID            string    `json:"id"`
	FamilyID      string    `json:"familyId"`
	WeekStartDate string    `json:"weekStartDate"`
	Status        Status    `json:"status"`
	Days          []DayPlan `json:"days"`
}

// New creates an empty draft plan for the week beginning at weekStart
// (a Monday, ISO date).
func New(familyID, weekStart string) (*MealPlan, error) {
	days, err := week.DaysOf(weekStart)
	if err != nil {
		return nil, err
	}
	p := &MealPlan{
		ID:            uuid.NewString(),
		FamilyID:      familyID,
		WeekStartDate: weekStart,
		Status:        StatusDraft,
		Days:          make([]DayPlan, 7),
	}
	for i, d := range days {
		name, _ := week.DayName(d)
		p.Days[i] = DayPlan{Date: d, DayName: name, Meals: []PlannedMeal{}}
	}
	return p, nil
}

// Validate checks the structural invariants: seven consecutive days from the
// week start, no duplicate dates, at most one meal per slot, known meal
// types, positive servings.
func (p *MealPlan) Validate() error {
	if p.ID == "" {
		return errs.Validation("meal plan is missing an id")
	}
	if p.FamilyID == "" {
		return errs.Validation("meal plan is missing a family id")
	}
	expected, err := week.DaysOf(p.WeekStartDate)
	if err != nil {
		return err
	}
	if len(p.Days) != 7 {
		return errs.Validation("meal plan must have exactly 7 days, has %d", len(p.Days))
	}
	for i, day := range p.Days {
		if day.Date != expected[i] {
			return errs.Validation("day %d has date %q, expected %q", i, day.Date, expected[i])
		}
		seen := map[MealType]bool{}
		for _, meal := range day.Meals {
			if !ValidMealType(meal.MealType) {
				return errs.Validation("unknown meal type %q on %s", meal.MealType, day.Date)
			}
			if seen[meal.MealType] {
				return errs.Validation("duplicate %s slot on %s", meal.MealType, day.Date)
			}
			seen[meal.MealType] = true
			if meal.Servings <= 0 {
				return errs.Validation("meal %q on %s has non-positive servings", meal.RecipeName, day.Date)
			}
		}
	}
	switch p.Status {
	case StatusDraft, StatusFinalized:
	default:
		return errs.Validation("unknown plan status %q", p.Status)
	}
	return nil
}

// Meal returns the meal occupying (date, mealType), or nil when the slot is
// empty or the date is outside the plan.
func (p *MealPlan) Meal(date string, mealType MealType) *PlannedMeal {
	for di := range p.Days {
		if p.Days[di].Date != date {
			continue
		}
		for mi := range p.Days[di].Meals {
			if p.Days[di].Meals[mi].MealType == mealType {
				return &p.Days[di].Meals[mi]
			}
		}
	}
	return nil
}

// Meals flattens every populated slot across the week, in day order then
// slot order of appearance.
func (p *MealPlan) Meals() []PlannedMeal {
	var out []PlannedMeal
	for _, day := range p.Days {
		out = append(out, day.Meals...)
	}
	return out
}

// Clone returns a deep copy. Slot editing is pure: transitions operate on a
// clone and return it, leaving the receiver untouched.
func (p *MealPlan) Clone() *MealPlan {
	out := *p
	out.Days = make([]DayPlan, len(p.Days))
	for i, day := range p.Days {
		cd := day
		cd.Meals = make([]PlannedMeal, len(day.Meals))
		for j, meal := range day.Meals {
			cm := meal
			cm.Ingredients = append([]Ingredient(nil), meal.Ingredients...)
			cm.Instructions = append([]string(nil), meal.Instructions...)
			cd.Meals[j] = cm
		}
		out.Days[i] = cd
	}
	return &out
}

func (p *MealPlan) dayIndex(date string) int {
	for i := range p.Days {
		if p.Days[i].Date == date {
			return i
		}
	}
	return -1
}

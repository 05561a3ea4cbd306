package plan

import (
	"mealmind/internal/errs"
)

// SetSlot returns a copy of the plan with (date, mealType) set to meal. A
// nil meal clears the slot. Dates outside the plan's week and unknown meal
// types are rejected.
func SetSlot(p *MealPlan, date string, mealType MealType, meal *PlannedMeal) (*MealPlan, error) {
	if !ValidMealType(mealType) {
		return nil, errs.Validation("unknown meal type %q", mealType)
	}
	out := p.Clone()
	di := out.dayIndex(date)
	if di < 0 {
		return nil, errs.Validation("date %s is outside the plan week starting %s", date, p.WeekStartDate)
	}

	day := &out.Days[di]
	kept := day.Meals[:0]
	for _, m := range day.Meals {
		if m.MealType != mealType {
			kept = append(kept, m)
		}
	}
	day.Meals = kept

	if meal != nil {
		m := *meal
		m.MealType = mealType
		if m.Servings <= 0 {
			return nil, errs.Validation("meal %q has non-positive servings", m.RecipeName)
		}
		day.Meals = append(day.Meals, m)
	}
	return out, nil
}

// MoveSlot returns a copy of the plan with the meal at the source slot moved
// to the destination slot. An occupied destination swaps with the source, so
// a drag never discards a meal; an empty destination leaves the source slot
// empty. Moving from an empty slot is a validation error.
func MoveSlot(p *MealPlan, fromDate string, fromType MealType, toDate string, toType MealType) (*MealPlan, error) {
	if !ValidMealType(fromType) {
		return nil, errs.Validation("unknown meal type %q", fromType)
	}
	if !ValidMealType(toType) {
		return nil, errs.Validation("unknown meal type %q", toType)
	}
	if fromDate == toDate && fromType == toType {
		return p.Clone(), nil
	}
	if p.dayIndex(fromDate) < 0 {
		return nil, errs.Validation("date %s is outside the plan week starting %s", fromDate, p.WeekStartDate)
	}
	if p.dayIndex(toDate) < 0 {
		return nil, errs.Validation("date %s is outside the plan week starting %s", toDate, p.WeekStartDate)
	}

	src := p.Meal(fromDate, fromType)
	if src == nil {
		return nil, errs.Validation("no meal at %s %s to move", fromDate, fromType)
	}
	dst := p.Meal(toDate, toType)

	moved := *src
	out, err := SetSlot(p, toDate, toType, &moved)
	if err != nil {
		return nil, err
	}
	if dst != nil {
		swapped := *dst
		return SetSlot(out, fromDate, fromType, &swapped)
	}
	return SetSlot(out, fromDate, fromType, nil)
}

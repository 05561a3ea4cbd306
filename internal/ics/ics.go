// Package ics serializes a meal plan to the iCalendar text format
// (RFC 5545), one VEVENT per populated meal slot.
package ics

import (
	"fmt"
	"strings"
	"time"

	"mealmind/internal/plan"
)

// mealWindow is the fixed time-of-day slot for a meal type, UTC, no
// timezone conversion.
type mealWindow struct {
	startHour, startMin int
	endHour, endMin     int
}

var mealWindows = map[plan.MealType]mealWindow{
	plan.Breakfast: {8, 0, 9, 0},
	plan.Lunch:     {12, 0, 13, 0},
	plan.Dinner:    {18, 0, 19, 30},
	plan.Snack:     {15, 0, 15, 30},
}

// Unknown meal types fall back to the lunch window.
var defaultWindow = mealWindows[plan.Lunch]

var mealEmojis = map[plan.MealType]string{
	plan.Breakfast: "🍳",
	plan.Lunch:     "🥪",
	plan.Dinner:    "🍽️",
	plan.Snack:     "🍎",
}

// Export renders the plan as CRLF-joined iCalendar text. Empty slots produce
// no event. UIDs are deterministic per (plan, date, mealType, recipe), so
// re-exporting an unchanged plan yields byte-identical UIDs; DTSTAMP records
// the export wall-clock time and is the only non-deterministic field.
func Export(p *plan.MealPlan) string {
	return export(p, time.Now().UTC())
}

func export(p *plan.MealPlan, now time.Time) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//MealMind//Meal Planner//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
	}
	stamp := now.Format("20060102T150405Z")

	for _, day := range p.Days {
		date, err := time.Parse("2006-01-02", day.Date)
		if err != nil {
			continue
		}
		for _, meal := range day.Meals {
			w, ok := mealWindows[meal.MealType]
			if !ok {
				w = defaultWindow
			}
			start := time.Date(date.Year(), date.Month(), date.Day(), w.startHour, w.startMin, 0, 0, time.UTC)
			end := time.Date(date.Year(), date.Month(), date.Day(), w.endHour, w.endMin, 0, 0, time.UTC)

			lines = append(lines,
				"BEGIN:VEVENT",
				fmt.Sprintf("UID:mealmind-%s-%s-%s-%s@mealmind.app", p.ID, day.Date, meal.MealType, meal.RecipeID),
				"DTSTAMP:"+stamp,
				"DTSTART:"+start.Format("20060102T150405Z"),
				"DTEND:"+end.Format("20060102T150405Z"),
				"SUMMARY:"+escapeText(summary(meal)),
				"DESCRIPTION:"+escapeText(description(meal)),
				"END:VEVENT",
			)
		}
	}
	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, "\r\n") + "\r\n"
}

// Filename is the attachment filename for an exported week.
func Filename(weekStart string) string {
	return fmt.Sprintf("mealmind-week-%s.ics", weekStart)
}

func summary(meal plan.PlannedMeal) string {
	emoji, ok := mealEmojis[meal.MealType]
	if !ok {
		emoji = mealEmojis[plan.Lunch]
	}
	return fmt.Sprintf("%s %s: %s", emoji, capitalize(string(meal.MealType)), meal.RecipeName)
}

func description(meal plan.PlannedMeal) string {
	var b strings.Builder

	fmt.Fprintf(&b, "⏱️ Prep: %d min | Cook: %d min | Serves: %d",
		meal.PrepTimeMinutes, meal.CookTimeMinutes, meal.Servings)
	if meal.Cuisine != "" {
		fmt.Fprintf(&b, "\nCuisine: %s", meal.Cuisine)
	}
	if meal.Difficulty != "" {
		fmt.Fprintf(&b, "\nDifficulty: %s", meal.Difficulty)
	}

	if meal.RecipeDescription != "" {
		b.WriteString("\n\n")
		b.WriteString(meal.RecipeDescription)
	}

	if len(meal.Ingredients) > 0 {
		b.WriteString("\n\nIngredients:")
		for _, ing := range meal.Ingredients {
			b.WriteString("\n• ")
			amount := strings.TrimSpace(string(ing.Amount))
			if amount != "" && amount != "0" {
				b.WriteString(amount)
				if ing.Unit != "" {
					b.WriteString(" " + ing.Unit)
				}
				b.WriteString(" ")
			}
			b.WriteString(ing.Name)
		}
	}

	if len(meal.Instructions) > 0 {
		b.WriteString("\n\nInstructions:")
		for i, step := range meal.Instructions {
			fmt.Fprintf(&b, "\n%d. %s", i+1, step)
		}
	}
	return b.String()
}

// escapeText applies the iCalendar TEXT value rules: backslash, semicolon,
// comma, and embedded newline each get a leading backslash, newline becoming
// the two-character sequence \n. Applied per field, before assembly.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

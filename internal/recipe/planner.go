package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"mealmind/internal/errs"
	"mealmind/internal/llm"
	"mealmind/internal/plan"
)

// Preferences describe a family's standing constraints for weekly planning.
type Preferences struct {
	Restrictions []string
	Favorites    []string
	Dislikes     []string
	Cuisines     []string
	CookingTime  string
	Servings     int
}

// restrictionDetails spells out what each restriction forbids. Models violate
// terse restriction names ("nut-free") far more often than explicit lists.
var restrictionDetails = map[string]string{
	"nut-free":          "NO almonds, walnuts, cashews, pecans, pistachios, hazelnuts, macadamia, peanuts, pine nuts, or ANY nut-derived products (no almond milk, almond flour, almond butter, cashew cream, peanut butter, nut oils). Use oat milk, coconut milk, or regular milk instead of almond milk. Use regular flour, oat flour, or coconut flour instead of almond flour.",
	"dairy-free":        "NO milk, butter, cheese, cream, yogurt, whey, casein, ghee, sour cream, ice cream, or ANY dairy product. Coconut milk, oat milk, and almond milk ARE allowed as substitutes. Coconut cream IS allowed.",
	"gluten-free":       "NO wheat, flour, bread, pasta, barley, rye, couscous, regular soy sauce, breadcrumbs, tortillas (wheat), or ANY gluten-containing grains. Use gluten-free alternatives: rice, quinoa, corn tortillas, gluten-free pasta, tamari (gluten-free soy sauce).",
	"egg-free":          "NO eggs, mayonnaise, aioli, meringue, quiche, frittata, or egg-based sauces.",
	"shellfish-free":    "NO shrimp, crab, lobster, clams, mussels, oysters, scallops, or any shellfish.",
	"soy-free":          "NO soy sauce, tofu, tempeh, edamame, miso, soy milk, or any soy-derived products.",
	"vegetarian":        "NO meat, poultry, fish, or seafood of any kind. Eggs and dairy ARE allowed.",
	"vegan":             "NO animal products at all: no meat, fish, dairy, eggs, honey, or any animal-derived ingredients.",
	"diabetic-friendly": "Minimize added sugars, use whole grains instead of refined carbs, include protein with every meal, avoid sugary sauces and dressings.",
	"low-sodium":        "Avoid soy sauce, fish sauce, cured meats, pickled foods, bouillon cubes. Use fresh herbs and spices for flavor.",
}

const weekPlanPrompt = `You are a meal planning assistant creating a personalized weekly meal plan.

## REQUIREMENTS
- Days to plan: 7, starting from %s
- Meals per day: %s
- CRITICAL - Dietary Restrictions (MUST follow 100%%): %s
- Favorite ingredients (try to include): %s
- Disliked ingredients (NEVER include): %s
- Cuisine preferences: %s
- Cooking time preference: %s

## DIETARY RESTRICTION DETAILS (CRITICAL - violating these is dangerous!)
%s

## INSTRUCTIONS
1. Create a 7-day meal plan starting from %s
2. STRICTLY avoid any ingredients that violate dietary restrictions - this is critical for health/safety
3. Double-check EVERY ingredient against the restrictions above before including it
4. Ensure variety - don't repeat the same meal within the week
5. Balance cuisines - mix different cuisines throughout the week
6. Balance nutrition across the day (protein, vegetables, carbs)
7. For breakfast, prefer quicker meals (<30 min total time)

## OUTPUT FORMAT
Return ONLY valid JSON (no markdown, no explanation):
{
    "days": [
        {
            "date": "YYYY-MM-DD",
            "dayName": "Monday",
            "meals": [
                {
                    "mealType": "breakfast",
                    "recipeName": "Recipe Name",
                    "recipeDescription": "Brief 1-2 sentence description",
                    "prepTimeMinutes": 15,
                    "cookTimeMinutes": 10,
                    "servings": 4,
                    "cuisine": "American",
                    "ingredients": [
                        {"name": "eggs", "amount": 4, "unit": "large", "category": "dairy"},
                        {"name": "butter", "amount": 2, "unit": "tbsp", "category": "dairy"}
                    ],
                    "instructions": [
                        "Step 1: Do this",
                        "Step 2: Then do this"
                    ]
                }
            ]
        }
    ]
}

Categories for ingredients: produce, dairy, meat, pantry, spices, frozen, other`

// WeekPlanner generates complete weekly meal plans through a generative
// model.
type WeekPlanner struct {
	textGen llm.TextGenerator
}

// NewWeekPlanner creates a planner backed by the given text generator.
func NewWeekPlanner(textGen llm.TextGenerator) *WeekPlanner {
	return &WeekPlanner{textGen: textGen}
}

// GeneratePlan asks the model for a full week of meals and assembles a draft
// plan for the family's week. The model proposes meal content only; dates,
// ids, and slot structure come from the plan model, so a confused response
// can never produce an invalid week.
func (wp *WeekPlanner) GeneratePlan(ctx context.Context, familyID, weekStart string, mealsPerDay []plan.MealType, prefs Preferences) (*plan.MealPlan, error) {
	p, err := plan.New(familyID, weekStart)
	if err != nil {
		return nil, err
	}
	if len(mealsPerDay) == 0 {
		mealsPerDay = []plan.MealType{plan.Breakfast, plan.Lunch, plan.Dinner}
	}
	for _, mt := range mealsPerDay {
		if !plan.ValidMealType(mt) {
			return nil, errs.Validation("unknown meal type %q", mt)
		}
	}

	prompt := wp.buildPrompt(weekStart, mealsPerDay, prefs)

	// One retry on an unparsable response; models occasionally emit broken
	// JSON under long outputs.
	var days []plan.DayPlan
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		response, err := wp.textGen.GenerateContent(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("failed to generate weekly plan: %w", err)
		}
		days, lastErr = parseWeekJSON(response)
		if lastErr == nil {
			break
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}

	allowed := map[plan.MealType]bool{}
	for _, mt := range mealsPerDay {
		allowed[mt] = true
	}

	// The model's day ordering is trusted, its dates are not.
	for i, day := range days {
		if i >= len(p.Days) {
			break
		}
		for _, meal := range day.Meals {
			if !allowed[meal.MealType] {
				continue
			}
			m := meal
			if m.RecipeID == "" {
				m.RecipeID = slugify(m.RecipeName)
			}
			if m.Servings <= 0 {
				if prefs.Servings > 0 {
					m.Servings = prefs.Servings
				} else {
					m.Servings = 4
				}
			}
			updated, err := plan.SetSlot(p, p.Days[i].Date, m.MealType, &m)
			if err != nil {
				return nil, err
			}
			p = updated
		}
	}
	return p, nil
}

func (wp *WeekPlanner) buildPrompt(weekStart string, mealsPerDay []plan.MealType, prefs Preferences) string {
	types := make([]string, len(mealsPerDay))
	for i, mt := range mealsPerDay {
		types[i] = string(mt)
	}

	details := "None - no dietary restrictions."
	if len(prefs.Restrictions) > 0 {
		var lines []string
		for _, r := range prefs.Restrictions {
			key := strings.ReplaceAll(strings.ReplaceAll(strings.ToLower(r), "_", "-"), " ", "-")
			detail, ok := restrictionDetails[key]
			if !ok {
				detail = fmt.Sprintf("Avoid anything not compatible with %s.", r)
			}
			lines = append(lines, fmt.Sprintf("- **%s**: %s", r, detail))
		}
		details = strings.Join(lines, "\n")
	}

	return fmt.Sprintf(weekPlanPrompt,
		weekStart,
		strings.Join(types, ", "),
		orDefault(prefs.Restrictions, "None"),
		orDefault(prefs.Favorites, "None specified"),
		orDefault(prefs.Dislikes, "None specified"),
		orDefault(prefs.Cuisines, "Any cuisine"),
		orDefaultString(prefs.CookingTime, "any"),
		details,
		weekStart,
	)
}

var (
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	lineCommentRe   = regexp.MustCompile(`//[^\n]*`)
	controlCharRe   = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f]`)
)

// repairJSON fixes the JSON mistakes models make most often: trailing
// commas, // comments, and stray control characters.
func repairJSON(s string) string {
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	s = lineCommentRe.ReplaceAllString(s, "")
	s = controlCharRe.ReplaceAllString(s, "")
	return s
}

// parseWeekJSON extracts the days array from a model response, repairing the
// JSON when the first decode fails.
func parseWeekJSON(response string) ([]plan.DayPlan, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in model response: %s", response)
	}
	raw := response[start : end+1]

	var doc struct {
		Days []plan.DayPlan `json:"days"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		if repairedErr := json.Unmarshal([]byte(repairJSON(raw)), &doc); repairedErr != nil {
			return nil, fmt.Errorf("failed to parse weekly plan JSON: %w", err)
		}
	}
	if len(doc.Days) == 0 {
		return nil, fmt.Errorf("weekly plan response has no days")
	}
	return doc.Days, nil
}

func orDefaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

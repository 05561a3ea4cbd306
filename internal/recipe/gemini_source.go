package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"mealmind/internal/llm"
	"mealmind/internal/plan"
)

const regeneratePrompt = `Generate a NEW %s recipe that is different from the current one.

CURRENT MEAL TO REPLACE: %s

REQUIREMENTS:
- Dietary Restrictions (MUST follow 100%%): %s
- Disliked ingredients (NEVER include): %s
- Cuisine preferences: %s
- Must be DIFFERENT from the current meal
- Should fit the %s meal type

Return ONLY valid JSON (no markdown):
{
    "mealType": "%s",
    "recipeName": "New Recipe Name",
    "recipeDescription": "Brief description",
    "prepTimeMinutes": 15,
    "cookTimeMinutes": 20,
    "servings": 4,
    "cuisine": "Italian",
    "ingredients": [
        {"name": "ingredient", "amount": 1, "unit": "cup", "category": "produce"}
    ],
    "instructions": [
        "Step 1",
        "Step 2"
    ]
}`

// GeminiSource regenerates slots through a generative model.
type GeminiSource struct {
	textGen llm.TextGenerator
}

// NewGeminiSource creates a source backed by the given text generator.
func NewGeminiSource(textGen llm.TextGenerator) *GeminiSource {
	return &GeminiSource{textGen: textGen}
}

// Regenerate asks the model for a replacement meal and parses its JSON
// response into a PlannedMeal.
func (s *GeminiSource) Regenerate(ctx context.Context, mealType plan.MealType, c Constraints) (*plan.PlannedMeal, error) {
	current := c.CurrentMeal
	if current == "" {
		current = "None"
	}
	prompt := fmt.Sprintf(regeneratePrompt,
		mealType,
		current,
		orDefault(c.Restrictions, "None"),
		orDefault(c.Dislikes, "None"),
		orDefault(c.Cuisines, "Any"),
		mealType,
		mealType,
	)

	response, err := s.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate replacement meal: %w", err)
	}

	meal, err := ParseMealJSON(response)
	if err != nil {
		return nil, err
	}
	meal.MealType = mealType
	if meal.Servings <= 0 {
		if c.Servings > 0 {
			meal.Servings = c.Servings
		} else {
			meal.Servings = 4
		}
	}
	return meal, nil
}

// ParseMealJSON extracts the first JSON object from a model response and
// decodes it. Models occasionally wrap JSON in prose or markdown fences, so
// the brace window is located before decoding.
func ParseMealJSON(response string) (*plan.PlannedMeal, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in model response: %s", response)
	}

	var meal plan.PlannedMeal
	if err := json.Unmarshal([]byte(response[start:end+1]), &meal); err != nil {
		return nil, fmt.Errorf("failed to parse meal JSON: %w. Response: %s", err, response)
	}
	if meal.RecipeID == "" {
		meal.RecipeID = slugify(meal.RecipeName)
	}
	return &meal, nil
}

func orDefault(values []string, def string) string {
	if len(values) == 0 {
		return def
	}
	return strings.Join(values, ", ")
}

func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "recipe"
	}
	return slug
}

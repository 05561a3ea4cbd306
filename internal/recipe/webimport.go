package recipe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"mealmind/internal/llm"
	"mealmind/internal/plan"
)

// Importer fetches a recipe page and extracts it into a PlannedMeal ready to
// assign to a slot.
type Importer struct {
	textGen    llm.TextGenerator
	httpClient *http.Client
}

// NewImporter creates a web recipe importer.
func NewImporter(textGen llm.TextGenerator) *Importer {
	return &Importer{
		textGen:    textGen,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

const importPrompt = `You are a recipe extraction expert. Extract the recipe details from the following page text.
Return the result strictly as a JSON object with this structure:
{
    "mealType": "%s",
    "recipeName": "Recipe Title",
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
}

Page Content:
%s`

// ImportURL fetches the URL, extracts the recipe, and returns it for the
// requested slot type.
func (i *Importer) ImportURL(ctx context.Context, url string, mealType plan.MealType) (*plan.PlannedMeal, error) {
	content, err := i.fetchAndCleanHTML(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	response, err := i.textGen.GenerateContent(ctx, fmt.Sprintf(importPrompt, mealType, content))
	if err != nil {
		return nil, fmt.Errorf("recipe extraction failed: %w", err)
	}

	meal, err := ParseMealJSON(response)
	if err != nil {
		return nil, err
	}
	meal.MealType = mealType
	if meal.Servings <= 0 {
		meal.Servings = 4
	}
	return meal, nil
}

func (i *Importer) fetchAndCleanHTML(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := i.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to save model tokens
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})

	return doc.Find("body").Text(), nil
}

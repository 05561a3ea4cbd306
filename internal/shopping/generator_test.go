package shopping

import (
	"strings"
	"testing"

	"mealmind/internal/plan"
)

func testPlan(t *testing.T) *plan.MealPlan {
	t.Helper()
	p, err := plan.New("family-1", "2026-01-05")
	if err != nil {
		t.Fatalf("building test plan: %v", err)
	}
	p.Days[0].Meals = []plan.PlannedMeal{mealWith("Omelette",
		plan.Ingredient{Name: "Eggs", Amount: "3", Unit: "piece"},
		plan.Ingredient{Name: "butter", Amount: "1", Unit: "tbsp"},
	)}
	p.Days[1].Meals = []plan.PlannedMeal{mealWith("Pancakes",
		plan.Ingredient{Name: "eggs", Amount: "2", Unit: "pieces"},
		plan.Ingredient{Name: "flour", Amount: "250", Unit: "g"},
	)}
	return p
}

func TestGenerate(t *testing.T) {
	p := testPlan(t)
	list := Generate(p, nil)

	if list.MealPlanID != p.ID || list.WeekStartDate != "2026-01-05" {
		t.Errorf("unexpected list header: %+v", list)
	}
	if len(list.Items) != 3 {
		t.Fatalf("expected 3 items (eggs merged), got %d", len(list.Items))
	}
	for _, item := range list.Items {
		if !strings.HasPrefix(item.ID, "item-") {
			t.Errorf("item id %q missing prefix", item.ID)
		}
		if item.Category == "" {
			t.Errorf("item %q was not classified", item.Name)
		}
		if item.Checked {
			t.Errorf("item %q should start unchecked", item.Name)
		}
	}
}

func TestGenerateEmptyPlan(t *testing.T) {
	p, _ := plan.New("family-1", "2026-01-05")
	list := Generate(p, nil)
	if len(list.Items) != 0 {
		t.Errorf("expected empty list, got %d items", len(list.Items))
	}
	if _, _, ratio := list.Progress(); ratio != 0 {
		t.Errorf("expected zero progress ratio, got %v", ratio)
	}
}

func TestGenerateDeterministicIDs(t *testing.T) {
	p := testPlan(t)
	first := Generate(p, nil)
	second := Generate(p, nil)

	if len(first.Items) != len(second.Items) {
		t.Fatalf("item counts differ: %d vs %d", len(first.Items), len(second.Items))
	}
	for i := range first.Items {
		if first.Items[i].ID != second.Items[i].ID {
			t.Errorf("item %d id changed across generations: %s vs %s",
				i, first.Items[i].ID, second.Items[i].ID)
		}
	}
}

func TestGenerateCarriesCheckedState(t *testing.T) {
	p := testPlan(t)
	existing := Generate(p, nil)
	existing.Item(existing.Items[0].ID).Checked = true

	// Add a meal so regeneration sees a changed plan.
	p.Days[2].Meals = []plan.PlannedMeal{mealWith("Stir Fry",
		plan.Ingredient{Name: "broccoli", Amount: "1", Unit: "head"},
	)}

	regenerated := Generate(p, existing)

	if regenerated.ID != existing.ID {
		t.Errorf("expected list id preserved, got %s", regenerated.ID)
	}
	if !regenerated.CreatedAt.Equal(existing.CreatedAt) {
		t.Error("expected creation time preserved")
	}
	if got := regenerated.Item(existing.Items[0].ID); got == nil || !got.Checked {
		t.Error("expected checked state to carry forward for a surviving item")
	}

	var broccoli *ShoppingItem
	for i := range regenerated.Items {
		if regenerated.Items[i].Name == "broccoli" {
			broccoli = &regenerated.Items[i]
		}
	}
	if broccoli == nil {
		t.Fatal("expected broccoli in regenerated list")
	}
	if broccoli.Checked {
		t.Error("expected new item to start unchecked")
	}
}

func TestGenerateDropsVanishedItems(t *testing.T) {
	p := testPlan(t)
	existing := Generate(p, nil)

	p.Days[1].Meals = nil // flour and some eggs vanish
	regenerated := Generate(p, existing)

	for _, item := range regenerated.Items {
		if item.Name == "flour" {
			t.Error("expected flour to be dropped after its meal was removed")
		}
	}
}

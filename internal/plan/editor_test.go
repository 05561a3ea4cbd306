package plan

import "testing"

func TestSetSlot(t *testing.T) {
	t.Run("fills an empty slot", func(t *testing.T) {
		p, _ := New("family-1", testWeekStart)
		out, err := SetSlot(p, "2026-01-06", Lunch, testMeal("salad", Lunch))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := out.Meal("2026-01-06", Lunch); got == nil || got.RecipeName != "salad" {
			t.Errorf("expected salad at tuesday lunch, got %+v", got)
		}
		if p.Meal("2026-01-06", Lunch) != nil {
			t.Error("SetSlot mutated the original plan")
		}
	})

	t.Run("replaces an occupied slot", func(t *testing.T) {
		p, _ := New("family-1", testWeekStart)
		p.Days[1].Meals = []PlannedMeal{*testMeal("salad", Lunch)}
		out, err := SetSlot(p, "2026-01-06", Lunch, testMeal("soup", Lunch))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := out.Meal("2026-01-06", Lunch); got == nil || got.RecipeName != "soup" {
			t.Errorf("expected soup after replacement, got %+v", got)
		}
		if len(out.Days[1].Meals) != 1 {
			t.Errorf("expected 1 meal on the day, got %d", len(out.Days[1].Meals))
		}
	})

	t.Run("nil meal clears the slot", func(t *testing.T) {
		p, _ := New("family-1", testWeekStart)
		p.Days[1].Meals = []PlannedMeal{*testMeal("salad", Lunch)}
		out, err := SetSlot(p, "2026-01-06", Lunch, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Meal("2026-01-06", Lunch) != nil {
			t.Error("expected slot to be cleared")
		}
	})

	t.Run("forces the slot's meal type onto the meal", func(t *testing.T) {
		p, _ := New("family-1", testWeekStart)
		out, err := SetSlot(p, "2026-01-06", Dinner, testMeal("salad", Lunch))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := out.Meal("2026-01-06", Dinner); got == nil || got.MealType != Dinner {
			t.Errorf("expected meal type rewritten to dinner, got %+v", got)
		}
	})

	t.Run("rejects out-of-week date", func(t *testing.T) {
		p, _ := New("family-1", testWeekStart)
		if _, err := SetSlot(p, "2026-02-01", Lunch, testMeal("salad", Lunch)); err == nil {
			t.Error("expected error for date outside the plan week")
		}
	})

	t.Run("rejects unknown meal type", func(t *testing.T) {
		p, _ := New("family-1", testWeekStart)
		if _, err := SetSlot(p, "2026-01-06", MealType("brunch"), testMeal("salad", Lunch)); err == nil {
			t.Error("expected error for unknown meal type")
		}
	})

	t.Run("rejects non-positive servings", func(t *testing.T) {
		p, _ := New("family-1", testWeekStart)
		m := testMeal("salad", Lunch)
		m.Servings = 0
		if _, err := SetSlot(p, "2026-01-06", Lunch, m); err == nil {
			t.Error("expected error for zero servings")
		}
	})
}

func TestMoveSlot(t *testing.T) {
	t.Run("moves into an empty slot and vacates the source", func(t *testing.T) {
		p, _ := New("family-1", testWeekStart)
		p.Days[0].Meals = []PlannedMeal{*testMeal("tacos", Dinner)}

		out, err := MoveSlot(p, "2026-01-05", Dinner, "2026-01-08", Dinner)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Meal("2026-01-05", Dinner) != nil {
			t.Error("expected source slot to be vacated")
		}
		if got := out.Meal("2026-01-08", Dinner); got == nil || got.RecipeName != "tacos" {
			t.Errorf("expected tacos at thursday dinner, got %+v", got)
		}
	})

	t.Run("swaps with an occupied destination", func(t *testing.T) {
		p, _ := New("family-1", testWeekStart)
		p.Days[0].Meals = []PlannedMeal{*testMeal("tacos", Dinner)}
		p.Days[3].Meals = []PlannedMeal{*testMeal("curry", Dinner)}

		out, err := MoveSlot(p, "2026-01-05", Dinner, "2026-01-08", Dinner)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := out.Meal("2026-01-05", Dinner); got == nil || got.RecipeName != "curry" {
			t.Errorf("expected curry swapped into source, got %+v", got)
		}
		if got := out.Meal("2026-01-08", Dinner); got == nil || got.RecipeName != "tacos" {
			t.Errorf("expected tacos at destination, got %+v", got)
		}
	})

	t.Run("changes meal type on a cross-slot move", func(t *testing.T) {
		p, _ := New("family-1", testWeekStart)
		p.Days[0].Meals = []PlannedMeal{*testMeal("frittata", Breakfast)}

		out, err := MoveSlot(p, "2026-01-05", Breakfast, "2026-01-05", Lunch)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := out.Meal("2026-01-05", Lunch); got == nil || got.MealType != Lunch {
			t.Errorf("expected meal type rewritten to lunch, got %+v", got)
		}
	})

	t.Run("same-slot move is a no-op", func(t *testing.T) {
		p, _ := New("family-1", testWeekStart)
		p.Days[0].Meals = []PlannedMeal{*testMeal("tacos", Dinner)}

		out, err := MoveSlot(p, "2026-01-05", Dinner, "2026-01-05", Dinner)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := out.Meal("2026-01-05", Dinner); got == nil || got.RecipeName != "tacos" {
			t.Errorf("expected tacos to stay put, got %+v", got)
		}
	})

	t.Run("rejects moving from an empty slot", func(t *testing.T) {
		p, _ := New("family-1", testWeekStart)
		if _, err := MoveSlot(p, "2026-01-05", Dinner, "2026-01-06", Dinner); err == nil {
			t.Error("expected error when source slot is empty")
		}
	})

	t.Run("rejects out-of-week dates", func(t *testing.T) {
		p, _ := New("family-1", testWeekStart)
		p.Days[0].Meals = []PlannedMeal{*testMeal("tacos", Dinner)}
		if _, err := MoveSlot(p, "2026-01-05", Dinner, "2026-02-01", Dinner); err == nil {
			t.Error("expected error for out-of-week destination")
		}
	})
}

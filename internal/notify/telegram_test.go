package notify

import (
	"strings"
	"testing"
	"time"

	"mealmind/internal/shopping"
)

func formatFixture() *shopping.ShoppingList {
	return &shopping.ShoppingList{
		ID:            "list-1",
		MealPlanID:    "plan-1",
		WeekStartDate: "2026-01-05",
		CreatedAt:     time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC),
		Items: []shopping.ShoppingItem{
			{ID: "i1", Name: "garlic", Amount: 4, Unit: "clove", Category: "produce", Checked: true},
			{ID: "i2", Name: "spinach", Amount: 200, Unit: "gram", Category: "produce"},
			{ID: "i3", Name: "salt", Amount: 0, Unit: "", Category: "spices"},
			{ID: "i4", Name: "butter", Amount: 0.5, Unit: "cup", Category: "dairy"},
		},
	}
}

func TestFormatListMarkdown(t *testing.T) {
	out := FormatListMarkdown(formatFixture())

	t.Run("header and week", func(t *testing.T) {
		if !strings.HasPrefix(out, "🛒 *Shopping List*\n") {
			t.Error("missing title")
		}
		if !strings.Contains(out, "📅 Week of 2026-01-05\n") {
			t.Error("missing week line")
		}
	})

	t.Run("sections appear in display order", func(t *testing.T) {
		produce := strings.Index(out, "🥬 *Produce*")
		dairy := strings.Index(out, "🧀 *Dairy*")
		spices := strings.Index(out, "🧂 *Spices*")
		if produce < 0 || dairy < 0 || spices < 0 {
			t.Fatalf("missing section headers in:\n%s", out)
		}
		if !(produce < dairy && dairy < spices) {
			t.Error("expected produce before dairy before spices")
		}
	})

	t.Run("item markers and amounts", func(t *testing.T) {
		if !strings.Contains(out, "✅ 4 clove garlic\n") {
			t.Error("checked garlic line missing")
		}
		if !strings.Contains(out, "⬜ 200 gram spinach\n") {
			t.Error("spinach line missing")
		}
		if !strings.Contains(out, "⬜ salt\n") {
			t.Error("zero-amount salt should render unit-less")
		}
		if !strings.Contains(out, "⬜ 0.5 cup butter\n") {
			t.Error("fractional butter line missing")
		}
	})

	t.Run("progress footer", func(t *testing.T) {
		if !strings.HasSuffix(out, "📊 1/4 items checked") {
			t.Errorf("unexpected footer in:\n%s", out)
		}
	})
}

func TestFormatListMarkdownEmpty(t *testing.T) {
	out := FormatListMarkdown(&shopping.ShoppingList{WeekStartDate: "2026-01-05"})
	if !strings.HasSuffix(out, "📊 0/0 items checked") {
		t.Errorf("unexpected footer for empty list:\n%s", out)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name string
		item shopping.ShoppingItem
		want string
	}{
		{"whole", shopping.ShoppingItem{Amount: 150, Unit: "gram"}, "150 gram"},
		{"fraction keeps trailing digits", shopping.ShoppingItem{Amount: 0.5, Unit: "cup"}, "0.5 cup"},
		{"zero renders empty", shopping.ShoppingItem{Amount: 0, Unit: "gram"}, ""},
		{"no unit", shopping.ShoppingItem{Amount: 3}, "3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatAmount(tt.item); got != tt.want {
				t.Errorf("formatAmount = %q, want %q", got, tt.want)
			}
		})
	}
}

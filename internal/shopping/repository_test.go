package shopping_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"mealmind/internal/database"
	"mealmind/internal/errs"
	"mealmind/internal/shopping"
)

func testRepo(t *testing.T) *shopping.Repository {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return shopping.NewRepository(db.SQL)
}

func fixtureList() *shopping.ShoppingList {
	return &shopping.ShoppingList{
		ID:            "list-1",
		MealPlanID:    "plan-1",
		WeekStartDate: "2026-01-05",
		CreatedAt:     time.Date(2026, 1, 4, 12, 0, 0, 0, time.UTC),
		Items: []shopping.ShoppingItem{
			{ID: "item-a", Name: "egg", Amount: 5, Unit: "piece", Category: "dairy", FromRecipes: []string{"Omelette"}},
			{ID: "item-b", Name: "flour", Amount: 250, Unit: "gram", Category: "pantry", FromRecipes: []string{"Pancakes"}},
		},
	}
}

func TestListRepositoryRoundTrip(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, fixtureList()); err != nil {
		t.Fatalf("saving list: %v", err)
	}

	t.Run("get by meal plan", func(t *testing.T) {
		got, err := repo.GetByMealPlanID(ctx, "plan-1")
		if err != nil {
			t.Fatalf("loading list: %v", err)
		}
		if got == nil || got.ID != "list-1" || len(got.Items) != 2 {
			t.Fatalf("unexpected list: %+v", got)
		}
		if got.Items[0].Name != "egg" || got.Items[0].FromRecipes[0] != "Omelette" {
			t.Errorf("unexpected first item: %+v", got.Items[0])
		}
	})

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, "list-1")
		if err != nil {
			t.Fatalf("loading list: %v", err)
		}
		if got == nil || got.MealPlanID != "plan-1" {
			t.Errorf("unexpected list: %+v", got)
		}
	})

	t.Run("save replaces the document for the plan", func(t *testing.T) {
		replacement := fixtureList()
		replacement.Items = replacement.Items[:1]
		if err := repo.Save(ctx, replacement); err != nil {
			t.Fatalf("re-saving list: %v", err)
		}
		got, _ := repo.GetByMealPlanID(ctx, "plan-1")
		if len(got.Items) != 1 {
			t.Errorf("expected replaced items, got %d", len(got.Items))
		}
	})
}

func TestListRepositoryMissing(t *testing.T) {
	repo := testRepo(t)

	got, err := repo.GetByMealPlanID(context.Background(), "plan-x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing list, got %+v", got)
	}
}

func TestSetItemChecked(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, fixtureList()); err != nil {
		t.Fatalf("saving list: %v", err)
	}

	if err := repo.SetItemChecked(ctx, "list-1", "item-a", true); err != nil {
		t.Fatalf("checking item: %v", err)
	}
	got, _ := repo.GetByID(ctx, "list-1")
	if !got.Item("item-a").Checked {
		t.Error("expected item-a checked")
	}
	if got.Item("item-b").Checked {
		t.Error("expected item-b untouched")
	}

	t.Run("unknown list", func(t *testing.T) {
		err := repo.SetItemChecked(ctx, "list-x", "item-a", true)
		if !errs.IsKind(err, errs.KindNotFound) {
			t.Errorf("expected not-found, got %v", err)
		}
	})

	t.Run("unknown item", func(t *testing.T) {
		err := repo.SetItemChecked(ctx, "list-1", "item-x", true)
		if !errs.IsKind(err, errs.KindNotFound) {
			t.Errorf("expected not-found, got %v", err)
		}
	})
}

func TestDeleteByMealPlanID(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, fixtureList()); err != nil {
		t.Fatalf("saving list: %v", err)
	}
	if err := repo.DeleteByMealPlanID(ctx, "plan-1"); err != nil {
		t.Fatalf("deleting list: %v", err)
	}
	if got, _ := repo.GetByMealPlanID(ctx, "plan-1"); got != nil {
		t.Error("expected list removed")
	}
}

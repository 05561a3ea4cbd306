package shopping

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"mealmind/internal/errs"
)

// Store abstracts shopping list persistence.
type Store interface {
	GetByMealPlanID(ctx context.Context, mealPlanID string) (*ShoppingList, error)
	Save(ctx context.Context, list *ShoppingList) error
	SetItemChecked(ctx context.Context, listID, itemID string, checked bool) error
}

// Repository is a SQLite-backed list store. Each list is one JSON document
// keyed by meal plan id; rebuilding a list replaces the document.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a shopping list repository on an existing connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetByMealPlanID retrieves the list derived from a meal plan, or nil when
// none has been generated.
func (r *Repository) GetByMealPlanID(ctx context.Context, mealPlanID string) (*ShoppingList, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, meal_plan_id, week_start_date, items, created_at
		 FROM shopping_lists WHERE meal_plan_id = ?`, mealPlanID)
	return scanList(row)
}

// GetByID retrieves a list by its own id, or nil.
func (r *Repository) GetByID(ctx context.Context, id string) (*ShoppingList, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, meal_plan_id, week_start_date, items, created_at
		 FROM shopping_lists WHERE id = ?`, id)
	return scanList(row)
}

// Save inserts or replaces the list for its meal plan.
func (r *Repository) Save(ctx context.Context, list *ShoppingList) error {
	itemsJSON, err := json.Marshal(list.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal shopping list items: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO shopping_lists (id, meal_plan_id, week_start_date, items, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(meal_plan_id) DO UPDATE SET
		   id = excluded.id,
		   week_start_date = excluded.week_start_date,
		   items = excluded.items,
		   created_at = excluded.created_at`,
		list.ID, list.MealPlanID, list.WeekStartDate, string(itemsJSON), list.CreatedAt.UTC())
	if err != nil {
		return errs.TransientIO(err, "failed to save shopping list %s", list.ID)
	}
	return nil
}

// SetItemChecked updates one item's checked state inside the stored
// document. Unknown list or item ids are not-found conditions.
func (r *Repository) SetItemChecked(ctx context.Context, listID, itemID string, checked bool) error {
	list, err := r.GetByID(ctx, listID)
	if err != nil {
		return err
	}
	if list == nil {
		return errs.NotFound("shopping list %s not found", listID)
	}
	item := list.Item(itemID)
	if item == nil {
		return errs.NotFound("item %s not found in list %s", itemID, listID)
	}
	item.Checked = checked

	itemsJSON, err := json.Marshal(list.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal shopping list items: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE shopping_lists SET items = ? WHERE id = ?`, string(itemsJSON), listID)
	if err != nil {
		return errs.TransientIO(err, "failed to update item %s in list %s", itemID, listID)
	}
	return nil
}

// DeleteByMealPlanID removes the list derived from a meal plan, if any.
func (r *Repository) DeleteByMealPlanID(ctx context.Context, mealPlanID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM shopping_lists WHERE meal_plan_id = ?`, mealPlanID)
	if err != nil {
		return errs.TransientIO(err, "failed to delete shopping list for plan %s", mealPlanID)
	}
	return nil
}

func scanList(row *sql.Row) (*ShoppingList, error) {
	var list ShoppingList
	var itemsJSON string
	err := row.Scan(&list.ID, &list.MealPlanID, &list.WeekStartDate, &itemsJSON, &list.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errs.TransientIO(err, "failed to read shopping list")
	}
	if err := json.Unmarshal([]byte(itemsJSON), &list.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shopping list items: %w", err)
	}
	return &list, nil
}

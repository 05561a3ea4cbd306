package plan

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"mealmind/internal/errs"
)

// Store abstracts meal plan persistence for the callers that only read and
// write plans.
type Store interface {
	Get(ctx context.Context, familyID, weekStart string) (*MealPlan, error)
	GetByID(ctx context.Context, id string) (*MealPlan, error)
	Save(ctx context.Context, p *MealPlan) error
	Delete(ctx context.Context, id string) error
}

// Repository is a SQLite-backed plan store. Plans are stored as JSON
// documents keyed by id, with (family_id, week_start_date) unique for week
// lookups.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a plan repository on an existing connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Get retrieves the plan for a family's week, or nil when none exists.
func (r *Repository) Get(ctx context.Context, familyID, weekStart string) (*MealPlan, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT data FROM meal_plans WHERE family_id = ? AND week_start_date = ?`,
		familyID, weekStart)
	return scanPlan(row)
}

// GetByID retrieves a plan by its id, or nil when none exists.
func (r *Repository) GetByID(ctx context.Context, id string) (*MealPlan, error) {
	row := r.db.QueryRowContext(ctx, `SELECT data FROM meal_plans WHERE id = ?`, id)
	return scanPlan(row)
}

// Save inserts or replaces a plan document.
func (r *Repository) Save(ctx context.Context, p *MealPlan) error {
	if err := p.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal meal plan: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO meal_plans (id, family_id, week_start_date, status, data, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   family_id = excluded.family_id,
		   week_start_date = excluded.week_start_date,
		   status = excluded.status,
		   data = excluded.data,
		   updated_at = excluded.updated_at`,
		p.ID, p.FamilyID, p.WeekStartDate, string(p.Status), string(data), time.Now().UTC())
	if err != nil {
		return errs.TransientIO(err, "failed to save meal plan %s", p.ID)
	}
	return nil
}

// Delete removes a plan document. Deleting an unknown id is a not-found
// condition, not a silent no-op.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM meal_plans WHERE id = ?`, id)
	if err != nil {
		return errs.TransientIO(err, "failed to delete meal plan %s", id)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.NotFound("meal plan %s not found", id)
	}
	return nil
}

func scanPlan(row *sql.Row) (*MealPlan, error) {
	var data string
	if err := row.Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errs.TransientIO(err, "failed to read meal plan")
	}
	var p MealPlan
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal meal plan JSON: %w", err)
	}
	return &p, nil
}

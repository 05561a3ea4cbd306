package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"mealmind/internal/errs"
	"mealmind/internal/ics"
	"mealmind/internal/plan"
	"mealmind/internal/recipe"
	"mealmind/internal/shopping"
	"mealmind/internal/week"
)

// writeJSON emits the {"success": ...} envelope shared by all endpoints.
func writeJSON(w http.ResponseWriter, status int, payload map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errs.HTTPStatus(err), map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	})
}

func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.Validation("invalid request body: %v", err)
	}
	return nil
}

// resolvePlan loads a plan by id or by (familyId, weekStart), defaulting to
// the current week. Absence is a not-found condition, never an empty plan.
func (s *Server) resolvePlan(r *http.Request) (*plan.MealPlan, error) {
	ctx := r.Context()
	q := r.URL.Query()

	if id := q.Get("mealPlanId"); id != "" {
		p, err := s.plans.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, errs.NotFound("meal plan not found")
		}
		return p, nil
	}

	familyID := q.Get("familyId")
	if familyID == "" {
		return nil, errs.Validation("mealPlanId or familyId is required")
	}
	weekStart := q.Get("weekStart")
	if weekStart == "" {
		weekStart = week.Start(s.now()).Format(week.DateLayout)
	} else {
		aligned, err := week.StartISO(weekStart)
		if err != nil {
			return nil, err
		}
		weekStart = aligned
	}
	p, err := s.plans.Get(ctx, familyID, weekStart)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errs.NotFound("meal plan not found")
	}
	return p, nil
}

func (s *Server) handleGetMealPlan(w http.ResponseWriter, r *http.Request) {
	// Plan lookup also accepts ?id= for compatibility with the web client.
	if id := r.URL.Query().Get("id"); id != "" && r.URL.Query().Get("mealPlanId") == "" {
		q := r.URL.Query()
		q.Set("mealPlanId", id)
		r.URL.RawQuery = q.Encode()
	}
	p, err := s.resolvePlan(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"mealPlan": p,
	})
}

func (s *Server) handleUpdatePlanStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID     string      `json:"id"`
		Status plan.Status `json:"status"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if body.ID == "" {
		writeError(w, errs.Validation("meal plan id is required"))
		return
	}
	if body.Status != plan.StatusDraft && body.Status != plan.StatusFinalized {
		writeError(w, errs.Validation("invalid status %q", body.Status))
		return
	}

	p, err := s.plans.GetByID(r.Context(), body.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if p == nil {
		writeError(w, errs.NotFound("meal plan not found"))
		return
	}
	p.Status = body.Status
	if err := s.plans.Save(r.Context(), p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"status":  p.Status,
	})
}

func (s *Server) handleDeleteMealPlan(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, errs.Validation("meal plan id is required"))
		return
	}
	if err := s.plans.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Meal plan deleted",
	})
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FamilyID     string          `json:"familyId"`
		WeekStart    string          `json:"weekStart"`
		MealsPerDay  []plan.MealType `json:"mealsPerDay"`
		Restrictions []string        `json:"restrictions"`
		Favorites    []string        `json:"favorites"`
		Dislikes     []string        `json:"dislikes"`
		Cuisines     []string        `json:"cuisines"`
		CookingTime  string          `json:"cookingTime"`
		Servings     int             `json:"servings"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if body.FamilyID == "" {
		writeError(w, errs.Validation("familyId is required"))
		return
	}
	if s.planner == nil {
		writeError(w, errs.Validation("plan generation is not configured"))
		return
	}

	weekStart := body.WeekStart
	if weekStart == "" {
		weekStart = week.Start(s.now()).Format(week.DateLayout)
	} else {
		aligned, err := week.StartISO(weekStart)
		if err != nil {
			writeError(w, err)
			return
		}
		weekStart = aligned
	}

	p, err := s.planner.GeneratePlan(r.Context(), body.FamilyID, weekStart, body.MealsPerDay, recipe.Preferences{
		Restrictions: body.Restrictions,
		Favorites:    body.Favorites,
		Dislikes:     body.Dislikes,
		Cuisines:     body.Cuisines,
		CookingTime:  body.CookingTime,
		Servings:     body.Servings,
	})
	if err != nil {
		if errs.IsKind(err, errs.KindValidation) {
			writeError(w, err)
			return
		}
		log.Printf("Error generating weekly plan: %v", err)
		writeError(w, errs.TransientIO(err, "failed to generate meal plan"))
		return
	}

	// Regenerating a week replaces that week's plan instead of colliding
	// with it.
	if existing, err := s.plans.Get(r.Context(), body.FamilyID, weekStart); err == nil && existing != nil {
		p.ID = existing.ID
	}
	if err := s.plans.Save(r.Context(), p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"mealPlan": p,
	})
}

func (s *Server) handleRegenerateMeal(w http.ResponseWriter, r *http.Request) {
	var body struct {
		MealPlanID   string        `json:"mealPlanId"`
		Date         string        `json:"date"`
		MealType     plan.MealType `json:"mealType"`
		Restrictions []string      `json:"restrictions"`
		Dislikes     []string      `json:"dislikes"`
		Cuisines     []string      `json:"cuisines"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if body.MealPlanID == "" {
		writeError(w, errs.Validation("mealPlanId is required"))
		return
	}
	if body.MealType == "" {
		body.MealType = plan.Dinner
	}
	if s.source == nil {
		writeError(w, errs.Validation("recipe generation is not configured"))
		return
	}

	p, err := s.plans.GetByID(r.Context(), body.MealPlanID)
	if err != nil {
		writeError(w, err)
		return
	}
	if p == nil {
		writeError(w, errs.NotFound("meal plan not found"))
		return
	}

	constraints := recipe.Constraints{
		Restrictions: body.Restrictions,
		Dislikes:     body.Dislikes,
		Cuisines:     body.Cuisines,
	}
	if current := p.Meal(body.Date, body.MealType); current != nil {
		constraints.CurrentMeal = current.RecipeName
		constraints.Servings = current.Servings
	}

	meal, err := s.source.Regenerate(r.Context(), body.MealType, constraints)
	if err != nil {
		log.Printf("Error regenerating meal: %v", err)
		writeError(w, errs.TransientIO(err, "failed to regenerate meal"))
		return
	}

	updated, err := plan.SetSlot(p, body.Date, body.MealType, meal)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.plans.Save(r.Context(), updated); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"meal":     meal,
		"mealPlan": updated,
	})
}

func (s *Server) handleMoveSlot(w http.ResponseWriter, r *http.Request) {
	var body struct {
		MealPlanID string        `json:"mealPlanId"`
		FromDate   string        `json:"fromDate"`
		FromType   plan.MealType `json:"fromType"`
		ToDate     string        `json:"toDate"`
		ToType     plan.MealType `json:"toType"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	p, err := s.plans.GetByID(r.Context(), body.MealPlanID)
	if err != nil {
		writeError(w, err)
		return
	}
	if p == nil {
		writeError(w, errs.NotFound("meal plan not found"))
		return
	}

	updated, err := plan.MoveSlot(p, body.FromDate, body.FromType, body.ToDate, body.ToType)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.plans.Save(r.Context(), updated); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"mealPlan": updated,
	})
}

func (s *Server) handleSetSlot(w http.ResponseWriter, r *http.Request) {
	var body struct {
		MealPlanID string            `json:"mealPlanId"`
		Date       string            `json:"date"`
		MealType   plan.MealType     `json:"mealType"`
		Meal       *plan.PlannedMeal `json:"meal"` // null clears the slot
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	p, err := s.plans.GetByID(r.Context(), body.MealPlanID)
	if err != nil {
		writeError(w, err)
		return
	}
	if p == nil {
		writeError(w, errs.NotFound("meal plan not found"))
		return
	}

	updated, err := plan.SetSlot(p, body.Date, body.MealType, body.Meal)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.plans.Save(r.Context(), updated); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"mealPlan": updated,
	})
}

func (s *Server) handleImportRecipe(w http.ResponseWriter, r *http.Request) {
	var body struct {
		MealPlanID string        `json:"mealPlanId"`
		Date       string        `json:"date"`
		MealType   plan.MealType `json:"mealType"`
		URL        string        `json:"url"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if body.URL == "" {
		writeError(w, errs.Validation("url is required"))
		return
	}
	if s.importer == nil {
		writeError(w, errs.Validation("recipe import is not configured"))
		return
	}

	p, err := s.plans.GetByID(r.Context(), body.MealPlanID)
	if err != nil {
		writeError(w, err)
		return
	}
	if p == nil {
		writeError(w, errs.NotFound("meal plan not found"))
		return
	}

	meal, err := s.importer.ImportURL(r.Context(), body.URL, body.MealType)
	if err != nil {
		log.Printf("Error importing recipe from %s: %v", body.URL, err)
		writeError(w, errs.TransientIO(err, "failed to import recipe"))
		return
	}

	updated, err := plan.SetSlot(p, body.Date, body.MealType, meal)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.plans.Save(r.Context(), updated); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"meal":     meal,
		"mealPlan": updated,
	})
}

func (s *Server) handleGetShoppingList(w http.ResponseWriter, r *http.Request) {
	mealPlanID := r.URL.Query().Get("mealPlanId")
	if mealPlanID == "" {
		writeError(w, errs.Validation("mealPlanId is required"))
		return
	}
	list, err := s.lists.GetByMealPlanID(r.Context(), mealPlanID)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		writeError(w, errs.NotFound("shopping list not found"))
		return
	}
	checked, total, ratio := list.Progress()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"shoppingList": list,
		"progress": map[string]interface{}{
			"checked": checked,
			"total":   total,
			"ratio":   ratio,
		},
	})
}

func (s *Server) handleGenerateShoppingList(w http.ResponseWriter, r *http.Request) {
	var body struct {
		MealPlanID   string `json:"mealPlanId"`
		ResetChecked bool   `json:"resetChecked"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if body.MealPlanID == "" {
		writeError(w, errs.Validation("mealPlanId is required"))
		return
	}

	p, err := s.plans.GetByID(r.Context(), body.MealPlanID)
	if err != nil {
		writeError(w, err)
		return
	}
	if p == nil {
		writeError(w, errs.NotFound("meal plan not found"))
		return
	}

	existing, err := s.lists.GetByMealPlanID(r.Context(), body.MealPlanID)
	if err != nil {
		writeError(w, err)
		return
	}
	if body.ResetChecked {
		existing = nil
	}

	list := shopping.Generate(p, existing)
	if err := s.lists.Save(r.Context(), list); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"shoppingList": list,
	})
}

func (s *Server) handleSetItemChecked(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ListID  string `json:"listId"`
		ItemID  string `json:"itemId"`
		Checked bool   `json:"checked"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if body.ListID == "" || body.ItemID == "" {
		writeError(w, errs.Validation("listId and itemId are required"))
		return
	}

	list, err := s.lists.GetByID(r.Context(), body.ListID)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		writeError(w, errs.NotFound("shopping list not found"))
		return
	}

	toggle, err := s.checklist.Toggle(list, body.ItemID, body.Checked)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := toggle.Commit(r.Context()); err != nil {
		// The caller re-applies the rollback list on failure.
		writeJSON(w, errs.HTTPStatus(err), map[string]interface{}{
			"success":      false,
			"error":        err.Error(),
			"shoppingList": toggle.Rollback,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"shoppingList": toggle.Optimistic,
	})
}

func (s *Server) handleSendShoppingList(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ListID     string `json:"listId"`
		MealPlanID string `json:"mealPlanId"`
		ChatID     int64  `json:"chatId"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if body.ChatID == 0 {
		body.ChatID = s.DefaultChatID
	}
	if body.ChatID == 0 {
		writeError(w, errs.Validation("chatId is required"))
		return
	}
	if body.ListID == "" && body.MealPlanID == "" {
		writeError(w, errs.Validation("either listId or mealPlanId is required"))
		return
	}
	if s.notifier == nil {
		writeError(w, errs.Validation("telegram delivery is not configured"))
		return
	}

	var list *shopping.ShoppingList
	var err error
	if body.ListID != "" {
		list, err = s.lists.GetByID(r.Context(), body.ListID)
	} else {
		list, err = s.lists.GetByMealPlanID(r.Context(), body.MealPlanID)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		writeError(w, errs.NotFound("shopping list not found"))
		return
	}

	if err := s.notifier.Send(list, body.ChatID); err != nil {
		log.Printf("Error sending shopping list %s: %v", list.ID, err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

func (s *Server) handleExportICS(w http.ResponseWriter, r *http.Request) {
	p, err := s.resolvePlan(r)
	if err != nil {
		writeError(w, err)
		return
	}

	body := ics.Export(p)
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"`, ics.Filename(p.WeekStartDate)))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}

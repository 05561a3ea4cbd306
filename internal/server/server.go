// Package server exposes the HTTP API: meal plan access and editing,
// shopping list generation and checklist updates, calendar export, and
// Telegram delivery.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"mealmind/internal/notify"
	"mealmind/internal/plan"
	"mealmind/internal/recipe"
	"mealmind/internal/shopping"
)

// ListStore is the shopping list persistence the server needs.
type ListStore interface {
	GetByMealPlanID(ctx context.Context, mealPlanID string) (*shopping.ShoppingList, error)
	GetByID(ctx context.Context, id string) (*shopping.ShoppingList, error)
	Save(ctx context.Context, list *shopping.ShoppingList) error
	SetItemChecked(ctx context.Context, listID, itemID string, checked bool) error
}

// Server wires the stores and collaborators behind the HTTP API.
type Server struct {
	plans     plan.Store
	lists     ListStore
	checklist *shopping.ChecklistManager
	source    recipe.Source
	planner   *recipe.WeekPlanner
	importer  *recipe.Importer
	notifier  notify.Notifier

	// DefaultChatID is the Telegram chat used when a delivery request names
	// none.
	DefaultChatID int64

	// now is injectable so week-sensitive handlers are testable.
	now func() time.Time
}

// New creates a server. notifier, importer and planner may be nil when the
// channel or model is not configured; the matching endpoints then report the
// feature as unavailable.
func New(plans plan.Store, lists ListStore, source recipe.Source, planner *recipe.WeekPlanner, importer *recipe.Importer, notifier notify.Notifier) *Server {
	return &Server{
		plans:     plans,
		lists:     lists,
		checklist: shopping.NewChecklistManager(lists),
		source:    source,
		planner:   planner,
		importer:  importer,
		notifier:  notifier,
		now:       time.Now,
	}
}

// Router builds the chi router with all API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/mealplans", s.handleGetMealPlan)
		r.Put("/mealplans", s.handleUpdatePlanStatus)
		r.Delete("/mealplans", s.handleDeleteMealPlan)
		r.Post("/mealplans/generate", s.handleGeneratePlan)
		r.Post("/mealplans/regenerate", s.handleRegenerateMeal)
		r.Post("/mealplans/move", s.handleMoveSlot)
		r.Post("/mealplans/slot", s.handleSetSlot)
		r.Post("/mealplans/import", s.handleImportRecipe)

		r.Get("/shopping", s.handleGetShoppingList)
		r.Post("/shopping", s.handleGenerateShoppingList)
		r.Put("/shopping", s.handleSetItemChecked)
		r.Post("/shopping/telegram", s.handleSendShoppingList)

		r.Get("/export/ics", s.handleExportICS)
	})
	return r
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mealmind/internal/config"
	"mealmind/internal/database"
	"mealmind/internal/llm"
	"mealmind/internal/notify"
	"mealmind/internal/plan"
	"mealmind/internal/recipe"
	"mealmind/internal/server"
	"mealmind/internal/shopping"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	// 2. Initialize the SQLite database
	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	planRepo := plan.NewRepository(db.SQL)
	listRepo := shopping.NewRepository(db.SQL)

	// 3. Initialize Gemini-backed recipe source and web importer
	geminiClient, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, 0.8)
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}
	defer geminiClient.Close()

	source := recipe.NewGeminiSource(geminiClient)
	planner := recipe.NewWeekPlanner(geminiClient)
	importer := recipe.NewImporter(geminiClient)

	// 4. Telegram delivery is optional
	var notifier notify.Notifier
	if cfg.TelegramBotToken != "" {
		tn, err := notify.NewTelegramNotifier(cfg.TelegramBotToken)
		if err != nil {
			log.Fatalf("Failed to initialize Telegram notifier: %v", err)
		}
		notifier = tn
	} else {
		log.Println("TELEGRAM_BOT_TOKEN not set; shopping list delivery disabled")
	}

	// 5. Start Server with Graceful Shutdown
	api := server.New(planRepo, listRepo, source, planner, importer, notifier)
	api.DefaultChatID = cfg.TelegramDefaultChatID

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.Router(),
	}

	go func() {
		log.Printf("MealMind server listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

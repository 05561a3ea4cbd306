// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath string
	Port         string

	// Gemini (slot regeneration and web import)
	GeminiAPIKey string
	GeminiModel  string

	// Telegram (shopping list delivery, optional)
	TelegramBotToken      string
	TelegramDefaultChatID int64
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	geminiModel := os.Getenv("GEMINI_MODEL")
	if geminiModel == "" {
		geminiModel = "gemini-2.0-flash"
	}

	dbPath := os.Getenv("MEALMIND_DB_PATH")
	if dbPath == "" {
		dbPath = "data/mealmind.db"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Telegram is optional: without a token the notify endpoint reports the
	// channel as unconfigured instead of failing startup.
	telegramToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	var chatID int64
	if v := os.Getenv("TELEGRAM_DEFAULT_CHAT_ID"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_DEFAULT_CHAT_ID %q: %w", v, err)
		}
		chatID = parsed
	}

	return &Config{
		DatabasePath:          dbPath,
		Port:                  port,
		GeminiAPIKey:          geminiAPIKey,
		GeminiModel:           geminiModel,
		TelegramBotToken:      telegramToken,
		TelegramDefaultChatID: chatID,
	}, nil
}

package config

import "testing"

func TestNewFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test-key")
		t.Setenv("GEMINI_MODEL", "")
		t.Setenv("MEALMIND_DB_PATH", "")
		t.Setenv("PORT", "")
		t.Setenv("TELEGRAM_BOT_TOKEN", "")
		t.Setenv("TELEGRAM_DEFAULT_CHAT_ID", "")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.GeminiModel != "gemini-2.0-flash" {
			t.Errorf("unexpected model default: %s", cfg.GeminiModel)
		}
		if cfg.DatabasePath != "data/mealmind.db" {
			t.Errorf("unexpected db path default: %s", cfg.DatabasePath)
		}
		if cfg.Port != "8080" {
			t.Errorf("unexpected port default: %s", cfg.Port)
		}
		if cfg.TelegramBotToken != "" || cfg.TelegramDefaultChatID != 0 {
			t.Error("telegram should be unset by default")
		}
	})

	t.Run("explicit values", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test-key")
		t.Setenv("GEMINI_MODEL", "gemini-2.0-pro")
		t.Setenv("MEALMIND_DB_PATH", "/tmp/test.db")
		t.Setenv("PORT", "9090")
		t.Setenv("TELEGRAM_BOT_TOKEN", "bot-token")
		t.Setenv("TELEGRAM_DEFAULT_CHAT_ID", "12345")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.GeminiModel != "gemini-2.0-pro" || cfg.DatabasePath != "/tmp/test.db" || cfg.Port != "9090" {
			t.Errorf("unexpected config: %+v", cfg)
		}
		if cfg.TelegramDefaultChatID != 12345 {
			t.Errorf("unexpected chat id: %d", cfg.TelegramDefaultChatID)
		}
	})

	t.Run("missing api key", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")
		if _, err := NewFromEnv(); err == nil {
			t.Error("expected error when GEMINI_API_KEY is unset")
		}
	})

	t.Run("bad chat id", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test-key")
		t.Setenv("TELEGRAM_DEFAULT_CHAT_ID", "not-a-number")
		if _, err := NewFromEnv(); err == nil {
			t.Error("expected error for non-numeric chat id")
		}
	})
}

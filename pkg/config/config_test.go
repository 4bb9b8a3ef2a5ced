package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "GEMINI_MODEL", "GEMINI_BASE_URL", "AI_TIMEOUT_SECONDS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if cfg.GeminiModel != "gemini-2.5-flash" {
		t.Errorf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.GeminiBaseURL != "https://generativelanguage.googleapis.com" {
		t.Errorf("GeminiBaseURL = %q", cfg.GeminiBaseURL)
	}
	if cfg.AITimeout != 60*time.Second {
		t.Errorf("AITimeout = %v, want 60s", cfg.AITimeout)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("GOOGLE_API_KEY", "abc123")
	t.Setenv("AI_TIMEOUT_SECONDS", "5")

	cfg := Load()
	if cfg.Port != "9999" {
		t.Errorf("Port = %q, want 9999", cfg.Port)
	}
	if cfg.GeminiAPIKey != "abc123" {
		t.Errorf("GeminiAPIKey = %q, want abc123", cfg.GeminiAPIKey)
	}
	if cfg.AITimeout != 5*time.Second {
		t.Errorf("AITimeout = %v, want 5s", cfg.AITimeout)
	}
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("AI_TIMEOUT_SECONDS", "not-a-number")

	cfg := Load()
	if cfg.AITimeout != 60*time.Second {
		t.Errorf("AITimeout = %v, want default 60s", cfg.AITimeout)
	}
}

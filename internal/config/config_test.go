package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DRAFT_SLOT_CHOICES", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "")
	t.Setenv("FRONTEND_BASE_URL", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Planner.DraftSlotChoices != 4 {
		t.Fatalf("DraftSlotChoices = %d, want 4", cfg.Planner.DraftSlotChoices)
	}
	if len(cfg.CORSAllowOrigins) != 2 {
		t.Fatalf("CORSAllowOrigins = %v, want two defaults", cfg.CORSAllowOrigins)
	}
	if cfg.FrontendBaseURL != "http://localhost:3000" {
		t.Fatalf("FrontendBaseURL = %q", cfg.FrontendBaseURL)
	}
}

func TestParsersFallBackOnGarbage(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_DUR", "soon")
	t.Setenv("X_SECS", "2.5")
	t.Setenv("X_LIST", " a, ,b ")
	t.Setenv("X_FLOAT", "warm")

	if got := Int("X_INT", 7); got != 7 {
		t.Fatalf("Int = %d, want 7", got)
	}
	if got := Float("X_FLOAT", 0.7); got != 0.7 {
		t.Fatalf("Float = %v, want 0.7", got)
	}
	if got := Duration("X_DUR", time.Second); got != time.Second {
		t.Fatalf("Duration = %s, want 1s", got)
	}
	if got := Duration("X_SECS", time.Second); got != 2500*time.Millisecond {
		t.Fatalf("Duration = %s, want 2.5s", got)
	}
	got := List("X_LIST", nil)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("List = %v, want [a b]", got)
	}
}

package update

import "testing"

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("FOCUSFLOW_DATA_PATH", "/tmp/ff.db")
	t.Setenv("FOCUSFLOW_THEME", "light")
	t.Setenv("FOCUSFLOW_FOCUS_MINUTES", "50")
	t.Setenv("FOCUSFLOW_CHAT_MODEL", "gemini-2.5-flash-lite")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.DataPath != "/tmp/ff.db" {
		t.Fatalf("unexpected data path %q", cfg.DataPath)
	}
	if cfg.Theme != "light" {
		t.Fatalf("unexpected theme %q", cfg.Theme)
	}
	if cfg.FocusWorkMinutes != 50 {
		t.Fatalf("unexpected focus minutes %d", cfg.FocusWorkMinutes)
	}
	if cfg.ChatModel != "gemini-2.5-flash-lite" {
		t.Fatalf("unexpected chat model %q", cfg.ChatModel)
	}
}

func TestRuntimeConfigIgnoresInvalidValues(t *testing.T) {
	t.Setenv("FOCUSFLOW_FOCUS_MINUTES", "soon")
	t.Setenv("FOCUSFLOW_THEME", "")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.FocusWorkMinutes != 25 {
		t.Fatalf("expected default focus minutes kept, got %d", cfg.FocusWorkMinutes)
	}
	if cfg.Theme != "dark" {
		t.Fatalf("expected default theme kept, got %q", cfg.Theme)
	}
}

package ai

import (
	"testing"

	"focusflow/internal/model"
)

func TestParseTaskSuggestions(t *testing.T) {
	raw := `[
		{"text": "Read about goroutines", "priority": "High", "category": "Learning"},
		{"text": "Write a channel example", "priority": "Medium"},
		{"text": "   ", "priority": "Low"},
		{"text": "Review notes", "priority": "Urgent"}
	]`
	got, err := ParseTaskSuggestions(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected empty-text suggestion dropped, got %d items", len(got))
	}
	if got[0].Text != "Read about goroutines" || got[0].Priority != model.PriorityHigh {
		t.Fatalf("unexpected first suggestion: %+v", got[0])
	}
	if got[2].Priority != model.PriorityMedium {
		t.Fatalf("expected unknown priority coerced to Medium, got %q", got[2].Priority)
	}
}

func TestParseTaskSuggestionsStripsCodeFence(t *testing.T) {
	fenced := "```json\n[{\"text\": \"Practice slices\", \"priority\": \"Low\"}]\n```"
	got, err := ParseTaskSuggestions(fenced)
	if err != nil {
		t.Fatalf("parse fenced: %v", err)
	}
	if len(got) != 1 || got[0].Text != "Practice slices" {
		t.Fatalf("unexpected result: %+v", got)
	}

	bare := "```\n[{\"text\": \"Practice maps\", \"priority\": \"Low\"}]\n```"
	got, err = ParseTaskSuggestions(bare)
	if err != nil {
		t.Fatalf("parse bare fence: %v", err)
	}
	if len(got) != 1 || got[0].Text != "Practice maps" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestParseTaskSuggestionsRejectsMalformed(t *testing.T) {
	if _, err := ParseTaskSuggestions(`{"text": "not an array"}`); err == nil {
		t.Fatal("expected error for non-array payload")
	}
	if _, err := ParseTaskSuggestions("sorry, I cannot help with that"); err == nil {
		t.Fatal("expected error for prose payload")
	}
}

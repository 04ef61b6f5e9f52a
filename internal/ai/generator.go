// Package ai defines the content-generation capability consumed by the
// derived-state engine and the coach view, plus its Gemini implementation.
// Every operation is network-bound, independently fallible, and carries no
// retry policy; callers degrade to fallbacks on error.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"focusflow/internal/model"
)

// ErrDisabled is returned by the Disabled generator when no API key is
// configured. Callers treat it like any other generation failure.
var ErrDisabled = errors.New("ai: content generation disabled")

// Fallback strings used by call sites when an operation fails.
const (
	FallbackStrategy = "Let's break this down into small, manageable steps, celebrate every win, and stay consistent!"
	FallbackSummary  = "Could not generate summary at this time."
	FallbackRest     = "Take a moment to stretch and breathe deeply."
)

// ProgressContext describes where the user is in their journey when daily
// tasks are requested.
type ProgressContext struct {
	DayNumber            int
	RecentCompletedTasks []string
}

// TaskSuggestion is one generated task descriptor. It carries no identity;
// the engine assigns IDs when a plan is built from suggestions.
type TaskSuggestion struct {
	Text     string         `json:"text"`
	Priority model.Priority `json:"priority"`
	Category string         `json:"category,omitempty"`
}

// CoachContext is the situational data injected into the coach's system
// instruction.
type CoachContext struct {
	TasksTotal     int
	TasksCompleted int
	LastSession    *model.FocusSession
}

type ContentGenerator interface {
	GenerateDailyTasks(ctx context.Context, goal model.Goal, progress ProgressContext) ([]TaskSuggestion, error)
	GenerateGoalStrategy(ctx context.Context, goalText string) (string, error)
	GenerateDailySummary(ctx context.Context, plan model.DailyPlan, goal model.Goal) (string, error)
	GeneratePsychoProfile(ctx context.Context, plans []model.DailyPlan, now time.Time) (*model.PsychoProfile, error)
	GenerateRestSuggestion(ctx context.Context) (string, error)
	// StreamCoachResponse emits reply text chunks until the model finishes
	// or ctx is cancelled. The channel is closed in either case; no state
	// is mutated for a consumer that walked away.
	StreamCoachResponse(ctx context.Context, history []model.ChatMessage, coach CoachContext) (<-chan string, error)
}

// ParseTaskSuggestions validates generator output at the boundary before it
// can reach persisted state: code fences are stripped, empty texts dropped,
// and unknown priorities coerced to Medium.
func ParseTaskSuggestions(raw string) ([]TaskSuggestion, error) {
	cleaned := stripCodeFence(raw)
	var suggestions []TaskSuggestion
	if err := json.Unmarshal([]byte(cleaned), &suggestions); err != nil {
		return nil, fmt.Errorf("ai: parse task suggestions: %w", err)
	}
	out := make([]TaskSuggestion, 0, len(suggestions))
	for _, s := range suggestions {
		s.Text = strings.TrimSpace(s.Text)
		if s.Text == "" {
			continue
		}
		if !s.Priority.IsValid() {
			s.Priority = model.PriorityMedium
		}
		s.Category = strings.TrimSpace(s.Category)
		out = append(out, s)
	}
	return out, nil
}

func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	} else {
		return s
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// Disabled is the generator used when no API key is configured. Every
// operation fails with ErrDisabled so the app runs fully offline.
type Disabled struct{}

func (Disabled) GenerateDailyTasks(context.Context, model.Goal, ProgressContext) ([]TaskSuggestion, error) {
	return nil, ErrDisabled
}

func (Disabled) GenerateGoalStrategy(context.Context, string) (string, error) {
	return "", ErrDisabled
}

func (Disabled) GenerateDailySummary(context.Context, model.DailyPlan, model.Goal) (string, error) {
	return "", ErrDisabled
}

func (Disabled) GeneratePsychoProfile(context.Context, []model.DailyPlan, time.Time) (*model.PsychoProfile, error) {
	return nil, ErrDisabled
}

func (Disabled) GenerateRestSuggestion(context.Context) (string, error) {
	return "", ErrDisabled
}

func (Disabled) StreamCoachResponse(context.Context, []model.ChatMessage, CoachContext) (<-chan string, error) {
	return nil, ErrDisabled
}

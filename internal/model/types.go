package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidPriority = errors.New("model: invalid task priority")

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// User is the onboarded identity. Created once; only the name is editable.
type User struct {
	Name      string `json:"name"`
	CreatedAt int64  `json:"createdAt"`
}

// Goal is the single active objective. Replacing it invalidates every
// stored daily plan.
type Goal struct {
	Text      string `json:"text"`
	Strategy  string `json:"strategy"`
	CreatedAt int64  `json:"createdAt"`
}

// Task timestamps are Unix milliseconds so exported documents stay
// interchangeable with backups produced by earlier builds.
type Task struct {
	ID          string   `json:"id"`
	Text        string   `json:"text"`
	Completed   bool     `json:"completed"`
	CreatedAt   int64    `json:"createdAt"`
	CompletedAt *int64   `json:"completedAt,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	Category    string   `json:"category,omitempty"`
}

func NewTask(text string, priority Priority, category string, now time.Time) Task {
	return Task{
		ID:        uuid.New().String(),
		Text:      text,
		CreatedAt: Millis(now),
		Priority:  priority,
		Category:  category,
	}
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return errors.New("model: task text is required")
	}
	if t.Priority != "" && !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.Completed && t.CompletedAt == nil {
		return errors.New("model: completed_at is required when task is completed")
	}
	if !t.Completed && t.CompletedAt != nil {
		return errors.New("model: completed_at must be nil when task is not completed")
	}
	return nil
}

// DailyPlan holds the tasks assigned to one local calendar date. The date
// string is the identity; at most one plan per date may exist.
type DailyPlan struct {
	Date  string `json:"date"`
	Tasks []Task `json:"tasks"`
}

func (p DailyPlan) HasCompletedTask() bool {
	for _, t := range p.Tasks {
		if t.Completed {
			return true
		}
	}
	return false
}

func (p DailyPlan) CompletedCount() int {
	n := 0
	for _, t := range p.Tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// FocusSession is an append-only record of one timer run. Duration is
// minutes derived from wall-clock timestamps, never from tick counts.
type FocusSession struct {
	ID        string `json:"id"`
	StartTime int64  `json:"startTime"`
	Duration  int    `json:"duration"`
	Completed bool   `json:"completed"`
}

func NewFocusSession(start time.Time, durationMin int, completed bool) FocusSession {
	return FocusSession{
		ID:        uuid.New().String(),
		StartTime: Millis(start),
		Duration:  durationMin,
		Completed: completed,
	}
}

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

type MessagePart struct {
	Text string `json:"text"`
}

type ChatMessage struct {
	Role  Role          `json:"role"`
	Parts []MessagePart `json:"parts"`
}

func (m ChatMessage) Text() string {
	var b strings.Builder
	for _, p := range m.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

// PsychoProfile is replaced wholesale on regeneration and considered stale
// once the calendar month no longer matches.
type PsychoProfile struct {
	Month                string   `json:"month"`
	Year                 int      `json:"year"`
	Strengths            []string `json:"strengths"`
	GrowthAreas          []string `json:"growthAreas"`
	ProductivityPatterns string   `json:"productivityPatterns"`
	OverallSummary       string   `json:"overallSummary"`
}

func (p PsychoProfile) StaleAt(now time.Time) bool {
	return p.Month != now.Month().String() || p.Year != now.Year()
}

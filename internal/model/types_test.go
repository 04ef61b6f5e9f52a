package model

import (
	"testing"
	"time"
)

func TestTaskValidate(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	task := NewTask("Read chapter 3", PriorityHigh, "Learning", now)
	if err := task.Validate(); err != nil {
		t.Fatalf("valid task rejected: %v", err)
	}
	if task.ID == "" {
		t.Fatal("expected generated task id")
	}

	done := task
	done.Completed = true
	if err := done.Validate(); err == nil {
		t.Fatal("expected error: completed without completed_at")
	}
	at := Millis(now)
	done.CompletedAt = &at
	if err := done.Validate(); err != nil {
		t.Fatalf("completed task rejected: %v", err)
	}

	undone := done
	undone.Completed = false
	if err := undone.Validate(); err == nil {
		t.Fatal("expected error: completed_at set on incomplete task")
	}

	bad := task
	bad.Priority = Priority("Urgent")
	if err := bad.Validate(); err == nil {
		t.Fatal("expected invalid priority error")
	}
}

func TestDateString(t *testing.T) {
	day := time.Date(2024, 3, 7, 23, 30, 0, 0, time.Local)
	if got := DateString(day); got != "2024-03-07" {
		t.Fatalf("expected zero-padded date, got %q", got)
	}
	if got := YesterdayString(time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local)); got != "2024-02-29" {
		t.Fatalf("expected leap-day rollover, got %q", got)
	}
}

func TestLastCompletedDate(t *testing.T) {
	at := int64(1)
	plans := []DailyPlan{
		{Date: "2024-01-03", Tasks: []Task{{ID: "a", Text: "x", Completed: true, CompletedAt: &at}}},
		{Date: "2024-01-05", Tasks: []Task{{ID: "b", Text: "y"}}},
		{Date: "2024-01-01", Tasks: []Task{{ID: "c", Text: "z", Completed: true, CompletedAt: &at}}},
	}
	if got := LastCompletedDate(plans); got != "2024-01-03" {
		t.Fatalf("expected 2024-01-03, got %q", got)
	}
	if got := LastCompletedDate(nil); got != "" {
		t.Fatalf("expected empty date for no plans, got %q", got)
	}
}

func TestProfileStaleAt(t *testing.T) {
	p := PsychoProfile{Month: "January", Year: 2024}
	if p.StaleAt(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("profile should be fresh within its month")
	}
	if !p.StaleAt(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("profile should be stale in the next month")
	}
}

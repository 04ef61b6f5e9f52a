package engine

import (
	"context"
	"testing"
	"time"

	"focusflow/internal/ai"
	"focusflow/internal/model"
	"focusflow/internal/state"
	"focusflow/internal/storage"
)

type fakeGenerator struct {
	ai.Disabled

	suggestions    []ai.TaskSuggestion
	suggestionsErr error
	taskCalls      int

	strategy    string
	strategyErr error
}

func (f *fakeGenerator) GenerateDailyTasks(context.Context, model.Goal, ai.ProgressContext) ([]ai.TaskSuggestion, error) {
	f.taskCalls++
	return f.suggestions, f.suggestionsErr
}

func (f *fakeGenerator) GenerateGoalStrategy(context.Context, string) (string, error) {
	return f.strategy, f.strategyErr
}

func (f *fakeGenerator) StreamCoachResponse(context.Context, []model.ChatMessage, ai.CoachContext) (<-chan string, error) {
	out := make(chan string, 2)
	out <- "You've got "
	out <- "this!"
	close(out)
	return out, nil
}

func newTestEngine(t *testing.T, today time.Time) (*Engine, *state.Manager, *fakeGenerator) {
	t.Helper()
	states := state.NewManager(storage.NewMemoryStore())
	states.Hydrate(context.Background())
	states.SetUser(context.Background(), &model.User{Name: "Ada", CreatedAt: 1})

	gen := &fakeGenerator{
		suggestions: []ai.TaskSuggestion{
			{Text: "Read about goroutines", Priority: model.PriorityHigh, Category: "Learning"},
			{Text: "Write a channel example", Priority: model.PriorityMedium},
			{Text: "Skim the sync package docs", Priority: model.PriorityLow},
		},
		strategy: "Small steps, every day.",
	}
	e := New(states, gen)
	e.now = func() time.Time { return today }
	return e, states, gen
}

func planWithCompletion(date string) model.DailyPlan {
	at := int64(1)
	return model.DailyPlan{Date: date, Tasks: []model.Task{
		{ID: "done-" + date, Text: "done", Completed: true, CompletedAt: &at, CreatedAt: 1},
	}}
}

func planWithoutCompletion(date string) model.DailyPlan {
	return model.DailyPlan{Date: date, Tasks: []model.Task{
		{ID: "todo-" + date, Text: "todo", CreatedAt: 1},
	}}
}

func localDate(t *testing.T, value string) time.Time {
	t.Helper()
	day, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return day.Add(9 * time.Hour)
}

func TestStreakResetsWhenLastCompletionTooOld(t *testing.T) {
	ctx := context.Background()
	e, states, _ := newTestEngine(t, localDate(t, "2024-01-05"))
	states.SetDailyPlans(ctx, []model.DailyPlan{planWithCompletion("2024-01-01")})
	states.SetStreak(ctx, 5)
	states.SetLastLogin(ctx, "2024-01-05")

	e.Reconcile(ctx)

	if got := states.State().Streak; got != 0 {
		t.Fatalf("expected streak reset to 0, got %d", got)
	}
}

func TestStreakSurvivesYesterdayCompletion(t *testing.T) {
	ctx := context.Background()
	e, states, _ := newTestEngine(t, localDate(t, "2024-01-10"))
	states.SetDailyPlans(ctx, []model.DailyPlan{planWithCompletion("2024-01-09")})
	states.SetStreak(ctx, 4)
	states.SetLastLogin(ctx, "2024-01-10")

	e.Reconcile(ctx)

	if got := states.State().Streak; got != 4 {
		t.Fatalf("expected streak untouched, got %d", got)
	}
}

func TestStreakResetsWhenNoCompletionAnywhere(t *testing.T) {
	ctx := context.Background()
	e, states, _ := newTestEngine(t, localDate(t, "2024-01-10"))
	states.SetDailyPlans(ctx, []model.DailyPlan{planWithoutCompletion("2024-01-09")})
	states.SetStreak(ctx, 3)
	states.SetLastLogin(ctx, "2024-01-10")

	e.Reconcile(ctx)

	if got := states.State().Streak; got != 0 {
		t.Fatalf("expected streak reset after retroactive un-completion, got %d", got)
	}
}

func TestReconcileDoesNothingWithoutUser(t *testing.T) {
	ctx := context.Background()
	e, states, gen := newTestEngine(t, localDate(t, "2024-01-10"))
	states.SetUser(ctx, nil)
	states.SetGoal(ctx, &model.Goal{Text: "Learn Go", CreatedAt: 1})

	e.Reconcile(ctx)

	if gen.taskCalls != 0 {
		t.Fatalf("expected no generation without a user, got %d calls", gen.taskCalls)
	}
	if got := states.State().LastLogin; got != "" {
		t.Fatalf("expected gate untouched, got %q", got)
	}
}

func TestGenerationGateFiresOncePerDay(t *testing.T) {
	ctx := context.Background()
	e, states, gen := newTestEngine(t, localDate(t, "2024-01-10"))
	states.SetGoal(ctx, &model.Goal{Text: "Learn Go", CreatedAt: 1})

	e.Reconcile(ctx)
	e.Reconcile(ctx)

	if gen.taskCalls != 1 {
		t.Fatalf("expected exactly one generator invocation, got %d", gen.taskCalls)
	}
	app := states.State()
	if app.LastLogin != "2024-01-10" {
		t.Fatalf("expected gate consumed, lastLogin %q", app.LastLogin)
	}
	count := 0
	for _, p := range app.DailyPlans {
		if p.Date == "2024-01-10" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one plan for today, got %d", count)
	}
	plan, _ := model.FindPlan(app.DailyPlans, "2024-01-10")
	if len(plan.Tasks) != 3 {
		t.Fatalf("expected 3 generated tasks, got %d", len(plan.Tasks))
	}
	for _, task := range plan.Tasks {
		if task.ID == "" || task.Completed || task.CreatedAt == 0 {
			t.Fatalf("generated task not initialized: %+v", task)
		}
	}
}

func TestGenerationSkippedWithoutGoal(t *testing.T) {
	ctx := context.Background()
	e, states, gen := newTestEngine(t, localDate(t, "2024-01-10"))

	e.Reconcile(ctx)

	if gen.taskCalls != 0 {
		t.Fatalf("expected no generation without a goal, got %d calls", gen.taskCalls)
	}
	if got := states.State().LastLogin; got != "2024-01-10" {
		t.Fatalf("expected gate still consumed, lastLogin %q", got)
	}
}

func TestGenerationSkippedWhenPlanExists(t *testing.T) {
	ctx := context.Background()
	e, states, gen := newTestEngine(t, localDate(t, "2024-01-10"))
	states.SetGoal(ctx, &model.Goal{Text: "Learn Go", CreatedAt: 1})
	states.SetDailyPlans(ctx, []model.DailyPlan{planWithoutCompletion("2024-01-10")})

	e.Reconcile(ctx)

	if gen.taskCalls != 0 {
		t.Fatalf("expected no generation when today's plan exists, got %d calls", gen.taskCalls)
	}
}

func TestGenerationFailureConsumesGate(t *testing.T) {
	ctx := context.Background()
	e, states, gen := newTestEngine(t, localDate(t, "2024-01-10"))
	states.SetGoal(ctx, &model.Goal{Text: "Learn Go", CreatedAt: 1})
	gen.suggestionsErr = context.DeadlineExceeded

	e.Reconcile(ctx)

	app := states.State()
	if len(app.DailyPlans) != 0 {
		t.Fatalf("expected no plan on failure, got %+v", app.DailyPlans)
	}
	if app.LastLogin != "2024-01-10" {
		t.Fatalf("expected gate consumed on failure, lastLogin %q", app.LastLogin)
	}

	e.Reconcile(ctx)
	if gen.taskCalls != 1 {
		t.Fatalf("expected no same-day retry, got %d calls", gen.taskCalls)
	}
}

func TestGenerationEmptyResultLeavesTodayPlanless(t *testing.T) {
	ctx := context.Background()
	e, states, gen := newTestEngine(t, localDate(t, "2024-01-10"))
	states.SetGoal(ctx, &model.Goal{Text: "Learn Go", CreatedAt: 1})
	gen.suggestions = nil

	e.Reconcile(ctx)

	if len(states.State().DailyPlans) != 0 {
		t.Fatalf("expected no plan from empty suggestions")
	}
}

func TestProgressContextCountsRecentCompletions(t *testing.T) {
	plans := []model.DailyPlan{
		planWithCompletion("2024-01-05"),
		planWithCompletion("2024-01-06"),
		planWithCompletion("2024-01-07"),
		planWithCompletion("2024-01-08"),
	}
	texts := recentCompletedTexts(plans, 3)
	if len(texts) != 3 {
		t.Fatalf("expected completions from last 3 plans only, got %d", len(texts))
	}
	if texts[0] != "done" || texts[2] != "done" {
		t.Fatalf("unexpected texts: %v", texts)
	}
}

func TestFirstCompletionContinuesStreak(t *testing.T) {
	ctx := context.Background()
	e, states, _ := newTestEngine(t, localDate(t, "2024-01-10"))
	today := planWithoutCompletion("2024-01-10")
	states.SetDailyPlans(ctx, []model.DailyPlan{planWithCompletion("2024-01-09"), today})
	states.SetStreak(ctx, 4)

	e.ToggleTask(ctx, today.Tasks[0].ID)

	app := states.State()
	if app.Streak != 5 {
		t.Fatalf("expected streak 5, got %d", app.Streak)
	}
	plan, _ := model.FindPlan(app.DailyPlans, "2024-01-10")
	if !plan.Tasks[0].Completed || plan.Tasks[0].CompletedAt == nil {
		t.Fatalf("task not completed properly: %+v", plan.Tasks[0])
	}
}

func TestFirstCompletionRestartsStreak(t *testing.T) {
	ctx := context.Background()
	e, states, _ := newTestEngine(t, localDate(t, "2024-01-10"))
	today := planWithoutCompletion("2024-01-10")
	// Yesterday's plan exists but has no completions.
	states.SetDailyPlans(ctx, []model.DailyPlan{planWithoutCompletion("2024-01-09"), today})
	states.SetStreak(ctx, 4)

	e.ToggleTask(ctx, today.Tasks[0].ID)

	if got := states.State().Streak; got != 1 {
		t.Fatalf("expected streak pinned to 1, got %d", got)
	}
}

func TestFirstCompletionWithNoYesterdayPlanStartsAtOne(t *testing.T) {
	ctx := context.Background()
	e, states, _ := newTestEngine(t, localDate(t, "2024-01-10"))
	today := planWithoutCompletion("2024-01-10")
	states.SetDailyPlans(ctx, []model.DailyPlan{today})

	e.ToggleTask(ctx, today.Tasks[0].ID)

	if got := states.State().Streak; got != 1 {
		t.Fatalf("expected streak 1, got %d", got)
	}
}

func TestSecondCompletionDoesNotIncrement(t *testing.T) {
	ctx := context.Background()
	e, states, _ := newTestEngine(t, localDate(t, "2024-01-10"))
	at := int64(1)
	today := model.DailyPlan{Date: "2024-01-10", Tasks: []model.Task{
		{ID: "t1", Text: "first", Completed: true, CompletedAt: &at, CreatedAt: 1},
		{ID: "t2", Text: "second", CreatedAt: 1},
	}}
	states.SetDailyPlans(ctx, []model.DailyPlan{planWithCompletion("2024-01-09"), today})
	states.SetStreak(ctx, 5)

	e.ToggleTask(ctx, "t2")

	if got := states.State().Streak; got != 5 {
		t.Fatalf("expected at most +1 per day, got %d", got)
	}
}

func TestToggleOffClearsCompletedAt(t *testing.T) {
	ctx := context.Background()
	e, states, _ := newTestEngine(t, localDate(t, "2024-01-10"))
	at := int64(1)
	today := model.DailyPlan{Date: "2024-01-10", Tasks: []model.Task{
		{ID: "t1", Text: "first", Completed: true, CompletedAt: &at, CreatedAt: 1},
	}}
	states.SetDailyPlans(ctx, []model.DailyPlan{today})

	e.ToggleTask(ctx, "t1")

	plan, _ := model.FindPlan(states.State().DailyPlans, "2024-01-10")
	if plan.Tasks[0].Completed || plan.Tasks[0].CompletedAt != nil {
		t.Fatalf("expected task un-completed, got %+v", plan.Tasks[0])
	}
}

func TestAddTaskCreatesTodayPlanWhenMissing(t *testing.T) {
	ctx := context.Background()
	e, states, _ := newTestEngine(t, localDate(t, "2024-01-10"))

	e.AddTask(ctx, "  Ship the thing  ")

	plan, idx := model.FindPlan(states.State().DailyPlans, "2024-01-10")
	if idx < 0 || len(plan.Tasks) != 1 {
		t.Fatalf("expected today's plan with one task, got %+v", states.State().DailyPlans)
	}
	task := plan.Tasks[0]
	if task.Text != "Ship the thing" || task.Priority != model.PriorityMedium {
		t.Fatalf("unexpected manual task: %+v", task)
	}
}

func TestDeleteTask(t *testing.T) {
	ctx := context.Background()
	e, states, _ := newTestEngine(t, localDate(t, "2024-01-10"))
	today := planWithoutCompletion("2024-01-10")
	states.SetDailyPlans(ctx, []model.DailyPlan{today})

	e.DeleteTask(ctx, today.Tasks[0].ID)

	plan, _ := model.FindPlan(states.State().DailyPlans, "2024-01-10")
	if len(plan.Tasks) != 0 {
		t.Fatalf("expected task deleted, got %+v", plan.Tasks)
	}
}

func TestSetGoalCascadesAndGeneratesDayOne(t *testing.T) {
	ctx := context.Background()
	e, states, gen := newTestEngine(t, localDate(t, "2024-01-10"))
	states.SetDailyPlans(ctx, []model.DailyPlan{
		planWithCompletion("2024-01-05"),
		planWithCompletion("2024-01-06"),
		planWithCompletion("2024-01-07"),
		planWithCompletion("2024-01-08"),
		planWithCompletion("2024-01-09"),
	})

	ok := e.SetGoal(ctx, "Learn Go")

	if !ok {
		t.Fatal("expected day-1 generation to succeed")
	}
	app := states.State()
	if app.Goal == nil || app.Goal.Text != "Learn Go" || app.Goal.Strategy != gen.strategy {
		t.Fatalf("unexpected goal: %+v", app.Goal)
	}
	if len(app.DailyPlans) != 1 || app.DailyPlans[0].Date != "2024-01-10" {
		t.Fatalf("expected only the fresh day-1 plan, got %+v", app.DailyPlans)
	}
}

func TestSetGoalKeepsGoalWhenGenerationFails(t *testing.T) {
	ctx := context.Background()
	e, states, gen := newTestEngine(t, localDate(t, "2024-01-10"))
	states.SetDailyPlans(ctx, []model.DailyPlan{planWithCompletion("2024-01-09")})
	gen.suggestionsErr = context.DeadlineExceeded
	gen.strategyErr = context.DeadlineExceeded

	ok := e.SetGoal(ctx, "Learn Go")

	if ok {
		t.Fatal("expected generation failure reported")
	}
	app := states.State()
	if app.Goal == nil || app.Goal.Text != "Learn Go" {
		t.Fatalf("goal should still be saved, got %+v", app.Goal)
	}
	if app.Goal.Strategy != ai.FallbackStrategy {
		t.Fatalf("expected fallback strategy, got %q", app.Goal.Strategy)
	}
	if len(app.DailyPlans) != 0 {
		t.Fatalf("expected empty plan collection, got %+v", app.DailyPlans)
	}
}

func TestClearGoalDropsPlans(t *testing.T) {
	ctx := context.Background()
	e, states, _ := newTestEngine(t, localDate(t, "2024-01-10"))
	states.SetGoal(ctx, &model.Goal{Text: "Learn Go", CreatedAt: 1})
	states.SetDailyPlans(ctx, []model.DailyPlan{planWithCompletion("2024-01-09")})

	e.ClearGoal(ctx)

	app := states.State()
	if app.Goal != nil || len(app.DailyPlans) != 0 {
		t.Fatalf("expected goal and plans cleared, got %+v", app)
	}
}

func TestRecordFocusSessionUsesWallClock(t *testing.T) {
	ctx := context.Background()
	now := localDate(t, "2024-01-10")
	e, states, _ := newTestEngine(t, now)

	// Under a minute: discarded.
	if e.RecordFocusSession(ctx, now.Add(-30*time.Second), true) {
		t.Fatal("expected sub-minute session discarded")
	}

	// The host slept mid-session; the wall-clock delta still wins.
	start := now.Add(-25*time.Minute - 30*time.Second)
	if !e.RecordFocusSession(ctx, start, true) {
		t.Fatal("expected session recorded")
	}
	sessions := states.State().FocusSessions
	if len(sessions) != 1 {
		t.Fatalf("expected one session, got %d", len(sessions))
	}
	if sessions[0].Duration != 26 {
		t.Fatalf("expected 26 minute duration from wall clock, got %d", sessions[0].Duration)
	}
	if sessions[0].StartTime != model.Millis(start) {
		t.Fatalf("unexpected start time: %d", sessions[0].StartTime)
	}
}

func TestCoachStreamFillsTrailingMessage(t *testing.T) {
	ctx := context.Background()
	e, states, _ := newTestEngine(t, localDate(t, "2024-01-10"))

	stream, err := e.SendCoachMessage(ctx, "I'm stuck")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	history := states.State().CoachHistory
	if len(history) != 2 {
		t.Fatalf("expected user message plus empty reply, got %d messages", len(history))
	}
	if history[0].Role != model.RoleUser || history[1].Role != model.RoleModel {
		t.Fatalf("unexpected roles: %+v", history)
	}

	for chunk := range stream {
		e.AppendCoachChunk(ctx, chunk)
	}

	history = states.State().CoachHistory
	if got := history[1].Text(); got != "You've got this!" {
		t.Fatalf("expected streamed reply assembled, got %q", got)
	}
}

func TestDailySummaryFallsBack(t *testing.T) {
	ctx := context.Background()
	e, states, _ := newTestEngine(t, localDate(t, "2024-01-10"))

	if got := e.DailySummary(ctx); got != ai.FallbackSummary {
		t.Fatalf("expected fallback without goal/plan, got %q", got)
	}

	states.SetGoal(ctx, &model.Goal{Text: "Learn Go", CreatedAt: 1})
	states.SetDailyPlans(ctx, []model.DailyPlan{planWithoutCompletion("2024-01-10")})
	// fakeGenerator embeds Disabled for summaries, so this degrades too.
	if got := e.DailySummary(ctx); got != ai.FallbackSummary {
		t.Fatalf("expected fallback on generator failure, got %q", got)
	}
}

func TestRestSuggestionFallsBack(t *testing.T) {
	e, _, _ := newTestEngine(t, localDate(t, "2024-01-10"))
	if got := e.RestSuggestion(context.Background()); got != ai.FallbackRest {
		t.Fatalf("expected fallback rest suggestion, got %q", got)
	}
}

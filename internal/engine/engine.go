// Package engine implements the streak/plan state machine: the reactive
// reconciliation that runs after hydration and after every accepted
// mutation, the streak increment on first task completion, and the
// goal-change cascade.
package engine

import (
	"context"
	"log"
	"math"
	"strings"
	"time"

	"focusflow/internal/ai"
	"focusflow/internal/model"
	"focusflow/internal/state"
)

type Engine struct {
	states *state.Manager
	gen    ai.ContentGenerator
	now    func() time.Time
}

func New(states *state.Manager, gen ai.ContentGenerator) *Engine {
	return &Engine{states: states, gen: gen, now: time.Now}
}

// Now is the engine's clock. Callers deriving dates must use it so tests
// and the engine agree on what "today" is.
func (e *Engine) Now() time.Time { return e.now() }

// Reconcile recomputes the derived facts from stored history. It is a
// reset-detector for the streak, never an incrementer, and it drives the
// at-most-once-per-day task generation gate. Safe to call any number of
// times; it must run only after hydration has completed.
func (e *Engine) Reconcile(ctx context.Context) {
	app := e.states.State()
	if app.User == nil {
		return
	}
	now := e.now()
	today := model.DateString(now)
	yesterday := model.YesterdayString(now)

	// Streak break detection, pure function of stored history.
	lastCompleted := model.LastCompletedDate(app.DailyPlans)
	if lastCompleted != "" {
		if lastCompleted < yesterday {
			e.states.SetStreak(ctx, 0)
		}
	} else if app.Streak > 0 {
		// All completions were retroactively undone.
		e.states.SetStreak(ctx, 0)
	}

	// Generation already attempted today.
	if app.LastLogin == today {
		return
	}
	e.generatePlanForToday(ctx, today)
	// The gate is consumed whether generation succeeded, failed, or was
	// skipped; a failure simply leaves today planless until tomorrow.
	e.states.SetLastLogin(ctx, today)
}

func (e *Engine) generatePlanForToday(ctx context.Context, today string) {
	app := e.states.State()
	if app.Goal == nil {
		return
	}
	if _, idx := model.FindPlan(app.DailyPlans, today); idx >= 0 {
		return
	}

	progress := ai.ProgressContext{
		DayNumber:            len(app.DailyPlans) + 1,
		RecentCompletedTasks: recentCompletedTexts(app.DailyPlans, 3),
	}
	suggestions, err := e.gen.GenerateDailyTasks(ctx, *app.Goal, progress)
	if err != nil {
		log.Printf("engine: generate daily tasks: %v", err)
		return
	}
	if len(suggestions) == 0 {
		return
	}

	plan := e.buildPlan(today, suggestions)
	// The generator call was a suspension point: re-read the collection
	// and drop any plan for today that appeared meanwhile.
	plans := plansWithout(e.states.State().DailyPlans, today)
	e.states.SetDailyPlans(ctx, append(plans, plan))
}

func (e *Engine) buildPlan(date string, suggestions []ai.TaskSuggestion) model.DailyPlan {
	now := e.now()
	tasks := make([]model.Task, 0, len(suggestions))
	for _, s := range suggestions {
		tasks = append(tasks, model.NewTask(s.Text, s.Priority, s.Category, now))
	}
	return model.DailyPlan{Date: date, Tasks: tasks}
}

// recentCompletedTexts collects completed task texts from the last n plans
// in collection (append) order, most recent last.
func recentCompletedTexts(plans []model.DailyPlan, n int) []string {
	start := len(plans) - n
	if start < 0 {
		start = 0
	}
	var out []string
	for _, p := range plans[start:] {
		for _, t := range p.Tasks {
			if t.Completed {
				out = append(out, t.Text)
			}
		}
	}
	return out
}

func plansWithout(plans []model.DailyPlan, date string) []model.DailyPlan {
	out := make([]model.DailyPlan, 0, len(plans))
	for _, p := range plans {
		if p.Date != date {
			out = append(out, p)
		}
	}
	return out
}

// ToggleTask flips completion for a task in today's plan. Completing the
// first task of the day carries the only streak increment in the system:
// continue from yesterday's completed plan, or pin the streak to exactly 1.
func (e *Engine) ToggleTask(ctx context.Context, taskID string) {
	now := e.now()
	today := model.DateString(now)
	app := e.states.State()

	plan, planIdx := model.FindPlan(app.DailyPlans, today)
	if planIdx < 0 {
		return
	}
	taskIdx := -1
	for i, t := range plan.Tasks {
		if t.ID == taskID {
			taskIdx = i
			break
		}
	}
	if taskIdx < 0 {
		return
	}

	task := plan.Tasks[taskIdx]
	if !task.Completed {
		if !plan.HasCompletedTask() {
			yesterdayPlan, yIdx := model.FindPlan(app.DailyPlans, model.YesterdayString(now))
			if yIdx >= 0 && yesterdayPlan.HasCompletedTask() {
				e.states.SetStreak(ctx, app.Streak+1)
			} else {
				e.states.SetStreak(ctx, 1)
			}
		}
		at := model.Millis(now)
		task.Completed = true
		task.CompletedAt = &at
	} else {
		task.Completed = false
		task.CompletedAt = nil
	}

	tasks := append([]model.Task(nil), plan.Tasks...)
	tasks[taskIdx] = task
	e.setTodayTasks(ctx, app.DailyPlans, planIdx, tasks)
}

// AddTask appends a manually created task to today's plan, creating the
// plan if it does not exist yet (a goal whose initial generation failed
// leaves the user with manual entry only).
func (e *Engine) AddTask(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	now := e.now()
	today := model.DateString(now)
	app := e.states.State()

	task := model.NewTask(text, model.PriorityMedium, "", now)
	plan, planIdx := model.FindPlan(app.DailyPlans, today)
	if planIdx < 0 {
		plans := append([]model.DailyPlan(nil), app.DailyPlans...)
		e.states.SetDailyPlans(ctx, append(plans, model.DailyPlan{Date: today, Tasks: []model.Task{task}}))
		return
	}
	tasks := append(append([]model.Task(nil), plan.Tasks...), task)
	e.setTodayTasks(ctx, app.DailyPlans, planIdx, tasks)
}

func (e *Engine) DeleteTask(ctx context.Context, taskID string) {
	today := model.DateString(e.now())
	app := e.states.State()
	plan, planIdx := model.FindPlan(app.DailyPlans, today)
	if planIdx < 0 {
		return
	}
	tasks := make([]model.Task, 0, len(plan.Tasks))
	for _, t := range plan.Tasks {
		if t.ID != taskID {
			tasks = append(tasks, t)
		}
	}
	e.setTodayTasks(ctx, app.DailyPlans, planIdx, tasks)
}

func (e *Engine) setTodayTasks(ctx context.Context, plans []model.DailyPlan, planIdx int, tasks []model.Task) {
	next := append([]model.DailyPlan(nil), plans...)
	next[planIdx] = model.DailyPlan{Date: next[planIdx].Date, Tasks: tasks}
	e.states.SetDailyPlans(ctx, next)
}

// SetGoal saves a new goal and cascades: every existing plan is discarded
// and a day-1 plan is requested before the goal is considered active. If
// that generation fails the goal still stands, with an empty collection.
// It reports whether a day-1 plan was generated.
func (e *Engine) SetGoal(ctx context.Context, goalText string) bool {
	goalText = strings.TrimSpace(goalText)
	if goalText == "" {
		return false
	}
	now := e.now()

	strategy, err := e.gen.GenerateGoalStrategy(ctx, goalText)
	if err != nil || strings.TrimSpace(strategy) == "" {
		if err != nil {
			log.Printf("engine: generate goal strategy: %v", err)
		}
		strategy = ai.FallbackStrategy
	}
	goal := model.Goal{Text: goalText, Strategy: strategy, CreatedAt: model.Millis(now)}
	e.states.SetGoal(ctx, &goal)

	suggestions, err := e.gen.GenerateDailyTasks(ctx, goal, ai.ProgressContext{DayNumber: 1})
	if err != nil || len(suggestions) == 0 {
		if err != nil {
			log.Printf("engine: generate day-1 tasks: %v", err)
		}
		e.states.SetDailyPlans(ctx, []model.DailyPlan{})
		return false
	}
	plan := e.buildPlan(model.DateString(now), suggestions)
	e.states.SetDailyPlans(ctx, []model.DailyPlan{plan})
	return true
}

// ClearGoal drops the goal and, because plans are goal-scoped, the whole
// plan collection with it.
func (e *Engine) ClearGoal(ctx context.Context) {
	e.states.SetGoal(ctx, nil)
	e.states.SetDailyPlans(ctx, []model.DailyPlan{})
}

// RecordFocusSession appends a session computed from wall-clock timestamps,
// so a suspended host process cannot corrupt the duration. Sessions under
// one minute are discarded. Reports whether the session was recorded.
func (e *Engine) RecordFocusSession(ctx context.Context, start time.Time, completed bool) bool {
	elapsed := e.now().Sub(start)
	if elapsed < time.Minute {
		return false
	}
	minutes := int(math.Round(elapsed.Minutes()))
	e.states.AppendFocusSession(ctx, model.NewFocusSession(start, minutes, completed))
	return true
}

// DailySummary returns a motivational summary for today's plan, degrading
// to a fixed string when the generator fails or no plan exists.
func (e *Engine) DailySummary(ctx context.Context) string {
	app := e.states.State()
	if app.Goal == nil {
		return ai.FallbackSummary
	}
	plan, idx := model.FindPlan(app.DailyPlans, model.DateString(e.now()))
	if idx < 0 {
		return ai.FallbackSummary
	}
	summary, err := e.gen.GenerateDailySummary(ctx, plan, *app.Goal)
	if err != nil {
		log.Printf("engine: generate daily summary: %v", err)
		return ai.FallbackSummary
	}
	return summary
}

// RegenerateProfile replaces the psycho-profile wholesale from the plan
// history. A failure leaves the previous profile in place.
func (e *Engine) RegenerateProfile(ctx context.Context) bool {
	profile, err := e.gen.GeneratePsychoProfile(ctx, e.states.State().DailyPlans, e.now())
	if err != nil {
		log.Printf("engine: generate psycho profile: %v", err)
		return false
	}
	if profile == nil {
		return false
	}
	e.states.SetPsychoProfile(ctx, profile)
	return true
}

// RestSuggestion returns a short break activity after a completed focus
// session, with a fixed fallback.
func (e *Engine) RestSuggestion(ctx context.Context) string {
	suggestion, err := e.gen.GenerateRestSuggestion(ctx)
	if err != nil || strings.TrimSpace(suggestion) == "" {
		return ai.FallbackRest
	}
	return suggestion
}

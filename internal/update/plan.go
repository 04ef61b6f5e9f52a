package update

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"focusflow/internal/model"
	"focusflow/internal/state"
	"focusflow/internal/views"
)

func (m Model) handlePlanKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Plan.Adding {
		switch msg.String() {
		case "enter":
			text := m.Plan.input.Value()
			m.Plan.Adding = false
			m.Plan.input.Blur()
			m.Plan.input.SetValue("")
			if text != "" {
				m.engine.AddTask(context.Background(), text)
				m.Status = StatusBar{Text: "task added"}
			}
			return m, nil
		case "esc":
			m.Plan.Adding = false
			m.Plan.input.Blur()
			m.Plan.input.SetValue("")
			return m, nil
		default:
			var cmd tea.Cmd
			m.Plan.input, cmd = m.Plan.input.Update(msg)
			return m, cmd
		}
	}

	plan := m.todayPlan()
	switch msg.String() {
	case "j", "down":
		if m.Plan.Cursor < len(plan.Tasks)-1 {
			m.Plan.Cursor++
		}
		return m, nil
	case "k", "up":
		if m.Plan.Cursor > 0 {
			m.Plan.Cursor--
		}
		return m, nil
	case " ":
		if task, ok := m.cursorTask(plan); ok {
			m.engine.ToggleTask(context.Background(), task.ID)
		}
		return m, nil
	case "a":
		m.Plan.Adding = true
		m.Plan.input.Focus()
		return m, nil
	case "d":
		if task, ok := m.cursorTask(plan); ok {
			m.engine.DeleteTask(context.Background(), task.ID)
			if m.Plan.Cursor > 0 {
				m.Plan.Cursor--
			}
			m.Status = StatusBar{Text: "task deleted"}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) todayPlan() model.DailyPlan {
	plan, _ := model.FindPlan(m.states.State().DailyPlans, model.DateString(m.engine.Now()))
	return plan
}

func (m Model) cursorTask(plan model.DailyPlan) (model.Task, bool) {
	if m.Plan.Cursor < 0 || m.Plan.Cursor >= len(plan.Tasks) {
		return model.Task{}, false
	}
	return plan.Tasks[m.Plan.Cursor], true
}

func (m Model) renderPlanPanel(app state.AppState) string {
	plan, _ := model.FindPlan(app.DailyPlans, model.DateString(m.engine.Now()))
	tasks := make([]views.PlanTaskData, 0, len(plan.Tasks))
	for _, t := range plan.Tasks {
		tasks = append(tasks, views.PlanTaskData{
			Text:      t.Text,
			Completed: t.Completed,
			Priority:  string(t.Priority),
			Category:  t.Category,
		})
	}
	return views.RenderPlanPanel(views.PlanPanelData{
		Date:         model.DateString(m.engine.Now()),
		Tasks:        tasks,
		Cursor:       m.Plan.Cursor,
		Adding:       m.Plan.Adding,
		AddInputView: m.Plan.input.View(),
		Generating:   m.planGenerating,
		SpinnerView:  m.spin.View(),
		HasGoal:      app.Goal != nil,
	})
}

func (m Model) renderDashboard(app state.AppState, theme views.Theme) string {
	plan, _ := model.FindPlan(app.DailyPlans, model.DateString(m.engine.Now()))
	greeting := "welcome back"
	if app.User != nil {
		greeting = "welcome back, " + app.User.Name
	}
	goalText := ""
	if app.Goal != nil {
		goalText = app.Goal.Text
	}
	return views.RenderDashboard(views.DashboardData{
		Greeting:       greeting,
		GoalText:       goalText,
		Date:           model.DateString(m.engine.Now()),
		Streak:         app.Streak,
		CompletedCount: plan.CompletedCount(),
		TotalCount:     len(plan.Tasks),
		SummaryView:    views.RenderMarkdown(m.Summary, theme),
	})
}

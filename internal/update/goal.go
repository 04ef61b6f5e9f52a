package update

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"focusflow/internal/state"
	"focusflow/internal/views"
)

func (m Model) handleGoalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Goal.Editing {
		switch msg.String() {
		case "enter":
			text := m.Goal.input.Value()
			m.Goal.Editing = false
			m.Goal.input.Blur()
			m.Goal.input.SetValue("")
			if text == "" {
				return m, nil
			}
			m.Goal.Generating = true
			m.Plan.Cursor = 0
			return m, m.setGoalCmd(text)
		case "esc":
			m.Goal.Editing = false
			m.Goal.input.Blur()
			m.Goal.input.SetValue("")
			return m, nil
		default:
			var cmd tea.Cmd
			m.Goal.input, cmd = m.Goal.input.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "e":
		m.Goal.Editing = true
		m.Goal.input.Focus()
		return m, nil
	case "x":
		if m.states.State().Goal != nil {
			m.engine.ClearGoal(context.Background())
			m.Plan.Cursor = 0
			m.Status = StatusBar{Text: "goal cleared"}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) renderGoalPanel(app state.AppState, theme views.Theme) string {
	data := views.GoalPanelData{
		Editing:     m.Goal.Editing,
		InputView:   m.Goal.input.View(),
		Generating:  m.Goal.Generating,
		SpinnerView: m.spin.View(),
	}
	if app.Goal != nil {
		data.GoalText = app.Goal.Text
		data.StrategyView = views.RenderMarkdown(app.Goal.Strategy, theme)
	}
	return views.RenderGoalPanel(data)
}

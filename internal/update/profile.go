package update

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"focusflow/internal/state"
	"focusflow/internal/views"
)

func (m Model) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Profile.Importing {
		switch msg.String() {
		case "enter":
			path := m.Profile.input.Value()
			if path == "" {
				return m, nil
			}
			return m, m.importCmd(path)
		case "esc":
			m.Profile.Importing = false
			m.Profile.input.Blur()
			m.Profile.input.SetValue("")
			return m, nil
		default:
			var cmd tea.Cmd
			m.Profile.input, cmd = m.Profile.input.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "p":
		if m.Profile.Generating {
			return m, nil
		}
		m.Profile.Generating = true
		return m, m.profileCmd()
	case "e":
		return m, m.exportCmd()
	case "i":
		m.Profile.Importing = true
		m.Profile.input.Focus()
		m.Profile.input.SetValue("")
		return m, nil
	case "t":
		m.ThemeName = views.NextThemeName(m.ThemeName)
		saveTheme(context.Background(), m.states, m.ThemeName)
		m.Status = StatusBar{Text: "theme: " + m.ThemeName}
		return m, nil
	case "j", "down", "k", "up":
		var cmd tea.Cmd
		m.Profile.sessions, cmd = m.Profile.sessions.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) syncProfileTable() {
	sessions := m.states.State().FocusSessions
	rows := make([]table.Row, 0, len(sessions))
	for _, s := range sessions {
		done := "no"
		if s.Completed {
			done = "yes"
		}
		rows = append(rows, table.Row{
			time.UnixMilli(s.StartTime).Format("Jan 2 15:04"),
			strconv.Itoa(s.Duration),
			done,
		})
	}
	m.Profile.sessions.SetRows(rows)
}

func (m Model) renderProfilePanel(app state.AppState, theme views.Theme) string {
	data := views.ProfilePanelData{
		Streak: app.Streak,
		Sessions: views.ProfileSessionData{
			TableView: m.Profile.sessions.View(),
			Count:     len(app.FocusSessions),
		},
		Generating:  m.Profile.Generating,
		SpinnerView: m.spin.View(),
		Importing:   m.Profile.Importing,
		ImportInput: m.Profile.input.View(),
		ThemeName:   views.ThemeByName(m.ThemeName).Name,
	}
	if app.User != nil {
		data.Name = app.User.Name
	}
	if p := app.PsychoProfile; p != nil {
		data.ProfileStale = p.StaleAt(m.engine.Now())
		data.ProfileView = views.RenderMarkdown(
			views.RenderProfileText(p.Strengths, p.GrowthAreas, p.ProductivityPatterns, p.OverallSummary),
			theme,
		)
	}
	return views.RenderProfilePanel(data)
}

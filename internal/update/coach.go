package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"focusflow/internal/views"
)

func (m Model) handleCoachKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.Coach.Streaming || !m.aiEnabled {
			return m, nil
		}
		text := m.Coach.input.Value()
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		m.Coach.input.SetValue("")
		m.Coach.Streaming = true
		return m, m.coachSendCmd(text)
	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		m.Coach.transcript, cmd = m.Coach.transcript.Update(msg)
		return m, cmd
	default:
		var cmd tea.Cmd
		m.Coach.input, cmd = m.Coach.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) syncCoachTranscript() {
	theme := views.ThemeByName(m.ThemeName)
	var b strings.Builder
	for _, msg := range m.states.State().CoachHistory {
		text := msg.Text()
		if text == "" {
			continue
		}
		switch msg.Role {
		case "user":
			b.WriteString(theme.Accent.Render("you: ") + text + "\n")
		default:
			b.WriteString(theme.Header.Render("coach:") + "\n")
			b.WriteString(views.RenderMarkdown(text, theme) + "\n")
		}
	}
	m.Coach.transcript.SetContent(b.String())
	m.Coach.transcript.GotoBottom()
}

func (m Model) renderCoachPanel() string {
	return views.RenderCoachPanel(views.CoachPanelData{
		TranscriptView: m.Coach.transcript.View(),
		InputView:      m.Coach.input.View(),
		Streaming:      m.Coach.Streaming,
		Disabled:       !m.aiEnabled,
	})
}

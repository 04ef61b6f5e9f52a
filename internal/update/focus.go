package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"focusflow/internal/model"
	"focusflow/internal/state"
	"focusflow/internal/views"
)

func (m Model) handleFocusKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		if !m.Focus.Running {
			m.Focus.Running = true
			m.Focus.Start = m.engine.Now()
			m.Focus.RestText = ""
			m.Status = StatusBar{Text: "focus session started"}
			return m, focusTickCmd()
		}
		// Stopping early still records the elapsed time; the engine
		// discards anything under a minute.
		start := m.Focus.Start
		m.Focus.Running = false
		return m, m.recordSessionCmd(start, false)
	}
	return m, nil
}

func (m Model) onFocusTick() (tea.Model, tea.Cmd) {
	if !m.Focus.Running {
		return m, nil
	}
	// Remaining time derives from wall-clock elapsed, not tick counts, so
	// a suspended laptop fast-forwards the timer instead of stretching it.
	if m.engine.Now().Sub(m.Focus.Start) >= m.Focus.Duration {
		start := m.Focus.Start
		m.Focus.Running = false
		m.Status = StatusBar{Text: "focus session complete"}
		return m, m.recordSessionCmd(start, true)
	}
	return m, focusTickCmd()
}

func (m Model) renderFocusPanel(app state.AppState, theme views.Theme) string {
	remaining := m.Focus.Duration
	pct := 0.0
	if m.Focus.Running {
		elapsed := m.engine.Now().Sub(m.Focus.Start)
		if elapsed > m.Focus.Duration {
			elapsed = m.Focus.Duration
		}
		remaining = m.Focus.Duration - elapsed
		if m.Focus.Duration > 0 {
			pct = float64(elapsed) / float64(m.Focus.Duration)
		}
	}
	return views.RenderFocusPanel(views.FocusPanelData{
		Running:       m.Focus.Running,
		Timer:         formatTimer(remaining),
		ProgressView:  m.Focus.bar.ViewAs(pct),
		ProgressPct:   int(pct * 100),
		SessionsToday: sessionsToday(app.FocusSessions, m.engine.Now()),
		RestView:      views.RenderMarkdown(m.Focus.RestText, theme),
	})
}

func sessionsToday(sessions []model.FocusSession, now time.Time) int {
	today := model.DateString(now)
	n := 0
	for _, s := range sessions {
		if model.DateString(time.UnixMilli(s.StartTime)) == today {
			n++
		}
	}
	return n
}

func formatTimer(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

package update

import (
	"context"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"focusflow/internal/state"
)

// hydrateCmd loads every slot from the store. Reconciliation runs as a
// separate command so the spinner is visible while tasks generate.
func (m Model) hydrateCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		m.states.Hydrate(ctx)
		return hydratedMsg{theme: loadTheme(ctx, m.states)}
	}
}

func (m Model) reconcileCmd() tea.Cmd {
	return func() tea.Msg {
		m.engine.Reconcile(context.Background())
		return planReconciledMsg{}
	}
}

func (m Model) setGoalCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return goalSavedMsg{generated: m.engine.SetGoal(context.Background(), text)}
	}
}

func (m Model) summaryCmd() tea.Cmd {
	return func() tea.Msg {
		return summaryMsg{text: m.engine.DailySummary(context.Background())}
	}
}

func (m Model) coachSendCmd(text string) tea.Cmd {
	return func() tea.Msg {
		stream, err := m.engine.SendCoachMessage(context.Background(), text)
		return coachStartedMsg{stream: stream, err: err}
	}
}

// waitCoachChunkCmd pulls one chunk off the stream; the update loop keeps
// re-issuing it until the channel closes.
func waitCoachChunkCmd(stream <-chan string) tea.Cmd {
	return func() tea.Msg {
		chunk, open := <-stream
		return coachChunkMsg{chunk: chunk, open: open}
	}
}

func (m Model) restCmd() tea.Cmd {
	return func() tea.Msg {
		return restMsg{text: m.engine.RestSuggestion(context.Background())}
	}
}

func (m Model) recordSessionCmd(start time.Time, completed bool) tea.Cmd {
	return func() tea.Msg {
		m.engine.RecordFocusSession(context.Background(), start, completed)
		if completed {
			return restMsg{text: m.engine.RestSuggestion(context.Background())}
		}
		return SetStatusMsg{Text: "focus session recorded"}
	}
}

func (m Model) profileCmd() tea.Cmd {
	return func() tea.Msg {
		return profileDoneMsg{ok: m.engine.RegenerateProfile(context.Background())}
	}
}

func (m Model) exportCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		doc, filename, err := state.Export(ctx, m.states.Store(), time.Now())
		if err != nil {
			return exportDoneMsg{err: err}
		}
		if err := os.WriteFile(filename, doc, 0o644); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: filename}
	}
}

func (m Model) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		doc, err := os.ReadFile(path)
		if err != nil {
			return importDoneMsg{err: err}
		}
		ctx := context.Background()
		if err := state.Import(ctx, m.states.Store(), doc); err != nil {
			return importDoneMsg{err: err}
		}
		return importDoneMsg{}
	}
}

func focusTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return focusTickMsg{} })
}

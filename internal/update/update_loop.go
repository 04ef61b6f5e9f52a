package update

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"focusflow/internal/model"
	"focusflow/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.hydrateCmd(), m.spin.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)

	case hydratedMsg:
		m.Ready = true
		if typed.theme != "" {
			m.ThemeName = typed.theme
		}
		if m.states.State().User == nil {
			m.CurrentView = ViewOnboarding
			return m, nil
		}
		m.planGenerating = true
		return m, m.reconcileCmd()

	case planReconciledMsg:
		m.planGenerating = false
		m.syncProfileTable()
		return m, nil

	case goalSavedMsg:
		m.Goal.Generating = false
		if typed.generated {
			m.Status = StatusBar{Text: "goal saved, day-1 plan ready"}
		} else {
			m.Status = StatusBar{Text: "goal saved; plan generation failed, add tasks manually", IsError: true}
		}
		return m, nil

	case summaryMsg:
		m.Summary = typed.text
		return m, nil

	case coachStartedMsg:
		if typed.err != nil {
			m.Coach.Streaming = false
			m.Status = StatusBar{Text: fmt.Sprintf("coach: %v", typed.err), IsError: true}
			return m, nil
		}
		if typed.stream == nil {
			m.Coach.Streaming = false
			return m, nil
		}
		m.Coach.stream = typed.stream
		m.syncCoachTranscript()
		return m, waitCoachChunkCmd(typed.stream)

	case coachChunkMsg:
		if !typed.open {
			m.Coach.Streaming = false
			m.Coach.stream = nil
			m.syncCoachTranscript()
			return m, nil
		}
		m.engine.AppendCoachChunk(context.Background(), typed.chunk)
		m.syncCoachTranscript()
		return m, waitCoachChunkCmd(m.Coach.stream)

	case restMsg:
		m.Focus.RestText = typed.text
		m.syncProfileTable()
		return m, nil

	case profileDoneMsg:
		m.Profile.Generating = false
		if typed.ok {
			m.Status = StatusBar{Text: "monthly insights refreshed"}
		} else {
			m.Status = StatusBar{Text: "insights generation failed", IsError: true}
		}
		return m, nil

	case exportDoneMsg:
		if typed.err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("export failed: %v", typed.err), IsError: true}
		} else {
			m.Status = StatusBar{Text: "exported to " + typed.path}
		}
		return m, nil

	case importDoneMsg:
		m.Profile.Importing = false
		m.Profile.input.Blur()
		if typed.err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("import failed: %v", typed.err), IsError: true}
			return m, nil
		}
		m.Status = StatusBar{Text: "backup imported"}
		// The store was replaced wholesale; rebuild the aggregate from it.
		return m, m.hydrateCmd()

	case focusTickMsg:
		return m.onFocusTick()

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.syncProfileTable()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(typed)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}
	if !m.Ready {
		return m, nil
	}

	if m.CurrentView == ViewOnboarding {
		return m.handleOnboardingKey(msg)
	}

	// While a text input owns the keyboard, only that view sees keys.
	if m.capturing() {
		return m.dispatchViewKey(msg)
	}

	switch msg.String() {
	case m.Keys.Dashboard:
		m.CurrentView = ViewDashboard
		return m, m.summaryCmd()
	case m.Keys.Plan:
		m.CurrentView = ViewPlan
		return m, nil
	case m.Keys.Goal:
		m.CurrentView = ViewGoal
		return m, nil
	case m.Keys.Coach:
		m.CurrentView = ViewCoach
		m.Coach.input.Focus()
		m.syncCoachTranscript()
		return m, nil
	case m.Keys.Focus:
		m.CurrentView = ViewFocus
		return m, nil
	case m.Keys.Profile:
		m.CurrentView = ViewProfile
		m.syncProfileTable()
		return m, nil
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}

	return m.dispatchViewKey(msg)
}

func (m Model) capturing() bool {
	switch m.CurrentView {
	case ViewPlan:
		return m.Plan.Adding
	case ViewGoal:
		return m.Goal.Editing
	case ViewCoach:
		return true
	case ViewProfile:
		return m.Profile.Importing
	default:
		return false
	}
}

func (m Model) dispatchViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.CurrentView {
	case ViewPlan:
		return m.handlePlanKey(msg)
	case ViewGoal:
		return m.handleGoalKey(msg)
	case ViewCoach:
		return m.handleCoachKey(msg)
	case ViewFocus:
		return m.handleFocusKey(msg)
	case ViewProfile:
		return m.handleProfileKey(msg)
	}
	return m, nil
}

func (m Model) View() string {
	theme := views.ThemeByName(m.ThemeName)
	if !m.Ready {
		return theme.Muted.Render(m.spin.View() + " loading your data...")
	}
	if m.Quitting {
		return ""
	}

	app := m.states.State()
	left := ""
	right := ""
	switch m.CurrentView {
	case ViewOnboarding:
		left = views.RenderOnboarding(views.OnboardingData{NameInputView: m.Onboarding.input.View()})
	case ViewDashboard:
		left = m.renderDashboard(app, theme)
		right = m.renderPlanPanel(app)
	case ViewPlan:
		left = m.renderPlanPanel(app)
	case ViewGoal:
		left = m.renderGoalPanel(app, theme)
	case ViewCoach:
		left = m.renderCoachPanel()
	case ViewFocus:
		left = m.renderFocusPanel(app, theme)
	case ViewProfile:
		left = m.renderProfilePanel(app, theme)
	}

	header := "focusflow"
	if app.User != nil {
		header = fmt.Sprintf("focusflow | %s | view: %s", app.User.Name, m.CurrentView)
	}
	footer := ""
	if m.CurrentView != ViewOnboarding {
		footer = fmt.Sprintf("keys: %s dash | %s plan | %s goal | %s coach | %s focus | %s profile | %s quit",
			m.Keys.Dashboard, m.Keys.Plan, m.Keys.Goal, m.Keys.Coach, m.Keys.Focus, m.Keys.Profile, m.Keys.Quit)
	}

	return views.RenderApp(theme, views.AppData{
		Header:     header,
		LeftPane:   left,
		RightPane:  right,
		StatusLine: m.Status.Text,
		IsError:    m.Status.IsError,
		Footer:     footer,
	})
}

func (m Model) handleOnboardingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := m.Onboarding.input.Value()
		if name == "" {
			return m, nil
		}
		ctx := context.Background()
		m.states.SetUser(ctx, &model.User{Name: name, CreatedAt: model.Millis(m.engine.Now())})
		m.CurrentView = ViewDashboard
		m.planGenerating = true
		return m, m.reconcileCmd()
	default:
		var cmd tea.Cmd
		m.Onboarding.input, cmd = m.Onboarding.input.Update(msg)
		return m, cmd
	}
}

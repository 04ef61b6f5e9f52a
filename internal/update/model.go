// Package update holds the Bubble Tea model and message loop. All state
// mutations go through the engine; this package only translates key events
// into engine calls and engine results into view data.
package update

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"focusflow/internal/engine"
	"focusflow/internal/state"
)

type View string

const (
	ViewOnboarding View = "Onboarding"
	ViewDashboard  View = "Dashboard"
	ViewPlan       View = "Plan"
	ViewGoal       View = "Goal"
	ViewCoach      View = "Coach"
	ViewFocus      View = "Focus"
	ViewProfile    View = "Profile"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Dashboard string
	Plan      string
	Goal      string
	Coach     string
	Focus     string
	Profile   string
	Quit      string
}

type PlanState struct {
	Cursor int
	Adding bool
	input  textinput.Model
}

type GoalState struct {
	Editing    bool
	Generating bool
	input      textinput.Model
}

type CoachState struct {
	Streaming  bool
	stream     <-chan string
	input      textinput.Model
	transcript viewport.Model
}

type FocusState struct {
	Running  bool
	Start    time.Time
	Duration time.Duration
	RestText string
	bar      progress.Model
}

type ProfileState struct {
	Generating bool
	Importing  bool
	input      textinput.Model
	sessions   table.Model
}

type OnboardingState struct {
	input textinput.Model
}

type Model struct {
	states *state.Manager
	engine *engine.Engine

	CurrentView View
	Ready       bool
	Status      StatusBar
	Keys        GlobalKeyMap
	ThemeName   string
	Quitting    bool

	Onboarding OnboardingState
	Plan       PlanState
	Goal       GoalState
	Coach      CoachState
	Focus      FocusState
	Profile    ProfileState

	Summary        string
	planGenerating bool
	aiEnabled      bool
	spin           spinner.Model
}

// Messages produced by commands. Engine calls run off the update loop and
// report back through these.
type hydratedMsg struct {
	theme string
}

type planReconciledMsg struct{}

type goalSavedMsg struct {
	generated bool
}

type summaryMsg struct {
	text string
}

type coachStartedMsg struct {
	stream <-chan string
	err    error
}

type coachChunkMsg struct {
	chunk string
	open  bool
}

type restMsg struct {
	text string
}

type profileDoneMsg struct {
	ok bool
}

type exportDoneMsg struct {
	path string
	err  error
}

type importDoneMsg struct {
	err error
}

type focusTickMsg struct{}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

func NewModel(states *state.Manager, eng *engine.Engine, cfg RuntimeConfig) Model {
	name := textinput.New()
	name.Placeholder = "your name"
	name.CharLimit = 40
	name.Focus()

	taskInput := textinput.New()
	taskInput.Placeholder = "task description"
	taskInput.CharLimit = 200

	goalInput := textinput.New()
	goalInput.Placeholder = "e.g. learn to play guitar"
	goalInput.CharLimit = 200

	coachInput := textinput.New()
	coachInput.Placeholder = "ask your coach anything"
	coachInput.CharLimit = 500

	importInput := textinput.New()
	importInput.Placeholder = "path to focusflow-backup-....json"
	importInput.CharLimit = 300

	transcript := viewport.New(54, 14)

	sessions := table.New(
		table.WithColumns([]table.Column{
			{Title: "Started", Width: 18},
			{Title: "Minutes", Width: 8},
			{Title: "Done", Width: 5},
		}),
		table.WithHeight(6),
	)

	m := Model{
		CurrentView: ViewDashboard,
		states:      states,
		engine:      eng,
		ThemeName:   cfg.Theme,
		Keys: GlobalKeyMap{
			Dashboard: "1",
			Plan:      "2",
			Goal:      "3",
			Coach:     "4",
			Focus:     "5",
			Profile:   "6",
			Quit:      "q",
		},
		Onboarding: OnboardingState{input: name},
		Plan:       PlanState{input: taskInput},
		Goal:       GoalState{input: goalInput},
		Coach:      CoachState{input: coachInput, transcript: transcript},
		Focus: FocusState{
			Duration: time.Duration(cfg.FocusWorkMinutes) * time.Minute,
			bar:      progress.New(progress.WithDefaultGradient()),
		},
		Profile:   ProfileState{input: importInput, sessions: sessions},
		aiEnabled: cfg.AIEnabled,
		spin:      spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	return m
}

// States exposes the manager for the composition root and tests.
func (m Model) States() *state.Manager { return m.states }

package views

import (
	"fmt"
	"strings"
)

type OnboardingData struct {
	NameInputView string
}

type DashboardData struct {
	Greeting       string
	GoalText       string
	Date           string
	Streak         int
	CompletedCount int
	TotalCount     int
	SummaryView    string
}

type PlanTaskData struct {
	Text      string
	Completed bool
	Priority  string
	Category  string
}

type PlanPanelData struct {
	Date         string
	Tasks        []PlanTaskData
	Cursor       int
	Adding       bool
	AddInputView string
	Generating   bool
	SpinnerView  string
	HasGoal      bool
}

type GoalPanelData struct {
	GoalText     string
	StrategyView string
	Editing      bool
	InputView    string
	Generating   bool
	SpinnerView  string
}

type CoachPanelData struct {
	TranscriptView string
	InputView      string
	Streaming      bool
	Disabled       bool
}

type FocusPanelData struct {
	Running       bool
	Timer         string
	ProgressView  string
	ProgressPct   int
	SessionsToday int
	RestView      string
}

type ProfileSessionData struct {
	TableView string
	Count     int
}

type ProfilePanelData struct {
	Name         string
	Streak       int
	Sessions     ProfileSessionData
	ProfileView  string
	ProfileStale bool
	Generating   bool
	SpinnerView  string
	Importing    bool
	ImportInput  string
	ThemeName    string
}

func RenderOnboarding(data OnboardingData) string {
	var b strings.Builder
	b.WriteString("welcome to focusflow\n\n")
	b.WriteString("what should we call you?\n")
	b.WriteString(data.NameInputView + "\n")
	b.WriteString("[enter] continue")
	return b.String()
}

func RenderDashboard(data DashboardData) string {
	var b strings.Builder
	b.WriteString(data.Greeting + "\n")
	if data.GoalText != "" {
		b.WriteString(fmt.Sprintf("goal: %s\n", data.GoalText))
	} else {
		b.WriteString("goal: (none set, press 3)\n")
	}
	b.WriteString(fmt.Sprintf("streak: %s\n", streakBadge(data.Streak)))
	b.WriteString(fmt.Sprintf("today (%s): %d/%d tasks done\n", data.Date, data.CompletedCount, data.TotalCount))
	if data.SummaryView != "" {
		b.WriteString("\n" + data.SummaryView + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderPlanPanel(data PlanPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("plan for %s:\n", data.Date))
	b.WriteString("actions: [j/k]move [space]toggle [a]add [d]delete\n")
	if data.Generating {
		b.WriteString(data.SpinnerView + " generating today's tasks...\n")
	}
	if len(data.Tasks) == 0 && !data.Generating {
		if data.HasGoal {
			b.WriteString("(no plan yet today)\n")
		} else {
			b.WriteString("(set a goal first to get a generated plan)\n")
		}
	}
	for i, task := range data.Tasks {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		check := "[ ]"
		if task.Completed {
			check = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s", cursor, check, task.Text))
		if task.Priority != "" {
			b.WriteString(fmt.Sprintf(" (%s)", task.Priority))
		}
		if task.Category != "" {
			b.WriteString(fmt.Sprintf(" #%s", task.Category))
		}
		b.WriteString("\n")
	}
	if data.Adding {
		b.WriteString("\nnew task: " + data.AddInputView + "\n")
		b.WriteString("[enter] add [esc] cancel")
	}
	return strings.TrimSpace(b.String())
}

func RenderGoalPanel(data GoalPanelData) string {
	var b strings.Builder
	b.WriteString("goal:\n")
	if data.Editing {
		b.WriteString("what do you want to achieve?\n")
		b.WriteString(data.InputView + "\n")
		b.WriteString("[enter] save (replaces all existing plans) [esc] cancel")
		return b.String()
	}
	if data.Generating {
		b.WriteString(data.SpinnerView + " building your strategy...\n")
		return strings.TrimSpace(b.String())
	}
	if data.GoalText == "" {
		b.WriteString("(none)\n")
		b.WriteString("actions: [e]set goal")
		return b.String()
	}
	b.WriteString(data.GoalText + "\n")
	if data.StrategyView != "" {
		b.WriteString("\nstrategy:\n" + data.StrategyView + "\n")
	}
	b.WriteString("\nactions: [e]replace goal [x]clear goal")
	return strings.TrimSpace(b.String())
}

func RenderCoachPanel(data CoachPanelData) string {
	var b strings.Builder
	b.WriteString("coach:\n")
	if data.Disabled {
		b.WriteString("(coach unavailable: no API key configured)\n")
		return strings.TrimSpace(b.String())
	}
	b.WriteString(data.TranscriptView + "\n\n")
	if data.Streaming {
		b.WriteString("coach is typing...\n")
	}
	b.WriteString("message: " + data.InputView + "\n")
	b.WriteString("[enter] send")
	return strings.TrimSpace(b.String())
}

func RenderFocusPanel(data FocusPanelData) string {
	var b strings.Builder
	b.WriteString("focus:\n")
	b.WriteString(fmt.Sprintf("timer: %s\n", data.Timer))
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	b.WriteString(fmt.Sprintf("sessions logged today: %d\n", data.SessionsToday))
	if data.Running {
		b.WriteString("actions: [space]stop early\n")
	} else {
		b.WriteString("actions: [space]start\n")
	}
	if data.RestView != "" {
		b.WriteString("\n" + data.RestView)
	}
	return strings.TrimSpace(b.String())
}

func RenderProfilePanel(data ProfilePanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("profile: %s\n", data.Name))
	b.WriteString(fmt.Sprintf("streak: %s | theme: %s\n", streakBadge(data.Streak), data.ThemeName))
	b.WriteString("actions: [p]regenerate insights [e]export backup [i]import backup [t]theme\n")

	b.WriteString(fmt.Sprintf("\nfocus sessions (%d):\n", data.Sessions.Count))
	if data.Sessions.Count == 0 {
		b.WriteString("(none recorded)\n")
	} else {
		b.WriteString(data.Sessions.TableView + "\n")
	}

	b.WriteString("\nmonthly insights:\n")
	if data.Generating {
		b.WriteString(data.SpinnerView + " analyzing your month...\n")
	} else if data.ProfileView == "" {
		b.WriteString("(not generated yet)\n")
	} else {
		if data.ProfileStale {
			b.WriteString("(from a previous month, press p to refresh)\n")
		}
		b.WriteString(data.ProfileView + "\n")
	}

	if data.Importing {
		b.WriteString("\nimport path: " + data.ImportInput + "\n")
		b.WriteString("[enter] import (replaces ALL current data) [esc] cancel")
	}
	return strings.TrimSpace(b.String())
}

func streakBadge(streak int) string {
	if streak <= 0 {
		return "0 days"
	}
	if streak == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days 🔥", streak)
}

// RenderProfileText flattens a generated profile into markdown for glamour.
func RenderProfileText(strengths, growthAreas []string, patterns, summary string) string {
	var b strings.Builder
	if summary != "" {
		b.WriteString(summary + "\n\n")
	}
	if len(strengths) > 0 {
		b.WriteString("**Strengths**\n")
		for _, s := range strengths {
			b.WriteString("- " + s + "\n")
		}
		b.WriteString("\n")
	}
	if len(growthAreas) > 0 {
		b.WriteString("**Growth areas**\n")
		for _, g := range growthAreas {
			b.WriteString("- " + g + "\n")
		}
		b.WriteString("\n")
	}
	if patterns != "" {
		b.WriteString("**Patterns**\n" + patterns + "\n")
	}
	return strings.TrimSpace(b.String())
}

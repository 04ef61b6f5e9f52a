// Package views renders the panels composed by the update loop. Rendering
// is pure: data structs in, strings out.
package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Theme bundles the styles for one color scheme. Themes are selected by
// name; the choice persists across restarts as a UI preference.
type Theme struct {
	Name   string
	Header lipgloss.Style
	Accent lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Panel  lipgloss.Style
	Footer lipgloss.Style
	Muted  lipgloss.Style
}

var darkTheme = Theme{
	Name:   "dark",
	Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
	Accent: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	Status: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	Panel:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	Footer: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
}

var lightTheme = Theme{
	Name:   "light",
	Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
	Accent: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	Status: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	Panel:  lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
	Footer: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
}

// ThemeByName returns the named theme, defaulting to dark for unknown
// names so a corrupted preference never breaks rendering.
func ThemeByName(name string) Theme {
	if name == "light" {
		return lightTheme
	}
	return darkTheme
}

// NextThemeName cycles through the available themes.
func NextThemeName(name string) string {
	if name == "dark" || name == "" {
		return "light"
	}
	return "dark"
}

type AppData struct {
	Header     string
	LeftPane   string
	RightPane  string
	StatusLine string
	IsError    bool
	Footer     string
}

func RenderApp(theme Theme, data AppData) string {
	left := theme.Panel.Width(58).Render(data.LeftPane)
	row := left
	if data.RightPane != "" {
		right := theme.Panel.Width(58).Render(data.RightPane)
		row = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	status := theme.Status.Render(data.StatusLine)
	if data.IsError {
		status = theme.Error.Render(data.StatusLine)
	}

	lines := []string{
		theme.Header.Render(data.Header),
		row,
		status,
	}
	if data.Footer != "" {
		lines = append(lines, theme.Footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders generated prose (strategies, summaries, coach
// replies) as terminal markdown, falling back to the raw text on error.
func RenderMarkdown(md string, theme Theme) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := "dark"
	if theme.Name == "light" {
		style = "light"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

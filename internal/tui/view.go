package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pomodoro/internal/core/model"
)

var (
	tomatoRed = lipgloss.Color("#E5533D")
	leafGreen = lipgloss.Color("#4FA35A")
	dimGray   = lipgloss.Color("#767676")

	faceStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(tomatoRed).
			Padding(1, 4).
			Align(lipgloss.Center).
			Bold(true)
	runningFace = faceStyle.BorderForeground(leafGreen)

	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(dimGray)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(tomatoRed).Bold(true).Underline(true)
	helpStyle      = lipgloss.NewStyle().Foreground(dimGray)
	errorStyle     = lipgloss.NewStyle().Foreground(tomatoRed)
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	display := m.keeper.Display()
	current := m.keeper.Mode().ID

	tabs := make([]string, 0, 3)
	for _, mode := range model.Modes() {
		style := tabStyle
		if mode.ID == current {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(mode.Label))
	}

	face := faceStyle
	if display.Running {
		face = runningFace
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")
	b.WriteString(face.Render(display.StatusLabel + "\n" + display.TimeText))
	b.WriteString("\n\n")
	if m.lastErr != nil {
		b.WriteString(errorStyle.Render(m.lastErr.Error()))
		b.WriteString("\n")
	}
	if m.config.SpeechOn {
		b.WriteString(helpStyle.Render("Announcements on"))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("space start/pause · p pomodoro · s short · l long · r reset · q quit"))
	b.WriteString("\n")

	if m.width > 0 {
		return lipgloss.NewStyle().Width(m.width).Render(b.String())
	}
	return b.String()
}

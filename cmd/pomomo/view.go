package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/benjamonnguyen/pomomo-tui"
	"github.com/charmbracelet/lipgloss"
)

const (
	timerBarFilledChar = "⣶"
	timerBarEmptyChar  = "⡀"
	timerBarLength     = 20
)

var (
	colorWork       = lipgloss.Color("#ed4245")
	colorShortBreak = lipgloss.Color("#57f287")
	colorLongBreak  = lipgloss.Color("#3498db")
	colorDim        = lipgloss.Color("#7f8c8d")
	colorFg         = lipgloss.Color("#ecf0f1")

	titleStyle     = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(colorDim)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(colorFg)
	clockStyle     = lipgloss.NewStyle().Bold(true).MarginTop(1)
	dimStyle       = lipgloss.NewStyle().Foreground(colorDim)
	toastStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorShortBreak)
	errorStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorWork)
	frameStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 3)
)

func modeColor(m pomomo.Mode) lipgloss.Color {
	switch m {
	case pomomo.ShortBreakMode:
		return colorShortBreak
	case pomomo.LongBreakMode:
		return colorLongBreak
	default:
		return colorWork
	}
}

// formatTime renders whole seconds as MM:SS.
func formatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func windowTitle(seconds int) string {
	return formatTime(seconds) + " - Pomodoro"
}

// timerBar renders the remaining fraction of the interval.
func timerBar(remaining float64) string {
	if remaining <= 0 {
		return strings.Repeat(timerBarEmptyChar, timerBarLength)
	}
	filled := min(int(math.Round(remaining*timerBarLength*10)/10), timerBarLength)
	return strings.Repeat(timerBarFilledChar, filled) + strings.Repeat(timerBarEmptyChar, timerBarLength-filled)
}

func renderTabs(active pomomo.Mode) string {
	tabs := make([]string, 0, len(pomomo.Modes))
	for _, m := range pomomo.Modes {
		if m == active {
			tabs = append(tabs, activeTabStyle.Background(modeColor(m)).Render(m.String()))
			continue
		}
		tabs = append(tabs, tabStyle.Render(m.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}
	if m.form != nil {
		return frameStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Settings"),
			dimStyle.Render("Customize your session durations and timer behavior."),
			"",
			m.form.View(),
			dimStyle.Render("esc to cancel"),
		))
	}

	mode := m.timer.Mode()
	status := "paused"
	if m.timer.IsRunning() {
		status = "running"
	}

	lines := []string{
		titleStyle.Render("Pomodoro Timer"),
		renderTabs(mode),
		clockStyle.Foreground(modeColor(mode)).Render(formatTime(m.timer.Remaining())),
		lipgloss.NewStyle().Foreground(modeColor(mode)).Render(timerBar(m.timer.Progress())),
		dimStyle.Render(fmt.Sprintf("Completed Pomodoros: %d · %s", m.timer.CompletedWorkIntervals(), status)),
	}
	switch {
	case m.errMsg != "":
		lines = append(lines, "", errorStyle.Render(m.errMsg))
	case m.toast != "":
		lines = append(lines, "", toastStyle.Render(m.toast))
	}
	lines = append(lines, "", m.help.View(m.keys))

	return frameStyle.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

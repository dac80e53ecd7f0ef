package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#7D56F4")
	colorAccent  = lipgloss.Color("#04B575")
	colorWarn    = lipgloss.Color("#FFA500")
	colorMuted   = lipgloss.Color("#626262")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 2).
			MarginRight(2)

	labelStyle = lipgloss.NewStyle().Foreground(colorMuted)
	valueStyle = lipgloss.NewStyle().Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(colorWarn)
	helpStyle  = lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			Underline(true).
			Padding(0, 1)
	tabStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)
)

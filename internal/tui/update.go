package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case planLoadedMsg:
		m.profile = msg.profile
		m.result = msg.result
		m.loadErr = msg.err
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.efProgress.Width = min(msg.Width-20, 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab", "right", "l":
			m.active = (m.active + 1) % paneCount
		case "shift+tab", "left", "h":
			m.active = (m.active + paneCount - 1) % paneCount
		case "1":
			m.active = paneSummary
		case "2":
			m.active = paneWaterfall
		case "3":
			m.active = paneChart
		}
	}
	return m, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

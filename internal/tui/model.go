// Package tui is an interactive viewer over the planning engine: load a
// profile, run the pipeline once, and browse the allocation, waterfall,
// and net-worth projection.
package tui

import (
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kmeehan/nestegg/internal/calculation"
	"github.com/kmeehan/nestegg/internal/config"
	"github.com/kmeehan/nestegg/internal/domain"
)

// pane identifies which view is active.
type pane int

const (
	paneSummary pane = iota
	paneWaterfall
	paneChart
	paneCount
)

// planLoadedMsg carries the pipeline result (or the load error) back into
// the update loop.
type planLoadedMsg struct {
	profile *domain.Profile
	result  *domain.PlanResult
	err     error
}

// Model is the bubbletea application state.
type Model struct {
	profilePath string

	profile *domain.Profile
	result  *domain.PlanResult
	loadErr error

	active pane
	width  int
	height int

	efProgress progress.Model
}

// NewModel creates the application model for a profile file.
func NewModel(profilePath string) Model {
	return Model{
		profilePath: profilePath,
		efProgress:  progress.New(progress.WithDefaultGradient()),
	}
}

// Init kicks off the plan computation.
func (m Model) Init() tea.Cmd {
	path := m.profilePath
	return func() tea.Msg {
		profile, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return planLoadedMsg{err: err}
		}
		result, err := calculation.NewPlanEngine().BuildPlan(*profile, nil)
		if err != nil {
			return planLoadedMsg{err: err}
		}
		return planLoadedMsg{profile: profile, result: result}
	}
}

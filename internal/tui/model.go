package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexander-akhmetov/hangtimer/internal/catalog"
	"github.com/alexander-akhmetov/hangtimer/internal/event"
	"github.com/alexander-akhmetov/hangtimer/internal/timer"
	"github.com/alexander-akhmetov/hangtimer/internal/workout"
)

// maxEvents bounds the log pane history.
const maxEvents = 2000

// Controller is the part of *timer.Timer the model drives.
type Controller interface {
	Start(muted bool)
	TogglePause()
	Reset()
	JumpToStep(k int) bool
	SetWorkout(w workout.Workout) error
	SetMuted(muted bool)
	Snapshot() timer.Snapshot
	Workout() workout.Workout
}

var _ Controller = (*timer.Timer)(nil)

// Model is the bubbletea model for the timer screen.
type Model struct {
	timer   Controller
	catalog *catalog.Catalog
	snap    timer.Snapshot
	workout workout.Workout

	events       []event.Event
	logViewport  viewport.Model
	infoViewport viewport.Model
	showInfo     bool
	cursor       int // selected step in the sidebar list

	spinner  spinner.Model
	progress progress.Model
	help     help.Model
	keys     keyMap
	renderer *glamour.TermRenderer

	width    int
	height   int
	ready    bool
	hideHelp bool
	err      error
}

// NewModel creates a Model driving c. cat supplies the workouts cycled by
// the next-workout key; it may be nil.
func NewModel(c Controller, cat *catalog.Catalog) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		timer:    c,
		catalog:  cat,
		snap:     c.Snapshot(),
		workout:  c.Workout(),
		events:   make([]event.Event, 0),
		spinner:  s,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:     help.New(),
		keys:     defaultKeyMap(),
	}
}

// SetHideHelp hides the key help line.
func (m *Model) SetHideHelp(hide bool) {
	m.hideHelp = hide
}

// EventMsg carries a typed event from the timer.
type EventMsg struct {
	Event event.Event
}

type rendererReadyMsg struct {
	renderer *glamour.TermRenderer
}

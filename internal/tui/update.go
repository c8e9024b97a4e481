package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/alexander-akhmetov/hangtimer/internal/catalog"
	"github.com/alexander-akhmetov/hangtimer/internal/debug"
	"github.com/alexander-akhmetov/hangtimer/internal/event"
)

func createRendererCmd(width int) tea.Cmd {
	return func() tea.Msg {
		viewportWidth := max(width-6, 40)
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(viewportWidth),
		)
		if err != nil {
			debug.Logf("tui: failed to create glamour renderer: %v", err)
		}
		return rendererReadyMsg{renderer: renderer}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tea.WindowSize())
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		if m.snap.Ready() && !m.snap.Started {
			m.timer.Start(m.snap.Muted)
		} else {
			m.timer.TogglePause()
		}

	case key.Matches(msg, m.keys.Start):
		m.timer.Start(m.snap.Muted)

	case key.Matches(msg, m.keys.Reset):
		m.timer.Reset()

	case key.Matches(msg, m.keys.Mute):
		m.timer.SetMuted(!m.snap.Muted)

	case key.Matches(msg, m.keys.Workout):
		m.nextWorkout()

	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)

	case key.Matches(msg, m.keys.Down):
		m.cursor = min(m.cursor+1, len(m.workout.Steps)-1)

	case key.Matches(msg, m.keys.Jump):
		if !m.timer.JumpToStep(m.cursor) {
			m.err = fmt.Errorf("cannot jump to step %d", m.cursor+1)
		} else {
			m.err = nil
		}

	case key.Matches(msg, m.keys.Info):
		m.showInfo = !m.showInfo
		m.refreshInfo()

	case key.Matches(msg, m.keys.ScrollUp, m.keys.ScrollDn):
		var cmd tea.Cmd
		if m.showInfo {
			m.infoViewport, cmd = m.infoViewport.Update(msg)
		} else {
			m.logViewport, cmd = m.logViewport.Update(msg)
		}
		cmds = append(cmds, cmd)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	m.snap = m.timer.Snapshot()
	return m, tea.Batch(cmds...)
}

// nextWorkout switches the timer to the catalog entry after the current one.
func (m *Model) nextWorkout() {
	if m.catalog == nil || m.catalog.Len() < 2 {
		return
	}
	w, err := m.catalog.Next(m.workout.ID)
	if err != nil {
		m.err = err
		return
	}
	if err := m.timer.SetWorkout(w); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.workout = m.timer.Workout()
	m.cursor = 0
	m.refreshInfo()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		sidebarWidth := max(40, min(56, m.width*40/100))
		mainWidth := m.width - sidebarWidth - 4
		contentHeight := m.height - 3

		viewportWidth := mainWidth - 4
		logHeight := contentHeight - 4

		m.progress.Width = max(sidebarWidth-6, 10)
		m.help.Width = m.width

		if !m.ready {
			m.logViewport = viewport.New(viewportWidth, logHeight)
			m.infoViewport = viewport.New(viewportWidth, logHeight)
			m.ready = true
			cmds = append(cmds, createRendererCmd(mainWidth))
		} else {
			m.logViewport.Width = viewportWidth
			m.logViewport.Height = logHeight
			m.infoViewport.Width = viewportWidth
			m.infoViewport.Height = logHeight
		}
		m.logViewport.SetContent(m.renderEvents())
		m.refreshInfo()

	case rendererReadyMsg:
		m.renderer = msg.renderer
		m.refreshInfo()

	case EventMsg:
		m.applyEvent(msg.Event)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// applyEvent refreshes the snapshot and appends non-tick events to the log.
func (m *Model) applyEvent(ev event.Event) {
	prev := m.snap.StepIndex
	m.snap = m.timer.Snapshot()

	switch ev.Kind {
	case event.KindWorkout:
		m.workout = m.timer.Workout()
		m.cursor = 0
	case event.KindStep, event.KindJumped, event.KindReset:
		m.cursor = max(m.snap.StepIndex, 0)
	}
	if m.snap.StepIndex != prev || ev.Kind == event.KindWorkout {
		m.refreshInfo()
	}

	if ev.Kind == event.KindTick {
		return
	}
	m.events = append(m.events, ev)
	if len(m.events) > maxEvents {
		m.events = m.events[len(m.events)-maxEvents:]
	}
	if !m.ready {
		return
	}
	atBottom := m.logViewport.AtBottom()
	m.logViewport.SetContent(m.renderEvents())
	if atBottom {
		m.logViewport.GotoBottom()
	}
}

// refreshInfo re-renders the workout overview with the current step marked.
func (m *Model) refreshInfo() {
	if !m.ready || !m.showInfo {
		return
	}
	md := catalog.Markdown(m.workout, m.snap.StepIndex)
	content := md
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(md); err == nil {
			content = strings.TrimSpace(rendered)
		}
	}
	m.infoViewport.SetContent(content)
}

package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the timer screen bindings. It implements help.KeyMap.
type keyMap struct {
	Pause    key.Binding
	Start    key.Binding
	Reset    key.Binding
	Mute     key.Binding
	Workout  key.Binding
	Up       key.Binding
	Down     key.Binding
	Jump     key.Binding
	Info     key.Binding
	ScrollUp key.Binding
	ScrollDn key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Pause:    key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space/p", "start/pause")),
		Start:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Mute:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mute")),
		Workout:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "next workout")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "select")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "select")),
		Jump:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "jump to step")),
		Info:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "overview/log")),
		ScrollUp: key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "scroll up")),
		ScrollDn: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "scroll down")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown in the one-line help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Reset, k.Mute, k.Workout, k.Jump, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the expanded help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Start, k.Reset, k.Mute},
		{k.Up, k.Down, k.Jump, k.Workout},
		{k.Info, k.ScrollUp, k.ScrollDn},
		{k.Help, k.Quit},
	}
}

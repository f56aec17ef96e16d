package tui

import (
	"weekplan/internal/planner"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Left   key.Binding
	Right  key.Binding
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Grab   key.Binding
	Cycle  key.Binding
	Copy   key.Binding
	Help   key.Binding
	Cancel key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add task")),
		Grab:   key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "move")),
		Cycle:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
		Copy:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// gridKey translates a terminal key into a planner key.
func (km keyMap) gridKey(msg tea.KeyMsg) planner.Key {
	switch {
	case key.Matches(msg, km.Left):
		return planner.KeyLeft
	case key.Matches(msg, km.Right):
		return planner.KeyRight
	case key.Matches(msg, km.Up):
		return planner.KeyUp
	case key.Matches(msg, km.Down):
		return planner.KeyDown
	case key.Matches(msg, km.Open):
		return planner.KeyEnter
	case key.Matches(msg, km.Grab):
		return planner.KeyGrab
	case key.Matches(msg, km.Cycle):
		return planner.KeyCycle
	default:
		return planner.KeyNone
	}
}

func (km keyMap) shortHelp() []key.Binding {
	return []key.Binding{km.Open, km.Cycle, km.Grab, km.Copy, km.Help, km.Quit}
}

package planner

import "weekplan/internal/model"

// Key is a grid-level input, already translated from the terminal's key names.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyEnter
	// KeyGrab picks up the focused task, or drops the held one on the focused slot.
	KeyGrab
	// KeyCycle advances the focused task's status.
	KeyCycle
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyEnter:
		return "enter"
	case KeyGrab:
		return "grab"
	case KeyCycle:
		return "cycle"
	default:
		return "none"
	}
}

// UIState is the snapshot Dispatch needs.
type UIState struct {
	Focus     int
	EntryOpen bool
}

// Effect describes what the caller must do after a dispatched key.
type Effect struct {
	// Handled means the key was consumed; the caller must not apply its own default
	// (scrolling, list navigation).
	Handled bool

	OpenEntry bool
	Grab      bool
	Cycle     bool

	// Slot is the focused slot the effect targets.
	Slot model.SlotKey
}

// Dispatch is the pure keyboard reducer. While the entry modal is open every key is ignored
// and the state is returned unchanged.
func Dispatch(s UIState, k Key) (UIState, Effect) {
	if s.EntryOpen {
		return s, Effect{}
	}
	switch k {
	case KeyRight:
		s.Focus = model.WrapIndex(s.Focus + 1)
	case KeyLeft:
		s.Focus = model.WrapIndex(s.Focus - 1)
	case KeyDown:
		s.Focus = model.WrapIndex(s.Focus + model.DaysPerWeek)
	case KeyUp:
		s.Focus = model.WrapIndex(s.Focus - model.DaysPerWeek)
	case KeyEnter:
		return s, Effect{Handled: true, OpenEntry: true, Slot: model.SlotAt(s.Focus)}
	case KeyGrab:
		return s, Effect{Handled: true, Grab: true, Slot: model.SlotAt(s.Focus)}
	case KeyCycle:
		return s, Effect{Handled: true, Cycle: true, Slot: model.SlotAt(s.Focus)}
	default:
		return s, Effect{}
	}
	return s, Effect{Handled: true, Slot: model.SlotAt(s.Focus)}
}

// HandleKey runs Dispatch against the grid and applies the resulting effect.
func (g *Grid) HandleKey(k Key) (Effect, error) {
	next, eff := Dispatch(UIState{Focus: g.focus, EntryOpen: g.entryOpen}, k)
	g.focus = next.Focus

	switch {
	case eff.OpenEntry:
		g.OpenEntry(eff.Slot)
	case eff.Cycle:
		return eff, g.CycleStatus(eff.Slot)
	case eff.Grab:
		if src, ok := g.DragSource(); ok {
			if src == eff.Slot {
				// Dropping back where it came from ends the keyboard drag.
				g.CancelDrag()
				return eff, nil
			}
			return eff, g.CompleteDrag(eff.Slot)
		}
		if _, ok := g.board[eff.Slot]; ok {
			g.BeginDrag(eff.Slot)
		}
	}
	return eff, nil
}

package tui

import (
	"fmt"

	"weekplan/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

// updateMouse maps pointer events onto the grid:
//   - motion sets or clears the hovered slot
//   - pressing on a task starts a drag from it
//   - releasing on another cell drops the task there, on the same cell it is a click
//   - a click on a task cycles its status, on an empty cell it opens the entry modal
//   - releasing outside the grid cancels the drag
//
// The grid ignores the mouse while a modal or the help overlay is up.
func (m appModel) updateMouse(msg tea.MouseMsg) (appModel, tea.Cmd) {
	if m.grid.EntryOpen() || m.showHelp {
		return m, nil
	}

	g := geomForWidth(m.width)
	slot, onGrid := g.hit(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionMotion:
		if onGrid {
			m.grid.SetHover(slot)
		} else {
			m.grid.ClearHover()
		}
		return m, nil

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if !onGrid {
			m.pressed = nil
			if m.grid.Dragging() {
				m.grid.CancelDrag()
			}
			return m, nil
		}
		m.pressed = &slot
		m.grid.SetFocus(model.IndexOf(slot))
		if _, ok := m.grid.Task(slot); ok && !m.grid.Dragging() {
			m.grid.BeginDrag(slot)
		}
		return m, nil

	case tea.MouseActionRelease:
		pressed := m.pressed
		m.pressed = nil
		if pressed == nil {
			return m, nil
		}
		if !onGrid {
			m.grid.CancelDrag()
			return m, nil
		}
		m.grid.SetHover(slot)
		return m.release(*pressed, slot)
	}
	return m, nil
}

func (m appModel) release(pressed, slot model.SlotKey) (appModel, tea.Cmd) {
	if src, ok := m.grid.DragSource(); ok {
		if src != slot {
			if err := m.grid.CompleteDrag(slot); err != nil {
				return m.flashError(fmt.Errorf("save failed: %w", err))
			}
			m.grid.SetFocus(model.IndexOf(slot))
			return m, nil
		}
		m.grid.CancelDrag()
		if pressed == slot {
			if err := m.grid.CycleStatus(slot); err != nil {
				return m.flashError(fmt.Errorf("save failed: %w", err))
			}
		}
		return m, nil
	}

	if pressed == slot {
		if _, ok := m.grid.Task(slot); !ok {
			m.grid.OpenEntry(slot)
		}
	}
	return m, nil
}

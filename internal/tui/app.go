package tui

import (
	"fmt"
	"strings"
	"time"

	"weekplan/internal/docs"
	"weekplan/internal/logging"
	"weekplan/internal/model"
	"weekplan/internal/planner"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const flashDuration = 3 * time.Second

type flashDoneMsg struct{ seq int }

type appModel struct {
	grid  *planner.Grid
	entry entryModal
	keys  keyMap

	workspace string

	width  int
	height int

	showHelp bool

	flash    string
	flashErr bool
	flashSeq int

	// pressed is the cell under the last left-button press, used to tell a click from a drag.
	pressed *model.SlotKey

	log *log.Logger
}

func newAppModel(grid *planner.Grid, workspace string, logger *log.Logger) appModel {
	if logger == nil {
		logger = logging.Discard()
	}
	m := appModel{
		grid:      grid,
		keys:      defaultKeyMap(),
		workspace: workspace,
		log:       logger,
	}
	m.entry = newEntryModal(grid.CommitEntry, grid.CloseEntry)
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
			m.flashErr = false
		}
		return m, nil

	case tea.KeyMsg:
		m, cmd = m.updateKey(msg)

	case tea.MouseMsg:
		m, cmd = m.updateMouse(msg)

	default:
		if m.grid.EntryOpen() {
			// Cursor blink and friends.
			m.entry.input, cmd = m.entry.input.Update(msg)
		}
	}

	target, _ := m.grid.EntryTarget()
	syncCmd := m.entry.sync(m.grid.EntryOpen(), target)
	return m, tea.Batch(cmd, syncCmd)
}

func (m appModel) updateKey(msg tea.KeyMsg) (appModel, tea.Cmd) {
	if m.grid.EntryOpen() {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.entry, cmd = m.entry.update(msg)
		if err := m.entry.err; err != nil {
			var flashCmd tea.Cmd
			m, flashCmd = m.flashError(fmt.Errorf("save failed: %w", err))
			return m, tea.Batch(cmd, flashCmd)
		}
		return m, cmd
	}

	if m.showHelp {
		switch {
		case msg.String() == "ctrl+c":
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit):
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		if m.grid.Dragging() {
			m.grid.CancelDrag()
			m.pressed = nil
			return m.flashMsg("move cancelled")
		}
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		return m.copyFocused()
	}

	k := m.keys.gridKey(msg)
	if k == planner.KeyNone {
		return m, nil
	}
	wasDragging := m.grid.Dragging()
	if _, err := m.grid.HandleKey(k); err != nil {
		m.log.Error("key action failed", "key", k, "err", err)
		return m.flashError(fmt.Errorf("save failed: %w", err))
	}
	if k == planner.KeyGrab && !wasDragging && !m.grid.Dragging() {
		return m.flashMsg("nothing to move here")
	}
	return m, nil
}

func (m appModel) copyFocused() (appModel, tea.Cmd) {
	t, ok := m.grid.Task(m.grid.FocusedSlot())
	if !ok {
		return m.flashMsg("nothing to copy")
	}
	if err := copyToClipboard(t.Title); err != nil {
		m.log.Warn("clipboard write failed", "err", err)
		return m.flashError(fmt.Errorf("copy failed: %w", err))
	}
	return m.flashMsg("copied: " + singleLine(t.Title))
}

func (m appModel) flashMsg(s string) (appModel, tea.Cmd) { return m.showFlash(s, false) }

func (m appModel) flashError(err error) (appModel, tea.Cmd) { return m.showFlash(err.Error(), true) }

// showFlash sets the status line text and schedules its removal. Only the newest flash is
// cleared by its tick.
func (m appModel) showFlash(s string, isErr bool) (appModel, tea.Cmd) {
	m.flash = s
	m.flashErr = isErr
	m.flashSeq++
	seq := m.flashSeq
	return m, tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
}

func (m appModel) View() string {
	w, h := m.width, m.height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	g := geomForWidth(w)

	header := styleTitle().Render("weekplan")
	if ws := strings.TrimSpace(m.workspace); ws != "" {
		header += "  " + styleMuted().Render(ws)
	}
	header += "  " + styleMuted().Render(fmt.Sprintf("%d tasks", m.grid.Len()))

	parts := []string{header, "", m.renderGrid(g)}
	if s := m.renderStatusLine(); s != "" {
		parts = append(parts, s)
	} else {
		parts = append(parts, "")
	}
	if tip := m.renderTooltip(g); tip != "" {
		parts = append(parts, tip)
	}
	body := strings.Join(parts, "\n")

	bodyLines := strings.Count(body, "\n") + 1
	footer := m.renderFooter()
	if gap := h - bodyLines - 1; gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	out := body + "\n" + footer

	switch {
	case m.grid.EntryOpen():
		out = lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, m.entry.view(w),
			lipgloss.WithWhitespaceChars(" "))
	case m.showHelp:
		out = lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, m.renderHelp(w, h),
			lipgloss.WithWhitespaceChars(" "))
	}
	return normalizePane(out, w, h)
}

func (m appModel) renderHelp(w, h int) string {
	boxW := w - 8
	if boxW > 72 {
		boxW = 72
	}
	if boxW < 24 {
		boxW = 24
	}
	md, _ := docs.Get("keys")
	body := renderMarkdown(md, boxW-4)
	if maxLines := h - 4; maxLines > 0 {
		if lines := strings.Split(body, "\n"); len(lines) > maxLines {
			body = strings.Join(lines[:maxLines], "\n")
		}
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1).
		Width(boxW).
		Render(body)
}

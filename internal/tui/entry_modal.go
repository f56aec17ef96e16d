package tui

import (
	"strings"

	"weekplan/internal/model"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// entryModal collects one line of task text. It owns nothing but the buffer; saving and
// closing go through the callbacks.
type entryModal struct {
	// buf is the task text as typed or set. input only edits and renders it; its sanitizer
	// folds tabs and newlines, which buf keeps.
	buf   string
	input textinput.Model
	open  bool
	slot  model.SlotKey

	onSave  func(title string) error
	onClose func()

	// err is the last save failure, shown until the modal closes.
	err error
}

var (
	entrySubmitKey = key.NewBinding(key.WithKeys("enter", "ctrl+s"), key.WithHelp("enter", "save"))
	entryCancelKey = key.NewBinding(key.WithKeys("esc", "ctrl+g"), key.WithHelp("esc", "cancel"))
)

func newEntryModal(onSave func(string) error, onClose func()) entryModal {
	in := textinput.New()
	in.Placeholder = "Type your task here..."
	in.CharLimit = 0
	in.Width = 40
	in.Prompt = ""
	return entryModal{input: in, onSave: onSave, onClose: onClose}
}

// sync follows the grid's open flag. The buffer is cleared only on a closed -> open
// transition, so re-syncing while already open keeps the typed text.
func (e *entryModal) sync(open bool, slot model.SlotKey) tea.Cmd {
	switch {
	case open && !e.open:
		e.open = true
		e.slot = slot
		e.err = nil
		e.buf = ""
		e.input.SetValue("")
		return e.input.Focus()
	case !open && e.open:
		e.open = false
		e.err = nil
		e.input.Blur()
	}
	return nil
}

// UpdateText replaces the buffer verbatim.
func (e *entryModal) UpdateText(v string) {
	e.buf = v
	e.input.SetValue(v)
}

func (e *entryModal) Value() string {
	return e.buf
}

// Submit saves the untrimmed buffer and closes, unless the buffer is blank, in which case
// nothing happens and the modal stays open.
func (e *entryModal) Submit() bool {
	v := e.buf
	if strings.TrimSpace(v) == "" {
		return false
	}
	if e.onSave != nil {
		// The grid keeps the task even when persisting fails; the error is surfaced by the caller.
		e.err = e.onSave(v)
	}
	if e.onClose != nil {
		e.onClose()
	}
	return true
}

// Cancel closes without saving.
func (e *entryModal) Cancel() {
	if e.onClose != nil {
		e.onClose()
	}
}

func (e entryModal) update(msg tea.KeyMsg) (entryModal, tea.Cmd) {
	switch {
	case key.Matches(msg, entrySubmitKey):
		e.Submit()
		return e, nil
	case key.Matches(msg, entryCancelKey):
		e.Cancel()
		return e, nil
	}
	before := e.input.Value()
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	if v := e.input.Value(); v != before {
		e.buf = v
	}
	return e, cmd
}

func (e entryModal) view(width int) string {
	boxW := width - 8
	if boxW > 60 {
		boxW = 60
	}
	if boxW < 24 {
		boxW = 24
	}
	bodyW := boxW - 4
	e.input.Width = bodyW - 3

	title := styleTitle().Render("Add a task")
	slot := styleMuted().Render(e.slot.Label())
	help := styleMuted().Render(entrySubmitKey.Help().Key + ": " + entrySubmitKey.Help().Desc +
		"   " + entryCancelKey.Help().Key + ": " + entryCancelKey.Help().Desc)

	body := strings.Join([]string{
		title + "  " + slot,
		"",
		renderInputLine(bodyW, e.input.View()),
		"",
		help,
	}, "\n")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Background(colorSurfaceBg).
		Foreground(colorSurfaceFg).
		Padding(1, 1).
		Width(boxW).
		Render(body)
}

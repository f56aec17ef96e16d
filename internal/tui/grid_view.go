package tui

import (
	"fmt"
	"strings"

	"weekplan/internal/model"
	"weekplan/internal/statusutil"

	"github.com/charmbracelet/lipgloss"
)

const (
	// Lines above the grid: title + blank.
	gridTop  = 2
	timeColW = 6
	minCellW = 8
	maxCellW = 22
)

// gridGeom is the on-screen layout of the grid; rendering and mouse hit-testing share it.
//
//	line gridTop      day header
//	line gridTop+1    rule
//	line gridTop+2+r  hour row r
//
// Column c covers x in [timeColW + c*(cellW+1), timeColW + (c+1)*(cellW+1)), separator included.
type gridGeom struct {
	top   int
	cellW int
}

func geomForWidth(width int) gridGeom {
	cellW := (width-timeColW)/model.DaysPerWeek - 1
	if cellW < minCellW {
		cellW = minCellW
	}
	if cellW > maxCellW {
		cellW = maxCellW
	}
	return gridGeom{top: gridTop, cellW: cellW}
}

func (g gridGeom) totalWidth() int {
	return timeColW + model.DaysPerWeek*(g.cellW+1)
}

func (g gridGeom) colX(c int) int {
	return timeColW + c*(g.cellW+1)
}

// hit maps a screen position to a slot.
func (g gridGeom) hit(x, y int) (model.SlotKey, bool) {
	row := y - (g.top + 2)
	if row < 0 || row >= model.HoursPerDay || x < timeColW {
		return model.SlotKey{}, false
	}
	col := (x - timeColW) / (g.cellW + 1)
	if col >= model.DaysPerWeek {
		return model.SlotKey{}, false
	}
	return model.Slot(model.Day(col), model.FirstHour+row), true
}

func (m appModel) renderGrid(g gridGeom) string {
	sep := lipgloss.NewStyle().Foreground(colorRule).Render(glyphColSep())
	chrome := lipgloss.NewStyle().Bold(true).Foreground(colorChrome)

	var b strings.Builder

	b.WriteString(chrome.Render(padCell("Time", timeColW)))
	for _, d := range model.Days() {
		b.WriteString(sep)
		b.WriteString(chrome.Render(lipgloss.PlaceHorizontal(g.cellW, lipgloss.Center, d.String())))
	}
	b.WriteByte('\n')
	b.WriteString(lipgloss.NewStyle().Foreground(colorRule).Render(strings.Repeat(glyphHRule(), g.totalWidth())))

	for _, h := range model.Hours() {
		b.WriteByte('\n')
		b.WriteString(chrome.Render(padCell(fmt.Sprintf("%d:00", h), timeColW)))
		for _, d := range model.Days() {
			b.WriteString(sep)
			b.WriteString(m.renderCell(model.Slot(d, h), g.cellW))
		}
	}
	return b.String()
}

func (m appModel) renderCell(slot model.SlotKey, width int) string {
	focused := model.IndexOf(slot) == m.grid.Focus()
	src, dragging := m.grid.DragSource()
	isSource := dragging && src == slot

	left, right := " ", " "
	if focused {
		left, right = glyphFocusLeft(), glyphFocusRight()
	}

	t, ok := m.grid.Task(slot)
	title := ""
	if ok {
		title = singleLine(t.Title)
	}
	text := left + padCell(title, width-2) + right

	var st lipgloss.Style
	switch {
	case ok:
		st = statusCellStyle(t.Status)
	case focused:
		st = lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg)
	default:
		st = lipgloss.NewStyle()
	}
	if focused {
		st = st.Bold(true)
	}
	if isSource {
		st = st.Faint(true).Italic(true)
	}
	return st.Render(text)
}

// renderTooltip shows details for the hovered task, or "" when nothing is hovered.
func (m appModel) renderTooltip(g gridGeom) string {
	k, ok := m.grid.Hover()
	if !ok {
		return ""
	}
	t, ok := m.grid.Task(k)
	if !ok {
		return ""
	}
	body := strings.Join([]string{
		lipgloss.NewStyle().Bold(true).Render(singleLine(t.Title)),
		styleMuted().Render(k.Label()),
		"Status: " + statusutil.Label(t.Status),
	}, "\n")
	tip := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(statusTooltipColor(t.Status)).
		Padding(0, 1).
		Render(body)

	// Sit under the hovered column, shifted left when it would run off screen.
	x := g.colX(int(k.Day))
	if w := lipgloss.Width(tip); x+w > m.width && m.width > 0 {
		x = m.width - w
	}
	if x < 0 {
		x = 0
	}
	return lipgloss.NewStyle().MarginLeft(x).Render(tip)
}

func (m appModel) renderStatusLine() string {
	if src, ok := m.grid.DragSource(); ok {
		t, _ := m.grid.Task(src)
		return lipgloss.NewStyle().Foreground(colorAccent).Render(
			fmt.Sprintf("moving %q from %s %s space/release to drop, esc to cancel",
				singleLine(t.Title), src.Label(), glyphArrow()))
	}
	if strings.TrimSpace(m.flash) != "" {
		if m.flashErr {
			return lipgloss.NewStyle().Foreground(colorFlashErrorFg).Render(m.flash)
		}
		return styleMuted().Render(m.flash)
	}
	return ""
}

func (m appModel) renderFooter() string {
	var parts []string
	for _, b := range m.keys.shortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return styleMuted().Render(strings.Join(parts, "  "))
}

func singleLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\t", " ")
}

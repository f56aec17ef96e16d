package publish

import (
	"bytes"
	"fmt"
	"strings"

	"weekplan/internal/model"
	"weekplan/internal/statusutil"
)

type Layout string

const (
	// LayoutGrid renders the 7x12 grid as one Markdown table.
	LayoutGrid Layout = "grid"
	// LayoutAgenda renders one section per day listing only occupied hours.
	LayoutAgenda Layout = "agenda"
)

func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(LayoutAgenda):
		return LayoutAgenda, nil
	case string(LayoutGrid):
		return LayoutGrid, nil
	default:
		return "", fmt.Errorf("unknown layout: %q (expected agenda|grid)", s)
	}
}

type RenderOptions struct {
	Title  string
	Layout Layout
}

var statusMarks = map[model.Status]string{
	model.StatusPending:   "[ ]",
	model.StatusCompleted: "[x]",
	model.StatusOverdue:   "[!]",
}

// RenderWeekMarkdown renders the board as a Markdown document.
func RenderWeekMarkdown(b model.Board, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(opt.Title)
	if title == "" {
		title = "Week plan"
	}
	writeLn("# " + title)
	writeLn("")

	if len(b) == 0 {
		writeLn("_No tasks planned._")
		return buf.String()
	}

	switch opt.Layout {
	case LayoutGrid:
		renderGrid(writeLn, b)
	default:
		renderAgenda(writeLn, b)
	}

	writeLn("")
	writeLn(fmt.Sprintf("_%d tasks: %d pending, %d completed, %d overdue._",
		len(b), countStatus(b, model.StatusPending), countStatus(b, model.StatusCompleted), countStatus(b, model.StatusOverdue)))
	return buf.String()
}

func renderAgenda(writeLn func(string), b model.Board) {
	first := true
	for _, d := range model.Days() {
		var lines []string
		for _, h := range model.Hours() {
			t, ok := b[model.Slot(d, h)]
			if !ok {
				continue
			}
			lines = append(lines, fmt.Sprintf("- %s **%d:00** %s", statusMarks[t.Status], h, oneLine(t.Title)))
		}
		if len(lines) == 0 {
			continue
		}
		if !first {
			writeLn("")
		}
		first = false
		writeLn("## " + d.String())
		writeLn("")
		for _, ln := range lines {
			writeLn(ln)
		}
	}
}

func renderGrid(writeLn func(string), b model.Board) {
	header := []string{"Time"}
	rule := []string{"---"}
	for _, d := range model.Days() {
		header = append(header, d.String())
		rule = append(rule, "---")
	}
	writeLn("| " + strings.Join(header, " | ") + " |")
	writeLn("| " + strings.Join(rule, " | ") + " |")

	for _, h := range model.Hours() {
		row := []string{fmt.Sprintf("%d:00", h)}
		for _, d := range model.Days() {
			t, ok := b[model.Slot(d, h)]
			if !ok {
				row = append(row, "")
				continue
			}
			cell := tableCell(t.Title)
			if t.Status != model.StatusPending {
				cell += " _(" + statusutil.Label(t.Status) + ")_"
			}
			row = append(row, cell)
		}
		writeLn("| " + strings.Join(row, " | ") + " |")
	}
}

func countStatus(b model.Board, st model.Status) int {
	n := 0
	for _, t := range b {
		if t.Status == st {
			n++
		}
	}
	return n
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func tableCell(s string) string {
	return strings.ReplaceAll(oneLine(s), "|", `\|`)
}

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestMarkdownStyle_RespectsTUITheme(t *testing.T) {
	t.Setenv("WEEKPLAN_TUI_MD_STYLE", "")

	t.Setenv("WEEKPLAN_TUI_THEME", "light")
	if got := markdownStyle(); got != "light" {
		t.Fatalf("expected light; got %q", got)
	}

	t.Setenv("WEEKPLAN_TUI_THEME", "dark")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected dark; got %q", got)
	}
}

func TestMarkdownStyle_MDStyleOverridesTheme(t *testing.T) {
	t.Setenv("WEEKPLAN_TUI_THEME", "light")
	t.Setenv("WEEKPLAN_TUI_MD_STYLE", "dark")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected dark; got %q", got)
	}
}

func TestRenderMarkdown_KeepsText(t *testing.T) {
	t.Setenv("WEEKPLAN_TUI_MD_STYLE", "dark")
	out := ansi.Strip(renderMarkdown("# Keys\n\nPress `s` to cycle.", 40))
	if !strings.Contains(out, "Keys") || !strings.Contains(out, "cycle") {
		t.Fatalf("expected rendered text to keep content; got %q", out)
	}
	if renderMarkdown("   ", 40) != "" {
		t.Fatalf("expected empty render for blank input")
	}
}

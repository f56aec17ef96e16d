package tui

import (
	"os"
	"strings"
	"sync"
)

// Some terminals/fonts render box-drawing and arrow glyphs poorly, so every affordance has
// an ASCII fallback.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference honors WEEKPLAN_TUI_GLYPHS first, then the configured value.
func applyGlyphPreference(configured string) {
	for _, v := range []string{os.Getenv("WEEKPLAN_TUI_GLYPHS"), configured} {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "unicode", "utf8":
			setGlyphs(glyphSetUnicode)
			return
		case "ascii":
			setGlyphs(glyphSetASCII)
			return
		}
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphFocusLeft() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "▸"
}

func glyphFocusRight() string {
	if glyphs() == glyphSetASCII {
		return "<"
	}
	return "◂"
}

func glyphEllipsis() string {
	if glyphs() == glyphSetASCII {
		return "~"
	}
	return "…"
}

func glyphColSep() string {
	if glyphs() == glyphSetASCII {
		return "|"
	}
	return "│"
}

func glyphHRule() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}

func glyphArrow() string {
	if glyphs() == glyphSetASCII {
		return "->"
	}
	return "→"
}

package tui

import (
	"strings"

	"github.com/mark3labs/taskr/internal/tui/theme"
)

// Standard key representations for consistent hints across the app.
const (
	KeyUpDownJK = "↑↓/jk"
	KeyEnter    = "enter"
	KeySpace    = "space"
	KeyEsc      = "esc"
	KeyTab      = "tab"
	KeyLeftRght = "←/→"
	KeyCtrlF    = "ctrl+f"
	KeyCtrlO    = "ctrl+o"
	KeyDelete   = "d/del"
)

// RenderHintBar renders key-description pairs separated by " . ".
// Example: RenderHintBar("enter", "add", "esc", "quit") -> "enter add . esc quit"
func RenderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	s := theme.Current().S()
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		parts = append(parts, s.HintKey.Render(pairs[i])+" "+s.HintDesc.Render(pairs[i+1]))
	}
	return strings.Join(parts, " "+s.HintSeparator.Render(".")+" ")
}

// hintsFor returns the hint bar for the focused zone.
func hintsFor(zone focusZone) string {
	switch zone {
	case focusFilters:
		return RenderHintBar(KeyLeftRght, "choose", KeyEnter, "apply", KeyTab, "focus", KeyEsc, "quit")
	case focusList:
		return RenderHintBar(KeyUpDownJK, "move", KeySpace, "toggle", KeyDelete, "delete", KeyTab, "focus", KeyEsc, "quit")
	default:
		return RenderHintBar(KeyEnter, "add", KeyCtrlO, "editor", KeyTab, "focus", KeyCtrlF, "hide completed", KeyEsc, "quit")
	}
}

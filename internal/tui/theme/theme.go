package theme

import (
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	Name   string
	IsDark bool

	// Semantic colors
	Primary   string // lipgloss.Color is built from these hex strings
	Secondary string

	// Background hierarchy (dark→light)
	BgCrust    string
	BgBase     string
	BgSurface0 string

	// Foreground hierarchy (dim→bright)
	FgMuted  string
	FgSubtle string
	FgBase   string
	FgBright string

	// Status colors
	Success string
	Error   string

	// Borders
	BorderMuted   string
	BorderDefault string
	BorderFocused string

	// Lazy-built styles
	styles     *Styles
	stylesOnce sync.Once
}

var (
	current   *Theme
	currentMu sync.RWMutex
)

// Current returns the active theme.
func Current() *Theme {
	currentMu.RLock()
	t := current
	currentMu.RUnlock()
	if t != nil {
		return t
	}

	currentMu.Lock()
	defer currentMu.Unlock()
	if current == nil {
		current = NewCatppuccinMocha()
	}
	return current
}

// SetCurrent replaces the active theme.
func SetCurrent(t *Theme) {
	currentMu.Lock()
	defer currentMu.Unlock()
	current = t
}

// S returns the pre-built styles for this theme.
// Styles are lazily initialized on first call.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

// buildStyles constructs the pre-built styles from theme colors.
func (t *Theme) buildStyles() *Styles {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	button := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2)

	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)).
			Bold(true),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgSubtle)),

		Input:        box.BorderForeground(lipgloss.Color(t.BorderDefault)),
		InputFocused: box.BorderForeground(lipgloss.Color(t.BorderFocused)),
		InputError:   box.BorderForeground(lipgloss.Color(t.Error)),
		InputText:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase)),
		Placeholder:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
		PlaceholderError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)),
		Submit: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgMuted)).
			Bold(true),
		SubmitReady: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Secondary)).
			Bold(true),

		FilterActive: button.
			BorderForeground(lipgloss.Color(t.Secondary)).
			Background(lipgloss.Color(t.Secondary)).
			Foreground(lipgloss.Color(t.BgBase)).
			Bold(true),
		FilterInactive: button.
			BorderForeground(lipgloss.Color(t.BorderMuted)).
			Foreground(lipgloss.Color(t.FgSubtle)),
		FilterFocused: button.
			BorderForeground(lipgloss.Color(t.BorderFocused)).
			Foreground(lipgloss.Color(t.FgBright)),

		List:        box.BorderForeground(lipgloss.Color(t.BorderDefault)),
		ListFocused: box.BorderForeground(lipgloss.Color(t.BorderFocused)),
		TaskActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgBase)),
		TaskCompleted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Strikethrough(true),
		Checkbox: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgSubtle)),
		CheckboxDone: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),
		Cursor: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)).
			Bold(true),
		Trash: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)),
		Empty: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgMuted)).
			Italic(true),

		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgSubtle)),
		HintKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgBright)),
		HintDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgMuted)),
		HintSeparator: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.BorderDefault)),
	}
}

package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style

	// New task input
	Input            lipgloss.Style
	InputFocused     lipgloss.Style
	InputError       lipgloss.Style
	InputText        lipgloss.Style
	Placeholder      lipgloss.Style
	PlaceholderError lipgloss.Style
	Submit           lipgloss.Style
	SubmitReady      lipgloss.Style

	// Filter controls
	FilterActive   lipgloss.Style
	FilterInactive lipgloss.Style
	FilterFocused  lipgloss.Style

	// Task list
	List          lipgloss.Style
	ListFocused   lipgloss.Style
	TaskActive    lipgloss.Style
	TaskCompleted lipgloss.Style
	Checkbox      lipgloss.Style
	CheckboxDone  lipgloss.Style
	Cursor        lipgloss.Style
	Trash         lipgloss.Style
	Empty         lipgloss.Style

	// Footer
	Footer        lipgloss.Style
	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style
}

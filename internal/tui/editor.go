package tui

import (
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/editor"
	"github.com/mark3labs/taskr/internal/logger"
)

// draftEditedMsg carries the draft back from the external editor.
type draftEditedMsg struct {
	text string
	err  error
}

// openEditor suspends the program and opens $EDITOR on the current draft.
func (a *App) openEditor() tea.Cmd {
	tmpfile, err := os.CreateTemp("", "taskr_draft_*.txt")
	if err != nil {
		logger.Warn("Failed to create draft file: %v", err)
		return nil
	}
	path := tmpfile.Name()

	if _, err := tmpfile.WriteString(a.store.Draft()); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(path)
		logger.Warn("Failed to write draft file: %v", err)
		return nil
	}
	_ = tmpfile.Close()

	cmd, err := editor.Command("taskr", path)
	if err != nil {
		_ = os.Remove(path)
		logger.Warn("No editor available: %v", err)
		return nil
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		defer func() { _ = os.Remove(path) }()
		if err != nil {
			return draftEditedMsg{err: err}
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return draftEditedMsg{err: err}
		}
		return draftEditedMsg{text: flattenDraft(string(content))}
	})
}

// flattenDraft turns editor output into a single-line draft. Trailing
// newlines are dropped and inner line breaks become spaces.
func flattenDraft(s string) string {
	s = strings.TrimRight(s, "\r\n")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", " ")
}

func (a *App) applyEditedDraft(msg draftEditedMsg) tea.Cmd {
	if msg.err != nil {
		logger.Warn("Editor exited with error, keeping draft: %v", msg.err)
		return nil
	}
	a.store.SetDraft(msg.text)
	a.input.SetValue(msg.text)
	a.input.CursorEnd()
	a.syncPlaceholder()
	return a.setFocus(focusInput)
}

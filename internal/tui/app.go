package tui

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/taskr/internal/logger"
	"github.com/mark3labs/taskr/internal/task"
	"github.com/mark3labs/taskr/internal/tui/theme"
)

// PlaceholderText is shown in the empty input when no error is pending.
const PlaceholderText = "New task input"

// EmptyListText is shown when the visible list has no rows.
const EmptyListText = "No tasks to display."

// focusZone identifies which control receives key presses.
type focusZone int

const (
	focusInput focusZone = iota
	focusFilters
	focusList
	focusZoneCount
)

// App is the main Bubbletea model. It holds no task state of its own;
// every read and write goes through the store.
type App struct {
	store *task.Store
	keys  keyMap
	input textinput.Model
	title string

	focus        focusZone
	filterCursor task.Filter
	cursor       int
	scrollOffset int

	width  int
	height int

	hits     []hitArea
	quitting bool
}

// NewApp creates a new App bound to store.
func NewApp(store *task.Store, title string) *App {
	input := textinput.New()
	input.Placeholder = PlaceholderText
	input.Prompt = ""
	input.SetValue(store.Draft())

	a := &App{
		store:        store,
		keys:         defaultKeyMap(),
		input:        input,
		title:        title,
		focus:        focusInput,
		filterCursor: store.Filter(),
	}
	a.syncPlaceholder()
	a.input.Focus()
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.input.Focus()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.adjustScroll()
		return a, nil

	case tea.KeyPressMsg:
		return a, a.handleKeyPress(msg)

	case draftEditedMsg:
		return a, a.applyEditedDraft(msg)

	case tea.MouseClickMsg:
		m := msg.Mouse()
		if m.Button != tea.MouseLeft {
			return a, nil
		}
		return a, a.click(m.X, m.Y)
	}

	return a, a.updateInput(msg)
}

func (a *App) handleKeyPress(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		return tea.Quit
	case key.Matches(msg, a.keys.ToggleFilter):
		if a.store.Filter() == task.FilterAll {
			a.applyFilter(task.FilterActive)
		} else {
			a.applyFilter(task.FilterAll)
		}
		return nil
	case key.Matches(msg, a.keys.NextFocus):
		return a.setFocus((a.focus + 1) % focusZoneCount)
	case key.Matches(msg, a.keys.PrevFocus):
		return a.setFocus((a.focus + focusZoneCount - 1) % focusZoneCount)
	}

	switch a.focus {
	case focusFilters:
		return a.handleFilterKey(msg)
	case focusList:
		return a.handleListKey(msg)
	default:
		switch {
		case key.Matches(msg, a.keys.Submit):
			a.submit()
			return nil
		case key.Matches(msg, a.keys.Editor):
			return a.openEditor()
		}
		return a.updateInput(msg)
	}
}

func (a *App) handleFilterKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.QuitOutside):
		a.quitting = true
		return tea.Quit
	case key.Matches(msg, a.keys.FilterAll):
		a.filterCursor = task.FilterAll
	case key.Matches(msg, a.keys.FilterActive):
		a.filterCursor = task.FilterActive
	case key.Matches(msg, a.keys.Apply):
		a.applyFilter(a.filterCursor)
	}
	return nil
}

func (a *App) handleListKey(msg tea.KeyPressMsg) tea.Cmd {
	visible := a.store.VisibleTasks()

	switch {
	case key.Matches(msg, a.keys.QuitOutside):
		a.quitting = true
		return tea.Quit
	case key.Matches(msg, a.keys.Up):
		a.cursor--
	case key.Matches(msg, a.keys.Down):
		a.cursor++
	case key.Matches(msg, a.keys.Top):
		a.cursor = 0
	case key.Matches(msg, a.keys.Bottom):
		a.cursor = len(visible) - 1
	case key.Matches(msg, a.keys.Toggle):
		if a.cursor >= 0 && a.cursor < len(visible) {
			a.store.ToggleTaskCompletion(visible[a.cursor].ID)
		}
	case key.Matches(msg, a.keys.Delete):
		if a.cursor >= 0 && a.cursor < len(visible) {
			a.store.DeleteTask(visible[a.cursor].ID)
		}
	}

	a.adjustScroll()
	return nil
}

// updateInput forwards msg to the text input and mirrors any edit into the
// store's draft.
func (a *App) updateInput(msg tea.Msg) tea.Cmd {
	before := a.input.Value()
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if after := a.input.Value(); after != before {
		a.store.SetDraft(after)
		a.syncPlaceholder()
	}
	return cmd
}

// submit adds the draft as a task. On failure the draft is kept and the
// error replaces the placeholder.
func (a *App) submit() {
	if t, err := a.store.AddTask(); err == nil {
		logger.Debug("Task added from input: %s", t.ShortID())
	}
	a.input.SetValue(a.store.Draft())
	a.syncPlaceholder()
	a.adjustScroll()
}

func (a *App) applyFilter(f task.Filter) {
	a.store.SetFilter(f)
	a.filterCursor = f
	a.adjustScroll()
}

func (a *App) setFocus(zone focusZone) tea.Cmd {
	a.focus = zone
	a.filterCursor = a.store.Filter()
	if zone == focusInput {
		return a.input.Focus()
	}
	a.input.Blur()
	a.adjustScroll()
	return nil
}

// syncPlaceholder swaps the placeholder and input styles between the normal
// and error presentations.
func (a *App) syncPlaceholder() {
	t := theme.Current()
	s := t.S()

	placeholder := s.Placeholder
	a.input.Placeholder = PlaceholderText
	if msg := a.store.ErrorMessage(); msg != "" {
		placeholder = s.PlaceholderError
		a.input.Placeholder = msg
	}

	a.input.SetStyles(textinput.Styles{
		Focused: textinput.StyleState{
			Text:        s.InputText,
			Placeholder: placeholder,
			Prompt:      s.InputText,
		},
		Blurred: textinput.StyleState{
			Text:        s.InputText,
			Placeholder: placeholder,
			Prompt:      s.InputText,
		},
		Cursor: textinput.CursorStyle{
			Color: lipgloss.Color(t.Primary),
			Shape: tea.CursorBar,
			Blink: true,
		},
	})
}

// click dispatches a left click at (x, y) to whatever control is drawn there.
func (a *App) click(x, y int) tea.Cmd {
	h, ok := a.hitAt(x, y)
	if !ok {
		return nil
	}

	switch h.kind {
	case hitSubmit:
		cmd := a.setFocus(focusInput)
		a.submit()
		return cmd
	case hitInput:
		return a.setFocus(focusInput)
	case hitFilter:
		a.applyFilter(h.filter)
		return a.setFocus(focusFilters)
	case hitToggle:
		a.store.ToggleTaskCompletion(h.taskID)
		a.selectTask(h.taskID)
		return a.setFocus(focusList)
	case hitDelete:
		a.store.DeleteTask(h.taskID)
		return a.setFocus(focusList)
	}
	return nil
}

func (a *App) selectTask(id string) {
	for i, t := range a.store.VisibleTasks() {
		if t.ID == id {
			a.cursor = i
			break
		}
	}
	a.adjustScroll()
}

// adjustScroll clamps the cursor to the visible rows and scrolls to keep it
// on screen.
func (a *App) adjustScroll() {
	n := len(a.store.VisibleTasks())
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}

	rows := a.listRows()
	if a.cursor < a.scrollOffset {
		a.scrollOffset = a.cursor
	}
	if a.cursor >= a.scrollOffset+rows {
		a.scrollOffset = a.cursor - rows + 1
	}
	if maxOffset := max(0, n-rows); a.scrollOffset > maxOffset {
		a.scrollOffset = maxOffset
	}
}

// View implements tea.Model.
func (a *App) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion

	if a.quitting {
		view.AltScreen = false
		view.MouseMode = 0
		view.Content = lipgloss.NewLayer("")
		return view
	}

	width, height := a.width, a.height
	if width <= 0 || height <= 0 {
		width, height = defaultWidth, defaultHeight
	}

	canvas := uv.NewScreenBuffer(width, height)
	uv.NewStyledString(a.render()).Draw(canvas, canvas.Bounds())

	view.Content = lipgloss.NewLayer(canvas.Render())
	view.BackgroundColor = theme.HexToColor(theme.Current().BgCrust)

	return view
}

// Run starts the interactive program and blocks until the user quits or
// ctx is cancelled.
func Run(ctx context.Context, store *task.Store, title string) error {
	p := tea.NewProgram(NewApp(store, title), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}

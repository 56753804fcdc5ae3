package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/mark3labs/taskr/internal/task"
	"github.com/mark3labs/taskr/internal/tui/theme"
)

// Layout constants.
const (
	marginTop  = 1
	marginLeft = 2

	minContentWidth = 36
	maxContentWidth = 72

	defaultWidth  = 80
	defaultHeight = 24
	defaultRows   = 10

	// Rows taken by everything except the task list body.
	chromeHeight = 17

	boxInset   = 2 // border + padding on one side
	submitIcon = "›"
	trashIcon  = "✕"
	cursorIcon = "›"
)

// hitKind identifies the control under a mouse click.
type hitKind int

const (
	hitInput hitKind = iota
	hitSubmit
	hitFilter
	hitToggle
	hitDelete
)

// hitArea is a clickable screen rectangle recorded during render.
type hitArea struct {
	kind   hitKind
	rect   uv.Rectangle
	filter task.Filter
	taskID string
}

func (h hitArea) contains(x, y int) bool {
	return x >= h.rect.Min.X && x < h.rect.Max.X && y >= h.rect.Min.Y && y < h.rect.Max.Y
}

// hitAt returns the topmost hit area at (x, y). Later areas win.
func (a *App) hitAt(x, y int) (hitArea, bool) {
	for i := len(a.hits) - 1; i >= 0; i-- {
		if a.hits[i].contains(x, y) {
			return a.hits[i], true
		}
	}
	return hitArea{}, false
}

func (a *App) addHit(h hitArea) {
	a.hits = append(a.hits, h)
}

// contentWidth is the width of the boxes, clamped to a readable range.
func (a *App) contentWidth() int {
	w := a.width - 2*marginLeft
	if a.width <= 0 {
		w = defaultWidth - 2*marginLeft
	}
	return min(max(w, minContentWidth), maxContentWidth)
}

// listRows is the number of task rows the list box shows at once.
func (a *App) listRows() int {
	if a.height <= 0 {
		return defaultRows
	}
	return max(3, a.height-chromeHeight)
}

// render lays out the whole screen and records hit areas as it goes.
func (a *App) render() string {
	a.hits = a.hits[:0]

	w := a.contentWidth()
	y := marginTop
	var lines []string
	push := func(block string) {
		lines = append(lines, block)
		y += lipgloss.Height(block)
	}

	push(a.renderHeader(w))
	push("")
	push(a.renderInput(w, y))
	push(a.renderError(w))
	push("")
	push(a.renderFilters(y))
	push("")
	push(a.renderList(w, y))
	push("")
	push(a.renderFooter(w))

	body := strings.Join(lines, "\n")
	return strings.Repeat("\n", marginTop) + lipgloss.NewStyle().MarginLeft(marginLeft).Render(body)
}

func (a *App) renderHeader(w int) string {
	s := theme.Current().S()
	title := s.Title.Render(a.title)
	total, active, _ := a.store.Counts()
	right := s.Subtitle.Render(fmt.Sprintf("%d of %d left", active, total))
	gap := max(1, w-lipgloss.Width(title)-lipgloss.Width(right))
	return title + strings.Repeat(" ", gap) + right
}

func (a *App) renderInput(w, top int) string {
	s := theme.Current().S()

	box := s.Input
	switch {
	case a.store.ErrorMessage() != "":
		box = s.InputError
	case a.focus == focusInput:
		box = s.InputFocused
	}

	inner := w - 2*boxInset
	fieldW := inner - 2
	a.input.SetWidth(fieldW)

	field := ansi.Truncate(a.input.View(), fieldW, "")
	field = lipgloss.PlaceHorizontal(fieldW, lipgloss.Left, field)

	submit := s.Submit
	if strings.TrimSpace(a.store.Draft()) != "" {
		submit = s.SubmitReady
	}
	row := field + " " + submit.Render(submitIcon)

	a.addHit(hitArea{kind: hitInput, rect: uv.Rect(marginLeft, top, w, 3)})
	a.addHit(hitArea{kind: hitSubmit, rect: uv.Rect(marginLeft+boxInset+fieldW+1, top+1, 1, 1)})

	return box.Render(row)
}

func (a *App) renderError(w int) string {
	msg := a.store.ErrorMessage()
	if msg == "" {
		return " "
	}
	s := theme.Current().S()
	return s.PlaceholderError.Render(ansi.Truncate("✗ "+msg, w, "…"))
}

func (a *App) renderFilters(top int) string {
	s := theme.Current().S()

	buttons := []struct {
		label  string
		filter task.Filter
	}{
		{"Show all", task.FilterAll},
		{"Hide completed", task.FilterActive},
	}

	x := marginLeft
	rendered := make([]string, 0, len(buttons)*2)
	for i, b := range buttons {
		if i > 0 {
			rendered = append(rendered, "  ")
			x += 2
		}

		focused := a.focus == focusFilters && a.filterCursor == b.filter
		style := s.FilterInactive
		switch {
		case a.store.Filter() == b.filter:
			style = s.FilterActive
		case focused:
			style = s.FilterFocused
		}

		label := b.label
		if focused {
			label = cursorIcon + " " + label
		}
		btn := style.Render(label)
		bw := lipgloss.Width(btn)
		a.addHit(hitArea{kind: hitFilter, filter: b.filter, rect: uv.Rect(x, top, bw, lipgloss.Height(btn))})

		rendered = append(rendered, btn)
		x += bw
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (a *App) renderList(w, top int) string {
	s := theme.Current().S()

	box := s.List
	if a.focus == focusList {
		box = s.ListFocused
	}

	visible := a.store.VisibleTasks()
	rows := a.listRows()
	inner := w - 2*boxInset

	if len(visible) == 0 {
		empty := s.Empty.Render(EmptyListText)
		return box.Render(lipgloss.PlaceHorizontal(inner, lipgloss.Center, empty))
	}

	end := min(a.scrollOffset+rows, len(visible))
	textW := max(1, inner-8)
	left := marginLeft + boxInset

	out := make([]string, 0, end-a.scrollOffset)
	for i := a.scrollOffset; i < end; i++ {
		t := visible[i]
		rowY := top + 1 + (i - a.scrollOffset)

		cursor := " "
		if a.focus == focusList && i == a.cursor {
			cursor = s.Cursor.Render(cursorIcon)
		}

		checkbox := s.Checkbox.Render("[ ]")
		text := s.TaskActive
		if t.Completed {
			checkbox = s.CheckboxDone.Render("[x]")
			text = s.TaskCompleted
		}

		label := ansi.Truncate(t.Text, textW, "…")
		label = text.Render(label) + strings.Repeat(" ", textW-ansi.StringWidth(label))

		out = append(out, cursor+" "+checkbox+" "+label+" "+s.Trash.Render(trashIcon))

		a.addHit(hitArea{kind: hitToggle, taskID: t.ID, rect: uv.Rect(left+2, rowY, 4+textW, 1)})
		a.addHit(hitArea{kind: hitDelete, taskID: t.ID, rect: uv.Rect(left+inner-1, rowY, 1, 1)})
	}

	if hidden := len(visible) - end; hidden > 0 {
		out = append(out, s.Empty.Render(fmt.Sprintf("  %d more below", hidden)))
	}

	return box.Render(strings.Join(out, "\n"))
}

func (a *App) renderFooter(w int) string {
	s := theme.Current().S()
	total, active, completed := a.store.Counts()
	counts := s.Footer.Render(fmt.Sprintf("%d tasks · %d active · %d completed · showing %s",
		total, active, completed, a.store.Filter()))
	return ansi.Truncate(counts, w, "…") + "\n" + ansi.Truncate(hintsFor(a.focus), w, "…")
}

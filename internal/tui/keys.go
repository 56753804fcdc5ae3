package tui

import "charm.land/bubbles/v2/key"

// keyMap holds every binding the app reacts to.
type keyMap struct {
	Quit         key.Binding
	QuitOutside  key.Binding // only outside the text input, where q is text
	NextFocus    key.Binding
	PrevFocus    key.Binding
	ToggleFilter key.Binding

	Submit key.Binding
	Editor key.Binding

	FilterAll    key.Binding
	FilterActive key.Binding
	Apply        key.Binding

	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Toggle key.Binding
	Delete key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:         key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp(KeyEsc, "quit")),
		QuitOutside:  key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		NextFocus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp(KeyTab, "focus")),
		PrevFocus:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "focus")),
		ToggleFilter: key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp(KeyCtrlF, "hide completed")),

		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp(KeyEnter, "add")),
		Editor: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp(KeyCtrlO, "editor")),

		FilterAll:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "show all")),
		FilterActive: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "hide completed")),
		Apply:        key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp(KeyEnter, "apply")),

		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom: key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Toggle: key.NewBinding(key.WithKeys("space", "enter"), key.WithHelp(KeySpace, "toggle")),
		Delete: key.NewBinding(key.WithKeys("d", "x", "delete", "backspace"), key.WithHelp(KeyDelete, "delete")),
	}
}

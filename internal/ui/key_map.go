package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	next    key.Binding
	prev    key.Binding
	submit  key.Binding
	open    key.Binding
	copy    key.Binding
	reset   key.Binding
	close   key.Binding
	history key.Binding
	back    key.Binding
	quit    key.Binding
	forceQ  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		next:    key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		prev:    key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "create playlist")),
		open:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open link")),
		copy:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy link")),
		reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "new playlist")),
		close:   key.NewBinding(key.WithKeys("esc", "enter"), key.WithHelp("esc", "close")),
		history: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "history")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		forceQ:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.forceQ}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.next, k.prev, k.submit},
		{k.open, k.copy, k.reset},
		{k.close, k.history, k.quit},
	}
}

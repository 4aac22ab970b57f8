package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Search key.Binding
	Add    key.Binding
	Toggle key.Binding
	Delete key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) bindings() []key.Binding {
	return []key.Binding{k.Search, k.Add, k.Toggle, k.Delete}
}

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up       key.Binding
	down     key.Binding
	left     key.Binding
	right    key.Binding
	enter    key.Binding
	esc      key.Binding
	tab      key.Binding
	backtab  key.Binding
	loadMore key.Binding
	search   key.Binding
	copy     key.Binding
	delete   key.Binding
	signOut  key.Binding
	chat     key.Binding
	refresh  key.Binding
	yes      key.Binding
	no       key.Binding
}

var keys = keyMap{
	up:       key.NewBinding(key.WithKeys("up", "k")),
	down:     key.NewBinding(key.WithKeys("down", "j")),
	left:     key.NewBinding(key.WithKeys("left")),
	right:    key.NewBinding(key.WithKeys("right")),
	enter:    key.NewBinding(key.WithKeys("enter")),
	esc:      key.NewBinding(key.WithKeys("esc")),
	tab:      key.NewBinding(key.WithKeys("tab")),
	backtab:  key.NewBinding(key.WithKeys("shift+tab")),
	loadMore: key.NewBinding(key.WithKeys("m")),
	search:   key.NewBinding(key.WithKeys("/")),
	copy:     key.NewBinding(key.WithKeys("c")),
	delete:   key.NewBinding(key.WithKeys("d")),
	signOut:  key.NewBinding(key.WithKeys("o")),
	chat:     key.NewBinding(key.WithKeys("t")),
	refresh:  key.NewBinding(key.WithKeys("r")),
	yes:      key.NewBinding(key.WithKeys("y")),
	no:       key.NewBinding(key.WithKeys("n")),
}

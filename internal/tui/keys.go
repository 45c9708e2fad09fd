package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	NextView  key.Binding
	PrevView  key.Binding
	Reload    key.Binding
	FuelForm  key.Binding
	TripForm  key.Binding
	Analytics key.Binding

	Vehicle key.Binding
	Period  key.Binding
	Apply   key.Binding

	NextField key.Binding
	PrevField key.Binding
	Left      key.Binding
	Right     key.Binding
	Submit    key.Binding
	Escape    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		NextView:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		PrevView:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous view")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		FuelForm:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "log fuel")),
		TripForm:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "record trip")),
		Analytics: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "analytics")),

		Vehicle: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "vehicle")),
		Period:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "period")),
		Apply:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),

		NextField: key.NewBinding(key.WithKeys("tab", "down", "enter"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous vehicle")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next vehicle")),
		Submit:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
		Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextScene  key.Binding
	Quote      key.Binding
	Projection key.Binding
	Frequency  key.Binding
	Cycle      key.Binding
	TargetUp   key.Binding
	TargetDown key.Binding
	EditTarget key.Binding
	Save       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextScene:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next screen")),
		Quote:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "quote")),
		Projection: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "illustration")),
		Frequency:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "payment plans")),
		Cycle:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle frequency")),
		TargetUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "target age")),
		TargetDown: key.NewBinding(key.WithKeys("-")),
		EditTarget: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "type target age")),
		Save:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save request")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextScene, k.Cycle, k.TargetUp, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Quote, k.Projection, k.Frequency, k.NextScene},
		{k.Cycle, k.TargetUp, k.EditTarget},
		{k.Save, k.Help, k.Quit},
	}
}

package ui

import "github.com/charmbracelet/bubbles/key"

// shellKeyMap defines key bindings for the shell
type shellKeyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Activate  key.Binding
	Save      key.Binding
	Test      key.Binding
	TestVideo key.Binding
	Debug     key.Binding
	Quit      key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k shellKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Activate, k.Save, k.Test, k.TestVideo, k.Debug, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k shellKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Activate},
		{k.Save, k.Test, k.TestVideo, k.Debug, k.Quit},
	}
}

func newShellKeyMap() shellKeyMap {
	return shellKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Test: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "test"),
		),
		TestVideo: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "test video"),
		),
		Debug: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "debug"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap is the shell's key bindings. It implements help.KeyMap.
type keyMap struct {
	Left       key.Binding
	Right      key.Binding
	Toggle     key.Binding
	Menu       key.Binding
	Move       key.Binding
	Drop       key.Binding
	Cancel     key.Binding
	Shrink     key.Binding
	Grow       key.Binding
	Refresh    key.Binding
	RefreshAll key.Binding
	NewChat    key.Binding
	Reset      key.Binding
	Copy       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev pane"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next pane"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "hide pane"),
		),
		Menu: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8"),
			key.WithHelp("1-8", "toggle service"),
		),
		Move: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move pane"),
		),
		Drop: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "drop"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel move"),
		),
		Shrink: key.NewBinding(
			key.WithKeys("<", ","),
			key.WithHelp("<", "narrower"),
		),
		Grow: key.NewBinding(
			key.WithKeys(">", "."),
			key.WithHelp(">", "wider"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh pane"),
		),
		RefreshAll: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "refresh all"),
		),
		NewChat: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new chat"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reset layout"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy url"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Toggle, k.Menu, k.Move, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Toggle, k.Menu},
		{k.Move, k.Drop, k.Cancel, k.Shrink, k.Grow},
		{k.Refresh, k.RefreshAll, k.NewChat, k.Reset},
		{k.Copy, k.Help, k.Quit},
	}
}

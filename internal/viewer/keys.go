package viewer

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PrevHour key.Binding
	NextHour key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Now      key.Binding
	Detail   key.Binding
	Close    key.Binding
	Copy     key.Binding
	Reload   key.Binding
	Overlap  key.Binding
	Theme    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "prev day"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "next day"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "earlier"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "later"),
	),
	PrevHour: key.NewBinding(
		key.WithKeys("H", "shift+left"),
		key.WithHelp("H", "hour back"),
	),
	NextHour: key.NewBinding(
		key.WithKeys("L", "shift+right"),
		key.WithHelp("L", "hour on"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "page down"),
	),
	Now: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "jump to now"),
	),
	Detail: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "details"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy grid"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Overlap: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "overlap check"),
	),
	Theme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "next theme"),
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

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Detail, k.Copy, k.Reload, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.PrevHour, k.NextHour, k.PageUp, k.PageDown, k.Now},
		{k.Detail, k.Close, k.Copy, k.Reload},
		{k.Overlap, k.Theme, k.Help, k.Quit},
	}
}

package board

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	prevDay  key.Binding
	nextDay  key.Binding
	prevWeek key.Binding
	nextWeek key.Binding
	today    key.Binding
	up       key.Binding
	down     key.Binding
	next     key.Binding
	toggle   key.Binding
	del      key.Binding
	esc      key.Binding
	help     key.Binding
	quit     key.Binding
}

func (k keymap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.prevDay,
		k.nextDay,
		k.next,
		k.toggle,
		k.del,
		k.help,
		k.quit,
	}
}

func (k keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.prevDay, k.nextDay, k.prevWeek, k.nextWeek, k.today},
		{k.up, k.down, k.next, k.esc},
		{k.toggle, k.del, k.help, k.quit},
	}
}

var defaultKeymap = keymap{
	prevDay: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←", "prev day"),
	),
	nextDay: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→", "next day"),
	),
	prevWeek: key.NewBinding(
		key.WithKeys("pgup", "["),
		key.WithHelp("[", "prev week"),
	),
	nextWeek: key.NewBinding(
		key.WithKeys("pgdown", "]"),
		key.WithHelp("]", "next week"),
	),
	today: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "today"),
	),
	up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑", "scroll up"),
	),
	down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓", "scroll down"),
	),
	next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "select"),
	),
	toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "done"),
	),
	del: key.NewBinding(
		key.WithKeys("d", "delete"),
		key.WithHelp("d", "delete"),
	),
	esc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

package state

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the browse-mode bindings.
type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	PrevPage    key.Binding
	NextPage    key.Binding
	Toggle      key.Binding
	ToggleAll   key.Binding
	SelectAll   key.Binding
	ClearSelect key.Binding
	Sort        key.Binding
	Search      key.Binding
	Filter      key.Binding
	Columns     key.Binding
	Delete      key.Binding
	SetStatus   key.Binding
	Refresh     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PrevPage:    key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←/h", "prev page")),
		NextPage:    key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→/l", "next page")),
		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		ToggleAll:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select page")),
		SelectAll:   key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "select all matching")),
		ClearSelect: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear selection")),
		Sort:        key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "sort by column")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Filter:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle status filter")),
		Columns:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "columns")),
		Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete selected")),
		SetStatus:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "set status")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.ToggleAll, k.Search, k.Delete, k.SetStatus, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage},
		{k.Toggle, k.ToggleAll, k.SelectAll, k.ClearSelect},
		{k.Sort, k.Search, k.Filter, k.Columns},
		{k.Delete, k.SetStatus, k.Refresh, k.Quit},
	}
}

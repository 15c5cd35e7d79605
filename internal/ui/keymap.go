package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"inspectgrid/internal/nav"
)

// KeyMap holds application shortcuts; cell navigation lives in nav.KeyMap.
type KeyMap struct {
	Quit         key.Binding
	Undo         key.Binding
	Redo         key.Binding
	Search       key.Binding
	Filter       key.Binding
	ResetFilters key.Binding
	Sort         key.Binding
	SelectRow    key.Binding
	SelectAll    key.Binding
	Export       key.Binding
	Flush        key.Binding
	NextPage     key.Binding
	PrevPage     key.Binding
	Virtual      key.Binding
	AppLogs      key.Binding
	Help         key.Binding

	Nav nav.KeyMap
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:         key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
		Undo:         key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
		Redo:         key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "redo")),
		Search:       key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "search")),
		Filter:       key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "filter column")),
		ResetFilters: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset filters")),
		Sort:         key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "cycle sort")),
		SelectRow:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "select row")),
		SelectAll:    key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all")),
		Export:       key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "export view")),
		Flush:        key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save edits")),
		NextPage:     key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next page")),
		PrevPage:     key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "prev page")),
		Virtual:      key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "scroll/page mode")),
		AppLogs:      key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "app logs")),
		Help:         key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Nav:          nav.DefaultKeyMap(),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Search, k.Filter, k.Sort, k.Undo, k.Flush, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	groups := [][]key.Binding{
		{k.Search, k.Filter, k.ResetFilters, k.Sort},
		{k.SelectRow, k.SelectAll, k.Undo, k.Redo},
		{k.NextPage, k.PrevPage, k.Virtual},
		{k.Export, k.Flush, k.AppLogs, k.Help, k.Quit},
	}
	return append(groups, k.Nav.FullHelp()...)
}

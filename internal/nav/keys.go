package nav

import "github.com/charmbracelet/bubbles/key"

// KeyMap binds the grid navigation keys.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Home     key.Binding
	End      key.Binding
	First    key.Binding
	Last     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Next     key.Binding
	Prev     key.Binding
	Edit     key.Binding
	Clear    key.Binding
	Blur     key.Binding
	Copy     key.Binding
	Paste    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev column")),
		Right:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next column")),
		Home:     key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first column")),
		End:      key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last column")),
		First:    key.NewBinding(key.WithKeys("ctrl+home"), key.WithHelp("ctrl+home", "first cell")),
		Last:     key.NewBinding(key.WithKeys("ctrl+end"), key.WithHelp("ctrl+end", "last cell")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "10 rows up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "10 rows down")),
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next cell")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("⇧tab", "prev cell")),
		Edit:     key.NewBinding(key.WithKeys("enter", "f2"), key.WithHelp("enter/f2", "edit")),
		Clear:    key.NewBinding(key.WithKeys("delete", "backspace"), key.WithHelp("del", "clear cell")),
		Blur:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave grid")),
		Copy:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy cell")),
		Paste:    key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
	}
}

// ShortHelp and FullHelp satisfy help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Edit, k.Copy}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Home, k.End, k.First, k.Last, k.PageUp, k.PageDown},
		{k.Next, k.Prev, k.Edit, k.Clear, k.Blur},
		{k.Copy, k.Paste},
	}
}

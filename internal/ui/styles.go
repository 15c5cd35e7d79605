package ui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Base        lipgloss.Style
	Title       lipgloss.Style
	Status      lipgloss.Style
	Error       lipgloss.Style
	Help        lipgloss.Style
	PopupBox    lipgloss.Style
	PopupTitle  lipgloss.Style
	TableStyles TableStyles
}

type TableStyles struct {
	Header       lipgloss.Style
	HeaderSorted lipgloss.Style
	Cell         lipgloss.Style
	Active       lipgloss.Style
	ActiveRow    lipgloss.Style
	Selected     lipgloss.Style
	Edited       lipgloss.Style
	Null         lipgloss.Style
}

func NewStyles(dark bool) Styles {
	s := Styles{}
	if dark {
		s.Base = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
		s.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
		s.Status = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
		s.Help = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
		s.PopupBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("60")).Padding(1, 2)
		s.PopupTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	} else {
		s.Base = lipgloss.NewStyle()
		s.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("27"))
		s.Status = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Help = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.PopupBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")).Padding(1, 2)
		s.PopupTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("27"))
	}
	s.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	s.TableStyles = TableStyles{
		Header:       lipgloss.NewStyle().Bold(true),
		HeaderSorted: lipgloss.NewStyle().Bold(true).Underline(true),
		Cell:         lipgloss.NewStyle(),
		Active:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220")),
		ActiveRow:    lipgloss.NewStyle().Background(lipgloss.Color("236")),
		Selected:     lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
		Edited:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Null:         lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
	return s
}

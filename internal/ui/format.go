package ui

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"inspectgrid/internal/model"
)

var printer = message.NewPrinter(language.Hebrew)

// formatCell renders a value for display. Editing uses Value.String so the
// text parses back to the same value.
func formatCell(v model.Value) string {
	switch v.Kind {
	case model.KindNull:
		return ""
	case model.KindNumber:
		return printer.Sprint(number.Decimal(v.Num, number.MaxFractionDigits(2)))
	case model.KindBool:
		if v.Bool {
			return "✓"
		}
		return "✗"
	case model.KindDate:
		if h, m, s := v.Time.Clock(); h == 0 && m == 0 && s == 0 {
			return v.Time.Format("02/01/2006")
		}
		return v.Time.Format("02/01/2006 15:04")
	}
	// one line per cell
	return strings.Join(strings.Fields(v.Str), " ")
}

func describeSort(keys []model.SortKey) string {
	if len(keys) == 0 {
		return "none"
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.Column + " " + string(k.Direction)
	}
	return strings.Join(parts, ", ")
}

// nextDirection cycles asc, desc, off.
func nextDirection(d model.Direction) model.Direction {
	switch d {
	case model.NoDirection:
		return model.Asc
	case model.Asc:
		return model.Desc
	}
	return model.NoDirection
}

func sortDirection(keys []model.SortKey, column string) model.Direction {
	for _, k := range keys {
		if k.Column == column {
			return k.Direction
		}
	}
	return model.NoDirection
}

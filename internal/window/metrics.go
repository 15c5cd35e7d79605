// Package window turns the ordered view into a renderable slice and sizes
// its columns and rows.
package window

import (
	"github.com/mattn/go-runewidth"

	"inspectgrid/internal/model"
)

// Metrics are the sizing constants. DefaultMetrics is in pixels;
// CellMetrics is in terminal cells.
type Metrics struct {
	TypeWidths map[model.ColumnType]int
	CharWidth  int
	HeaderPad  int
	ContentPad int
	AutoCap    int
	CompactRow int
	TallRow    int
	LongCell   int // runes; any longer sampled cell switches to TallRow
	Sample     int // rows sampled for auto widths and row height
}

func DefaultMetrics() Metrics {
	return Metrics{
		TypeWidths: map[model.ColumnType]int{
			model.TypeBoolean: 80,
			model.TypeNumber:  100,
			model.TypeDate:    120,
			model.TypeEmail:   200,
			model.TypeURL:     250,
		},
		CharWidth:  8,
		HeaderPad:  40,
		ContentPad: 20,
		AutoCap:    300,
		CompactRow: 40,
		TallRow:    64,
		LongCell:   100,
		Sample:     10,
	}
}

// CellMetrics sizes columns in terminal cells. Terminal rows never grow,
// long cells are truncated instead.
func CellMetrics() Metrics {
	return Metrics{
		TypeWidths: map[model.ColumnType]int{
			model.TypeBoolean: 6,
			model.TypeNumber:  10,
			model.TypeDate:    12,
			model.TypeEmail:   24,
			model.TypeURL:     30,
		},
		CharWidth:  1,
		HeaderPad:  2,
		ContentPad: 1,
		AutoCap:    40,
		CompactRow: 1,
		TallRow:    1,
		LongCell:   100,
		Sample:     10,
	}
}

// ColumnWidth is the explicit width if set, else the type default, else
// max(header+pad, min(widest sampled cell+pad, cap)).
func ColumnWidth(c model.Column, sample []model.Row, m Metrics) int {
	if c.Width > 0 {
		return c.Width
	}
	if w, ok := m.TypeWidths[c.Type]; ok {
		return w
	}
	header := runewidth.StringWidth(c.Title())*m.CharWidth + m.HeaderPad
	content := 0
	for i, r := range sample {
		if i >= m.Sample {
			break
		}
		if w := runewidth.StringWidth(r.Get(c.ID).String()); w > content {
			content = w
		}
	}
	content = min(content*m.CharWidth+m.ContentPad, m.AutoCap)
	return max(header, content)
}

func ColumnWidths(columns []model.Column, sample []model.Row, m Metrics) []int {
	out := make([]int, len(columns))
	for i, c := range columns {
		out[i] = ColumnWidth(c, sample, m)
	}
	return out
}

// RowHeight is TallRow when any sampled cell exceeds LongCell runes.
func RowHeight(columns []model.Column, sample []model.Row, m Metrics) int {
	for i, r := range sample {
		if i >= m.Sample {
			break
		}
		for _, c := range columns {
			if len([]rune(r.Get(c.ID).String())) > m.LongCell {
				return m.TallRow
			}
		}
	}
	return m.CompactRow
}

// TotalExtent is the scrollable height of n rows plus the header.
func TotalExtent(n, rowHeight int) int {
	return (n + 1) * rowHeight
}

// PageSlice returns the rows of the 1-based page. A non-positive page size
// means a single page holding everything.
func PageSlice(view []model.Row, p model.Pagination) []model.Row {
	if p.PageSize <= 0 {
		return view
	}
	page := max(p.Page, 1)
	start := (page - 1) * p.PageSize
	if start >= len(view) {
		return nil
	}
	end := min(start+p.PageSize, len(view))
	return view[start:end]
}

package window

import "inspectgrid/internal/model"

// Window is the virtualized viewport over an already computed view.
// Scrolling only re-slices; it never re-runs the pipeline.
type Window struct {
	metrics   Metrics
	view      []model.Row
	columns   []model.Column
	widths    []int
	rowHeight int

	offset int // vertical scroll in metric units, body only
	height int // viewport height in metric units, header included
	left   int // first visible column
	width  int // available width in metric units
}

func New(m Metrics) *Window {
	return &Window{metrics: m, rowHeight: m.CompactRow}
}

// SetView replaces the view and columns, re-measures from the first
// sampled rows and clamps the scroll position.
func (w *Window) SetView(view []model.Row, columns []model.Column) {
	w.view = view
	w.columns = columns
	sample := view
	if len(sample) > w.metrics.Sample {
		sample = sample[:w.metrics.Sample]
	}
	w.widths = ColumnWidths(columns, sample, w.metrics)
	w.rowHeight = RowHeight(columns, sample, w.metrics)
	w.ScrollTo(w.offset)
	if w.left >= len(columns) {
		w.left = max(len(columns)-1, 0)
	}
}

// Resize sets the viewport size. height includes the header row.
func (w *Window) Resize(width, height int) {
	w.width = max(width, 0)
	w.height = max(height, 0)
	w.ScrollTo(w.offset)
}

// body is the height left for rows under a header of the current row
// height, which SetView may change after a resize.
func (w *Window) body() int {
	return max(w.height-w.rowHeight, 0)
}

func (w *Window) maxOffset() int {
	return max(len(w.view)*w.rowHeight-w.body(), 0)
}

// ScrollTo moves the vertical offset, clamped to the scrollable range.
func (w *Window) ScrollTo(offset int) {
	w.offset = min(max(offset, 0), w.maxOffset())
}

func (w *Window) ScrollBy(delta int) { w.ScrollTo(w.offset + delta) }

// ScrollIntoView adjusts both axes so the cell at view-relative (row, col)
// is visible. Out-of-range targets are ignored.
func (w *Window) ScrollIntoView(row, col int) {
	if row >= 0 && row < len(w.view) && w.rowHeight > 0 {
		top := row * w.rowHeight
		switch {
		case top < w.offset:
			w.ScrollTo(top)
		case top+w.rowHeight > w.offset+w.body():
			w.ScrollTo(top + w.rowHeight - w.body())
		}
	}
	if col >= 0 && col < len(w.columns) {
		if col < w.left {
			w.left = col
		}
		for w.left < col && w.span(w.left, col) > w.width {
			w.left++
		}
	}
}

// span is the width of columns [from, to].
func (w *Window) span(from, to int) int {
	total := 0
	for i := from; i <= to && i < len(w.widths); i++ {
		total += w.widths[i]
	}
	return total
}

// Range is the half-open index range of rows intersecting the viewport.
func (w *Window) Range() (first, last int) {
	if w.rowHeight <= 0 || len(w.view) == 0 {
		return 0, 0
	}
	first = w.offset / w.rowHeight
	last = (w.offset + w.body() + w.rowHeight - 1) / w.rowHeight
	return min(first, len(w.view)), min(last, len(w.view))
}

func (w *Window) Visible() []model.Row {
	first, last := w.Range()
	return w.view[first:last]
}

// Columns is the half-open range of columns that fit from the left edge.
// At least one column is always included.
func (w *Window) Columns() (first, last int) {
	if len(w.columns) == 0 {
		return 0, 0
	}
	used := 0
	last = w.left
	for last < len(w.columns) {
		used += w.widths[last]
		if used > w.width && last > w.left {
			break
		}
		last++
	}
	return w.left, last
}

func (w *Window) View() []model.Row { return w.view }
func (w *Window) Widths() []int     { return w.widths }
func (w *Window) RowHeight() int    { return w.rowHeight }
func (w *Window) Offset() int       { return w.offset }
func (w *Window) TotalExtent() int  { return TotalExtent(len(w.view), w.rowHeight) }

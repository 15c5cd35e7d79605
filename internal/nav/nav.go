// Package nav is the keyboard state machine over the active cell. It reads
// the rendered rows and columns and issues commands; it never writes row
// data itself.
package nav

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"inspectgrid/internal/model"
	"inspectgrid/internal/util/logx"
)

const pageStep = 10

// Grid is the slice of the store the controller needs.
type Grid interface {
	Rendered() []model.Row
	Columns() []model.Column
	StartCellEdit(rowID, columnID string) bool
	UpdateCell(rowID, columnID string, v model.Value) bool
}

type Scroller interface {
	ScrollIntoView(row, col int)
}

type Kind int

const (
	None Kind = iota
	Move
	EditStart
	EditClear
	Copy
	Blur
)

func (k Kind) String() string {
	switch k {
	case Move:
		return "move"
	case EditStart:
		return "edit-start"
	case EditClear:
		return "edit-clear"
	case Copy:
		return "copy"
	case Blur:
		return "blur"
	}
	return "none"
}

// Action reports what a key did. For EditStart, Initial holds typed or
// pasted runes and Paste marks a clipboard paste request.
type Action struct {
	Kind     Kind
	Cell     model.ActiveCell
	RowID    string
	ColumnID string
	Initial  []rune
	Paste    bool
	Text     string // copied text
	Err      error
}

type Controller struct {
	grid   Grid
	scroll Scroller
	clip   Clipboard
	keys   KeyMap

	cell   model.ActiveCell
	active bool
}

func New(grid Grid, scroll Scroller, clip Clipboard) *Controller {
	if clip == nil {
		clip = SystemClipboard{}
	}
	return &Controller{grid: grid, scroll: scroll, clip: clip, keys: DefaultKeyMap()}
}

func (c *Controller) Keys() KeyMap { return c.keys }

// Active returns the cursor, if any.
func (c *Controller) Active() (model.ActiveCell, bool) { return c.cell, c.active }

func (c *Controller) bounds() (rows, cols int) {
	return len(c.grid.Rendered()), len(c.grid.Columns())
}

// SetActive places the cursor; out-of-range targets are ignored.
func (c *Controller) SetActive(cell model.ActiveCell) bool {
	rows, cols := c.bounds()
	if cell.RowIndex < 0 || cell.RowIndex >= rows || cell.ColumnIndex < 0 || cell.ColumnIndex >= cols {
		return false
	}
	c.cell, c.active = cell, true
	c.scrollTo()
	return true
}

func (c *Controller) Blur() {
	c.active = false
	c.cell = model.ActiveCell{}
}

// Sync re-clamps the cursor after the rendered rows changed.
func (c *Controller) Sync() {
	if !c.active {
		return
	}
	rows, cols := c.bounds()
	if rows == 0 || cols == 0 {
		c.Blur()
		return
	}
	c.cell.RowIndex = min(c.cell.RowIndex, rows-1)
	c.cell.ColumnIndex = min(c.cell.ColumnIndex, cols-1)
}

func (c *Controller) scrollTo() {
	if c.scroll != nil {
		c.scroll.ScrollIntoView(c.cell.RowIndex, c.cell.ColumnIndex)
	}
}

// target resolves the active cell to row and column identity.
func (c *Controller) target() (model.Row, model.Column, bool) {
	if !c.active {
		return model.Row{}, model.Column{}, false
	}
	rows, cols := c.grid.Rendered(), c.grid.Columns()
	if c.cell.RowIndex >= len(rows) || c.cell.ColumnIndex >= len(cols) {
		return model.Row{}, model.Column{}, false
	}
	return rows[c.cell.RowIndex], cols[c.cell.ColumnIndex], true
}

func (c *Controller) HandleKey(msg tea.KeyMsg) Action {
	k := c.keys
	switch {
	case key.Matches(msg, k.Blur):
		if !c.active {
			return Action{}
		}
		c.Blur()
		return Action{Kind: Blur}
	case key.Matches(msg, k.Up):
		return c.move(func(r, col, _, _ int) (int, int) { return r - 1, col })
	case key.Matches(msg, k.Down):
		return c.move(func(r, col, _, _ int) (int, int) { return r + 1, col })
	case key.Matches(msg, k.Left):
		return c.move(func(r, col, _, _ int) (int, int) { return r, col - 1 })
	case key.Matches(msg, k.Right):
		return c.move(func(r, col, _, _ int) (int, int) { return r, col + 1 })
	case key.Matches(msg, k.Home):
		return c.move(func(r, _, _, _ int) (int, int) { return r, 0 })
	case key.Matches(msg, k.End):
		return c.move(func(r, _, _, cols int) (int, int) { return r, cols - 1 })
	case key.Matches(msg, k.First):
		return c.move(func(_, _, _, _ int) (int, int) { return 0, 0 })
	case key.Matches(msg, k.Last):
		return c.move(func(_, _, rows, cols int) (int, int) { return rows - 1, cols - 1 })
	case key.Matches(msg, k.PageUp):
		return c.move(func(r, col, _, _ int) (int, int) { return max(r-pageStep, 0), col })
	case key.Matches(msg, k.PageDown):
		return c.move(func(r, col, rows, _ int) (int, int) { return min(r+pageStep, rows-1), col })
	case key.Matches(msg, k.Next):
		return c.move(func(r, col, rows, cols int) (int, int) {
			switch {
			case col+1 < cols:
				return r, col + 1
			case r+1 < rows:
				return r + 1, 0
			}
			return r, col
		})
	case key.Matches(msg, k.Prev):
		return c.move(func(r, col, _, cols int) (int, int) {
			switch {
			case col > 0:
				return r, col - 1
			case r > 0:
				return r - 1, cols - 1
			}
			return r, col
		})
	case key.Matches(msg, k.Edit):
		return c.editStart(nil, false)
	case key.Matches(msg, k.Clear):
		return c.editClear()
	case key.Matches(msg, k.Copy):
		return c.copy()
	case key.Matches(msg, k.Paste):
		return c.editStart(nil, true)
	}
	if msg.Alt {
		return Action{}
	}
	switch msg.Type {
	case tea.KeyRunes:
		return c.editStart(msg.Runes, msg.Paste)
	case tea.KeySpace:
		return c.editStart([]rune{' '}, false)
	}
	return Action{}
}

// move applies step to the cursor. Targets outside the grid are ignored
// and an unchanged position is a no-op. With no active cell any movement
// activates the first cell.
func (c *Controller) move(step func(r, col, rows, cols int) (int, int)) Action {
	rows, cols := c.bounds()
	if rows == 0 || cols == 0 {
		return Action{}
	}
	if !c.active {
		c.SetActive(model.ActiveCell{})
		return Action{Kind: Move, Cell: c.cell}
	}
	r, col := step(c.cell.RowIndex, c.cell.ColumnIndex, rows, cols)
	if r < 0 || r >= rows || col < 0 || col >= cols {
		return Action{}
	}
	if r == c.cell.RowIndex && col == c.cell.ColumnIndex {
		return Action{}
	}
	c.cell = model.ActiveCell{RowIndex: r, ColumnIndex: col}
	c.scrollTo()
	return Action{Kind: Move, Cell: c.cell}
}

func (c *Controller) editStart(initial []rune, paste bool) Action {
	row, col, ok := c.target()
	if !ok || !col.Editable {
		return Action{}
	}
	if !c.grid.StartCellEdit(row.ID, col.ID) {
		return Action{}
	}
	return Action{Kind: EditStart, Cell: c.cell, RowID: row.ID, ColumnID: col.ID, Initial: initial, Paste: paste}
}

func (c *Controller) editClear() Action {
	row, col, ok := c.target()
	if !ok || !col.Editable {
		return Action{}
	}
	c.grid.UpdateCell(row.ID, col.ID, model.Null())
	return Action{Kind: EditClear, Cell: c.cell, RowID: row.ID, ColumnID: col.ID}
}

func (c *Controller) copy() Action {
	row, col, ok := c.target()
	if !ok {
		return Action{}
	}
	text := row.Get(col.ID).String()
	a := Action{Kind: Copy, Cell: c.cell, RowID: row.ID, ColumnID: col.ID, Text: text}
	if err := c.clip.WriteAll(text); err != nil {
		logx.Warnf("nav: copy failed: %v", err)
		a.Err = err
	}
	return a
}

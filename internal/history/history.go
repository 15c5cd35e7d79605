// Package history is the bounded single-cell undo/redo engine.
package history

import "inspectgrid/internal/model"

const DefaultDepth = 50

// ApplyFunc writes an edit's Value to the row and reports whether the row
// still exists.
type ApplyFunc func(model.CellEdit) bool

// History keeps forward edits on a ring bounded by depth; the oldest
// entries are evicted first. Not safe for concurrent use.
type History struct {
	undo *model.Ring[model.CellEdit]
	redo *model.Ring[model.CellEdit]
}

func New(depth int) *History {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &History{undo: model.NewRing[model.CellEdit](depth), redo: model.NewRing[model.CellEdit](depth)}
}

// Record pushes a forward edit and clears the redo stack.
func (h *History) Record(e model.CellEdit) {
	h.undo.Push(e)
	h.redo.Clear()
}

// Undo pops the newest edit and applies its inverse. On success the original
// edit moves to the redo stack and the inverse is returned. If apply fails
// the entry is discarded.
func (h *History) Undo(apply ApplyFunc) (model.CellEdit, bool) {
	e, ok := h.undo.Pop()
	if !ok {
		return model.CellEdit{}, false
	}
	inv := e.Inverse()
	if !apply(inv) {
		return model.CellEdit{}, false
	}
	h.redo.Push(e)
	return inv, true
}

// Redo pops the newest undone edit, reapplies it and returns it.
func (h *History) Redo(apply ApplyFunc) (model.CellEdit, bool) {
	e, ok := h.redo.Pop()
	if !ok {
		return model.CellEdit{}, false
	}
	if !apply(e) {
		return model.CellEdit{}, false
	}
	h.undo.Push(e)
	return e, true
}

func (h *History) Len() int     { return h.undo.Len() }
func (h *History) RedoLen() int { return h.redo.Len() }
func (h *History) Depth() int   { return h.undo.Cap() }

// Evicted counts edits lost to the depth bound.
func (h *History) Evicted() uint64 { return h.undo.Dropped() }

func (h *History) Clear() {
	h.undo.Clear()
	h.redo.Clear()
}

// SetDepth rebounds both stacks, keeping the newest entries.
func (h *History) SetDepth(depth int) {
	if depth <= 0 {
		depth = DefaultDepth
	}
	h.undo.Resize(depth)
	h.redo.Resize(depth)
}

// State is a copy of both stacks, oldest first.
func (h *History) State() model.UndoRedoState {
	return model.UndoRedoState{Undo: h.undo.Snapshot(), Redo: h.redo.Snapshot(), MaxDepth: h.undo.Cap()}
}

package history

import (
	"fmt"
	"testing"

	"inspectgrid/internal/model"
)

type cells map[string]model.Value

func (c cells) apply(e model.CellEdit) bool {
	if _, ok := c[e.RowID]; !ok {
		return false
	}
	c[e.RowID] = e.Value
	return true
}

func edit(row string, old, v string) model.CellEdit {
	return model.CellEdit{RowID: row, ColumnID: "name", OldValue: model.String(old), Value: model.String(v)}
}

func TestBoundedDepth(t *testing.T) {
	h := New(3)
	for i := 0; i < 4; i++ {
		h.Record(edit(fmt.Sprint(i), "", "x"))
	}
	if h.Len() != 3 {
		t.Fatalf("len = %d, want 3", h.Len())
	}
	st := h.State()
	if st.Undo[0].RowID != "1" || st.Undo[2].RowID != "3" {
		t.Fatalf("kept %v, want the 3 most recent", st.Undo)
	}
	if h.Evicted() != 1 {
		t.Fatalf("evicted = %d, want 1", h.Evicted())
	}
}

func TestDefaultDepth(t *testing.T) {
	h := New(0)
	for i := 0; i < DefaultDepth+1; i++ {
		h.Record(edit("1", "a", "b"))
	}
	if h.Len() != DefaultDepth {
		t.Fatalf("len = %d, want %d", h.Len(), DefaultDepth)
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	c := cells{"1": model.String("b")}
	h := New(10)
	h.Record(edit("1", "a", "b"))

	inv, ok := h.Undo(c.apply)
	if !ok || c["1"].Str != "a" {
		t.Fatalf("undo ok=%v value=%v", ok, c["1"])
	}
	if inv.Value.Str != "a" || inv.OldValue.Str != "b" {
		t.Fatalf("inverse = %+v", inv)
	}
	if h.Len() != 0 || h.RedoLen() != 1 {
		t.Fatalf("stacks = %d/%d, want 0/1", h.Len(), h.RedoLen())
	}
	e, ok := h.Redo(c.apply)
	if !ok || c["1"].Str != "b" || e.Value.Str != "b" {
		t.Fatalf("redo ok=%v value=%v edit=%+v", ok, c["1"], e)
	}
}

func TestEmptyStacksAreNoOps(t *testing.T) {
	h := New(5)
	called := false
	apply := func(model.CellEdit) bool { called = true; return true }
	if _, ok := h.Undo(apply); ok {
		t.Fatalf("undo on empty history succeeded")
	}
	if _, ok := h.Redo(apply); ok {
		t.Fatalf("redo on empty history succeeded")
	}
	if called {
		t.Fatalf("apply called on empty history")
	}
}

func TestForwardEditClearsRedo(t *testing.T) {
	c := cells{"1": model.String("b")}
	h := New(5)
	h.Record(edit("1", "a", "b"))
	h.Undo(c.apply)
	h.Record(edit("1", "a", "c"))
	if h.RedoLen() != 0 {
		t.Fatalf("redo len = %d after forward edit", h.RedoLen())
	}
}

func TestUndoOfVanishedRowDiscards(t *testing.T) {
	c := cells{}
	h := New(5)
	h.Record(edit("gone", "a", "b"))
	if _, ok := h.Undo(c.apply); ok {
		t.Fatalf("undo of missing row succeeded")
	}
	if h.Len() != 0 || h.RedoLen() != 0 {
		t.Fatalf("entry not discarded: %d/%d", h.Len(), h.RedoLen())
	}
}

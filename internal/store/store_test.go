package store

import (
	"reflect"
	"testing"

	"inspectgrid/internal/model"
)

var cols = []model.Column{
	{ID: "name", Label: "שם", Type: model.TypeString, Editable: true},
	{ID: "status", Label: "סטטוס", Type: model.TypeString, Editable: true},
	{ID: "age", Label: "גיל", Type: model.TypeNumber, Editable: true},
}

func testRows() []model.Row {
	return []model.Row{
		{ID: "1", Fields: map[string]model.Value{"name": model.String("Tower A"), "status": model.String("pending"), "age": model.Number(30)}},
		{ID: "2", Fields: map[string]model.Value{"name": model.String("Hangar"), "status": model.String("pending"), "age": model.Number(25)}},
		{ID: "3", Fields: map[string]model.Value{"name": model.String("Tower B"), "status": model.String("done"), "age": model.Number(25)}},
	}
}

func ids(rows []model.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

type recorder struct {
	edits   []model.CellEdit
	selects [][]string
	sorts   [][]model.SortKey
	filters [][]model.FilterCondition
}

func (r *recorder) listener() ListenerFuncs {
	return ListenerFuncs{
		CellEdit:  func(e model.CellEdit) { r.edits = append(r.edits, e) },
		RowSelect: func(ids []string) { r.selects = append(r.selects, ids) },
		Sort:      func(k []model.SortKey) { r.sorts = append(r.sorts, k) },
		Filter:    func(f []model.FilterCondition) { r.filters = append(r.filters, f) },
	}
}

func TestUpdateCellSameValueTwice(t *testing.T) {
	s := New(testRows(), cols, Options{})
	rec := &recorder{}
	s.Subscribe(rec.listener())
	if !s.UpdateCell("1", "name", model.String("X")) {
		t.Fatalf("first update not applied")
	}
	if s.UpdateCell("1", "name", model.String("X")) {
		t.Fatalf("second identical update applied")
	}
	if n := len(s.State().History.Undo); n != 1 {
		t.Fatalf("undo len = %d, want 1", n)
	}
	if len(rec.edits) != 1 || rec.edits[0].OldValue.Str != "Tower A" {
		t.Fatalf("edits = %+v", rec.edits)
	}
}

func TestUpdateCellTypeAwareNoOp(t *testing.T) {
	s := New(testRows(), cols, Options{})
	if s.UpdateCell("1", "age", model.String(" 30 ")) {
		t.Fatalf("numeric equal value recorded")
	}
	if s.UpdateCell("1", "name", model.String("Tower A ")) {
		t.Fatalf("trimmed equal value recorded")
	}
	if s.UpdateCell("missing", "name", model.String("x")) {
		t.Fatalf("update on missing row applied")
	}
}

func TestUndoRedoNotifies(t *testing.T) {
	s := New(testRows(), cols, Options{})
	rec := &recorder{}
	s.Subscribe(rec.listener())
	s.UpdateCell("2", "status", model.String("done"))
	if !s.Undo() {
		t.Fatalf("undo failed")
	}
	if r, _ := s.Row("2"); r.Get("status").Str != "pending" {
		t.Fatalf("after undo status = %v", r.Get("status"))
	}
	inv := rec.edits[1]
	if inv.Value.Str != "pending" || inv.OldValue.Str != "done" {
		t.Fatalf("undo notified %+v, want inverse edit", inv)
	}
	if !s.Redo() {
		t.Fatalf("redo failed")
	}
	if r, _ := s.Row("2"); r.Get("status").Str != "done" {
		t.Fatalf("after redo status = %v", r.Get("status"))
	}
	if s.Redo() {
		t.Fatalf("redo on empty stack succeeded")
	}
	if len(rec.edits) != 3 || rec.edits[2].Value.Str != "done" {
		t.Fatalf("edits = %+v", rec.edits)
	}
}

func TestFilterResetsPage(t *testing.T) {
	var rows []model.Row
	for i := 0; i < 30; i++ {
		rows = append(rows, model.Row{ID: string(rune('A' + i)), Fields: map[string]model.Value{"status": model.String("pending")}})
	}
	s := New(rows, cols, Options{PageSize: 10})
	rec := &recorder{}
	s.Subscribe(rec.listener())
	s.UpdatePagination(model.Pagination{Page: 3, PageSize: 10})
	if p := s.Pagination(); p.Page != 3 || p.Total != 30 {
		t.Fatalf("pagination = %+v", p)
	}
	if got := s.Rendered(); len(got) != 10 || got[0].ID != rows[20].ID {
		t.Fatalf("page 3 rendered %v", ids(got))
	}
	id := s.AddFilter(model.FilterCondition{Column: "status", Operator: model.OpEquals, Value: model.String("pending")})
	if s.Pagination().Page != 1 {
		t.Fatalf("page = %d after filter, want 1", s.Pagination().Page)
	}
	if len(rec.filters) != 1 || rec.filters[0][0].ID != id {
		t.Fatalf("filter notifications = %+v", rec.filters)
	}
	s.UpdatePagination(model.Pagination{Page: 2, PageSize: 10})
	s.UpdateSearch(model.SearchConfig{Query: "x"})
	if p := s.Pagination(); p.Page != 1 || p.Total != 0 {
		t.Fatalf("pagination after search = %+v", p)
	}
	if !s.RemoveFilter(id) || s.RemoveFilter(id) {
		t.Fatalf("remove filter mismatch")
	}
}

func TestPipelineThroughStore(t *testing.T) {
	s := New(testRows(), cols, Options{Virtualized: true})
	s.AddFilter(model.FilterCondition{Column: "status", Operator: model.OpEquals, Value: model.String("pending")})
	s.UpdateSearch(model.SearchConfig{Query: "Tower", Columns: []string{"name"}})
	if got := ids(s.View()); !reflect.DeepEqual(got, []string{"1"}) {
		t.Fatalf("view = %v, want [1]", got)
	}
	if s.Pagination().Total != 1 {
		t.Fatalf("total = %d, want 1", s.Pagination().Total)
	}
}

func TestMemoServesUnchangedInputs(t *testing.T) {
	s := New(testRows(), cols, Options{Virtualized: true})
	search := model.SearchConfig{Query: "Tower", Columns: []string{"name"}}
	s.UpdateSearch(search)
	runs := s.memo.Runs()
	for i := 0; i < 3; i++ {
		s.UpdateSearch(model.SearchConfig{Query: "Tower", Columns: []string{"name"}})
	}
	s.UpdateSort("age", model.Asc)
	runs++
	s.UpdateSort("age", model.Asc)
	s.ToggleRowSelection("1")
	s.UpdatePagination(model.Pagination{Page: 1, PageSize: 10})
	if got := s.memo.Runs(); got != runs {
		t.Fatalf("pipeline runs = %d, want %d", got, runs)
	}
	if got := ids(s.View()); !reflect.DeepEqual(got, []string{"3", "1"}) {
		t.Fatalf("view = %v, want [3 1]", got)
	}
	s.UpdateCell("3", "name", model.String("Hangar B"))
	if got := s.memo.Runs(); got != runs+1 {
		t.Fatalf("edit did not re-run the pipeline: runs = %d", got)
	}
	if got := ids(s.View()); !reflect.DeepEqual(got, []string{"1"}) {
		t.Fatalf("view after edit = %v, want [1]", got)
	}
}

func TestUpdateSortUpsert(t *testing.T) {
	s := New(testRows(), cols, Options{Virtualized: true})
	rec := &recorder{}
	s.Subscribe(rec.listener())
	s.UpdateSort("age", model.Asc)
	if got := ids(s.View()); !reflect.DeepEqual(got, []string{"2", "3", "1"}) {
		t.Fatalf("view = %v, want [2 3 1]", got)
	}
	s.UpdateSort("name", model.Asc)
	s.UpdateSort("age", model.Desc)
	want := []model.SortKey{{Column: "age", Direction: model.Desc}, {Column: "name", Direction: model.Asc}}
	if got := s.Sort(); !reflect.DeepEqual(got, want) {
		t.Fatalf("sort = %+v, want %+v", got, want)
	}
	s.UpdateSort("age", model.NoDirection)
	if got := s.Sort(); len(got) != 1 || got[0].Column != "name" {
		t.Fatalf("sort after removal = %+v", got)
	}
	s.ClearSort()
	if len(s.Sort()) != 0 || len(rec.sorts) != 5 {
		t.Fatalf("sort = %v notifications = %d", s.Sort(), len(rec.sorts))
	}
}

func TestSelection(t *testing.T) {
	s := New(testRows(), cols, Options{})
	rec := &recorder{}
	s.Subscribe(rec.listener())
	s.ToggleRowSelection("2")
	s.ToggleRowSelection("1")
	if sel := s.Selection(); sel.SelectAll || !reflect.DeepEqual(sel.IDs(), []string{"1", "2"}) {
		t.Fatalf("selection = %+v", sel)
	}
	s.ToggleRowSelection("3")
	if !s.Selection().SelectAll {
		t.Fatalf("selectAll not derived when every row selected")
	}
	s.ToggleSelectAll()
	if len(s.Selection().Rows) != 0 {
		t.Fatalf("toggle from all selected should clear")
	}
	s.ToggleSelectAll()
	if !s.Selection().SelectAll {
		t.Fatalf("toggle from partial should select all")
	}
	s.ClearSelection()
	last := rec.selects[len(rec.selects)-1]
	if len(last) != 0 || len(rec.selects) != 6 {
		t.Fatalf("selects = %v", rec.selects)
	}
}

func TestLoadMergesPendingEdits(t *testing.T) {
	s := New(testRows(), cols, Options{})
	s.UpdateCell("1", "name", model.String("מגדל"))
	s.UpdateCell("3", "name", model.String("gone soon"))
	s.ToggleRowSelection("3")
	s.StartCellEdit("3", "name")

	refreshed := testRows()[:2]
	s.Load(refreshed, cols)

	if r, _ := s.Row("1"); r.Get("name").Str != "מגדל" {
		t.Fatalf("pending edit not re-applied: %v", r.Get("name"))
	}
	if refreshed[0].Get("name").Str != "Tower A" {
		t.Fatalf("refresh input mutated")
	}
	if p := s.Pending(); len(p) != 1 || p[0].RowID != "1" {
		t.Fatalf("pending = %+v", p)
	}
	if s.Selection().Has("3") {
		t.Fatalf("selection kept vanished row")
	}
	if _, ok := s.Editing(); ok {
		t.Fatalf("editing cell on vanished row kept")
	}
	// newest history entry targets the vanished row and is discarded
	if s.Undo() {
		t.Fatalf("undo of vanished row applied")
	}
	if !s.Undo() {
		t.Fatalf("undo of surviving row failed")
	}
}

func TestFlushPending(t *testing.T) {
	s := New(testRows(), cols, Options{})
	s.UpdateCell("1", "age", model.Number(31))
	s.UpdateCell("2", "age", model.Number(26))
	out := s.FlushPending()
	if len(out) != 2 || len(s.Pending()) != 0 {
		t.Fatalf("flushed %d, pending %d", len(out), len(s.Pending()))
	}
	if s.State().History.Undo == nil || !s.CanUndo() {
		t.Fatalf("flush should not clear history")
	}
}

func TestUnsubscribe(t *testing.T) {
	s := New(testRows(), cols, Options{})
	rec := &recorder{}
	stop := s.Subscribe(rec.listener())
	stop()
	s.ClearSelection()
	if len(rec.selects) != 0 {
		t.Fatalf("notified after unsubscribe")
	}
}

func TestEditingState(t *testing.T) {
	s := New(testRows(), cols, Options{})
	if s.StartCellEdit("9", "name") {
		t.Fatalf("edit started on missing row")
	}
	s.StartCellEdit("1", "name")
	if st := s.State(); st.Editing.ActiveCell == nil || st.Editing.ActiveCell.RowID != "1" {
		t.Fatalf("active cell = %+v", st.Editing.ActiveCell)
	}
	s.CancelCellEdit()
	if _, ok := s.Editing(); ok {
		t.Fatalf("cancel did not clear editing cell")
	}
}

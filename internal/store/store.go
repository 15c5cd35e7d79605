// Package store owns the table state: loaded rows, filter/search/sort
// configuration, pagination, selection, pending edits and history. It is
// the only mutator of that state; every command recomputes what it affects
// and notifies subscribers before returning.
package store

import (
	"fmt"
	"slices"
	"time"

	"inspectgrid/internal/history"
	"inspectgrid/internal/model"
	"inspectgrid/internal/pipeline"
	"inspectgrid/internal/util"
	"inspectgrid/internal/util/logx"
	"inspectgrid/internal/window"
)

type Options struct {
	HistoryDepth int
	PageSize     int
	Virtualized  bool
	Metrics      window.Metrics
}

// State is a read-only snapshot of the table state.
type State struct {
	Filters     []model.FilterCondition
	Search      model.SearchConfig
	Sort        []model.SortKey
	Pagination  model.Pagination
	Selection   model.Selection
	Editing     model.EditingState
	History     model.UndoRedoState
	Virtualized bool
	SearchErr   error
}

type Store struct {
	columns []model.Column
	colIdx  map[string]int
	rows    []model.Row
	rowIdx  map[string]int

	filters    []model.FilterCondition
	search     model.SearchConfig
	sort       []model.SortKey
	pagination model.Pagination
	selected   map[string]struct{}
	pending    []model.CellEdit
	editing    *model.CellRef

	hist        *history.History
	win         *window.Window
	virtualized bool

	memo      pipeline.Memo
	rev       uint64
	view      []model.Row
	searchErr error
	filterSeq int

	subs    []subscription
	nextSub int

	now func() time.Time
}

func New(rows []model.Row, columns []model.Column, opts Options) *Store {
	if opts.Metrics.Sample == 0 {
		opts.Metrics = window.DefaultMetrics()
	}
	s := &Store{
		selected:    map[string]struct{}{},
		hist:        history.New(opts.HistoryDepth),
		win:         window.New(opts.Metrics),
		virtualized: opts.Virtualized,
		pagination:  model.Pagination{Page: 1, PageSize: opts.PageSize},
		now:         time.Now,
	}
	s.setData(rows, columns)
	s.invalidate()
	s.recompute()
	return s
}

func (s *Store) setData(rows []model.Row, columns []model.Column) {
	s.columns = append([]model.Column(nil), columns...)
	s.colIdx = make(map[string]int, len(columns))
	for i, c := range s.columns {
		s.colIdx[c.ID] = i
	}
	s.rows = make([]model.Row, 0, len(rows))
	s.rowIdx = make(map[string]int, len(rows))
	for _, r := range rows {
		if _, dup := s.rowIdx[r.ID]; dup {
			logx.Warnf("store: duplicate row id %q ignored", r.ID)
			continue
		}
		s.rowIdx[r.ID] = len(s.rows)
		s.rows = append(s.rows, r)
	}
}

// Load replaces the row set with a refreshed one. Pending edits are
// re-applied to rows that still exist; edits, selection and the editing
// cell referring to vanished rows are dropped.
func (s *Store) Load(rows []model.Row, columns []model.Column) {
	s.setData(rows, columns)
	kept := s.pending[:0]
	for _, e := range s.pending {
		i, ok := s.rowIdx[e.RowID]
		if !ok {
			logx.Infof("store: dropping pending edit on vanished row %s", e.RowID)
			continue
		}
		s.rows[i] = s.rows[i].With(e.ColumnID, e.Value)
		kept = append(kept, e)
	}
	s.pending = kept
	s.invalidate()
	if s.editing != nil {
		if _, ok := s.rowIdx[s.editing.RowID]; !ok {
			s.editing = nil
		}
	}
	pruned := false
	for id := range s.selected {
		if _, ok := s.rowIdx[id]; !ok {
			delete(s.selected, id)
			pruned = true
		}
	}
	s.recompute()
	if pruned {
		s.notifySelection()
	}
	logx.Infof("store: loaded %d rows, %d columns, %d pending edits kept", len(s.rows), len(s.columns), len(s.pending))
}

// invalidate marks the pipeline inputs as changed so the next recompute
// re-runs it instead of serving the memoized view.
func (s *Store) invalidate() { s.rev++ }

func (s *Store) recompute() {
	res := s.memo.Get(s.rev, func() pipeline.Input {
		return pipeline.Input{Rows: s.rows, Columns: s.columns, Filters: s.filters, Search: s.search, Sort: s.sort}
	})
	s.view = res.View
	s.searchErr = res.SearchErr
	s.pagination.Total = len(s.view)
	s.clampPage()
	s.refreshWindow()
}

func (s *Store) clampPage() {
	if s.pagination.Page < 1 {
		s.pagination.Page = 1
	}
	if pages := s.pagination.Pages(); s.pagination.Page > pages {
		s.pagination.Page = pages
	}
}

func (s *Store) refreshWindow() {
	if s.virtualized {
		s.win.SetView(s.view, s.columns)
		return
	}
	s.win.SetView(window.PageSlice(s.view, s.pagination), s.columns)
}

func (s *Store) column(id string) (model.Column, bool) {
	i, ok := s.colIdx[id]
	if !ok {
		return model.Column{}, false
	}
	return s.columns[i], true
}

// UpdateCell sets a cell and records it in history. Values equal to the
// current one under the column's type are ignored.
func (s *Store) UpdateCell(rowID, columnID string, v model.Value) bool {
	i, ok := s.rowIdx[rowID]
	if !ok {
		logx.Debugf("store: update on unknown row %s ignored", rowID)
		return false
	}
	col, ok := s.column(columnID)
	if !ok {
		logx.Debugf("store: update on unknown column %s ignored", columnID)
		return false
	}
	cur := s.rows[i].Get(columnID)
	if model.Equal(col.Type, cur, v) {
		return false
	}
	e := model.CellEdit{RowID: rowID, ColumnID: columnID, Value: model.Coerce(col.Type, v), OldValue: cur, Timestamp: s.now()}
	s.rows[i] = s.rows[i].With(columnID, e.Value)
	s.pending = append(s.pending, e)
	s.hist.Record(e)
	logx.Debugf("store: edit %s/%s = %s", rowID, columnID, util.RedactPII(e.Value.String()))
	s.invalidate()
	s.recompute()
	s.emit(func(l Listener) { l.OnCellEdit(e) })
	return true
}

// apply writes e.Value into its row, as a history step.
func (s *Store) apply(e model.CellEdit) bool {
	i, ok := s.rowIdx[e.RowID]
	if !ok {
		logx.Infof("store: history entry for vanished row %s discarded", e.RowID)
		return false
	}
	s.rows[i] = s.rows[i].With(e.ColumnID, e.Value)
	return true
}

func (s *Store) Undo() bool {
	return s.step(s.hist.Undo, "undo")
}

func (s *Store) Redo() bool {
	return s.step(s.hist.Redo, "redo")
}

func (s *Store) step(move func(history.ApplyFunc) (model.CellEdit, bool), what string) bool {
	e, ok := move(s.apply)
	if !ok {
		return false
	}
	e.Timestamp = s.now()
	s.pending = append(s.pending, e)
	logx.Debugf("store: %s %s/%s", what, e.RowID, e.ColumnID)
	s.invalidate()
	s.recompute()
	s.emit(func(l Listener) { l.OnCellEdit(e) })
	return true
}

func (s *Store) StartCellEdit(rowID, columnID string) bool {
	if _, ok := s.rowIdx[rowID]; !ok {
		return false
	}
	if _, ok := s.column(columnID); !ok {
		return false
	}
	s.editing = &model.CellRef{RowID: rowID, ColumnID: columnID}
	return true
}

func (s *Store) FinishCellEdit() { s.editing = nil }
func (s *Store) CancelCellEdit() { s.editing = nil }

// Editing returns the cell being edited, if any.
func (s *Store) Editing() (model.CellRef, bool) {
	if s.editing == nil {
		return model.CellRef{}, false
	}
	return *s.editing, true
}

func (s *Store) allSelected() bool {
	return len(s.rows) > 0 && len(s.selected) == len(s.rows)
}

func (s *Store) notifySelection() {
	ids := s.selection().IDs()
	s.emit(func(l Listener) { l.OnRowSelect(ids) })
}

func (s *Store) ToggleRowSelection(rowID string) {
	if _, ok := s.rowIdx[rowID]; !ok {
		return
	}
	if _, ok := s.selected[rowID]; ok {
		delete(s.selected, rowID)
	} else {
		s.selected[rowID] = struct{}{}
	}
	s.notifySelection()
}

// ToggleSelectAll selects every loaded row, or clears the selection when
// all were already selected.
func (s *Store) ToggleSelectAll() {
	if s.allSelected() {
		s.selected = map[string]struct{}{}
	} else {
		for _, r := range s.rows {
			s.selected[r.ID] = struct{}{}
		}
	}
	s.notifySelection()
}

func (s *Store) ClearSelection() {
	s.selected = map[string]struct{}{}
	s.notifySelection()
}

func (s *Store) filtersChanged() {
	s.pagination.Page = 1
	s.invalidate()
	s.recompute()
	filters := s.Filters()
	s.emit(func(l Listener) { l.OnFilter(filters) })
}

// AddFilter appends f, or replaces the filter with the same id in place.
// Filters without an id get one.
func (s *Store) AddFilter(f model.FilterCondition) string {
	if f.ID == "" {
		s.filterSeq++
		f.ID = fmt.Sprintf("f%d", s.filterSeq)
	}
	replaced := false
	for i := range s.filters {
		if s.filters[i].ID == f.ID {
			s.filters[i] = f
			replaced = true
			break
		}
	}
	if !replaced {
		s.filters = append(s.filters, f)
	}
	s.filtersChanged()
	return f.ID
}

func (s *Store) RemoveFilter(id string) bool {
	for i := range s.filters {
		if s.filters[i].ID == id {
			s.filters = append(s.filters[:i:i], s.filters[i+1:]...)
			s.filtersChanged()
			return true
		}
	}
	return false
}

func (s *Store) UpdateFilters(filters []model.FilterCondition) {
	s.filters = append([]model.FilterCondition(nil), filters...)
	s.filtersChanged()
}

// UpdateSearch replaces the search config. An identical config is a no-op.
func (s *Store) UpdateSearch(cfg model.SearchConfig) {
	if sameSearch(s.search, cfg) {
		return
	}
	cfg.Columns = append([]string(nil), cfg.Columns...)
	s.search = cfg
	s.pagination.Page = 1
	s.invalidate()
	s.recompute()
	if s.searchErr != nil {
		logx.Warnf("store: search %q matches nothing: %v", cfg.Query, s.searchErr)
	}
}

// UpdateSort upserts a sort key keeping its precedence; NoDirection removes
// the column from the sort list.
func (s *Store) UpdateSort(columnID string, dir model.Direction) {
	idx := -1
	for i, k := range s.sort {
		if k.Column == columnID {
			idx = i
			break
		}
	}
	switch {
	case dir == model.NoDirection && idx < 0:
		return
	case dir == model.NoDirection:
		s.sort = append(s.sort[:idx:idx], s.sort[idx+1:]...)
	case idx >= 0 && s.sort[idx].Direction == dir:
		s.sortChanged(false)
		return
	case idx >= 0:
		s.sort[idx].Direction = dir
	default:
		s.sort = append(s.sort, model.SortKey{Column: columnID, Direction: dir})
	}
	s.sortChanged(true)
}

func (s *Store) ClearSort() {
	changed := len(s.sort) > 0
	s.sort = nil
	s.sortChanged(changed)
}

// sortChanged recomputes and notifies; the pipeline only re-runs when the
// keys actually changed.
func (s *Store) sortChanged(changed bool) {
	if changed {
		s.invalidate()
	}
	s.recompute()
	keys := s.Sort()
	s.emit(func(l Listener) { l.OnSort(keys) })
}

// UpdatePagination replaces page and page size. Total stays derived from
// the view.
func (s *Store) UpdatePagination(p model.Pagination) {
	s.pagination.Page = p.Page
	s.pagination.PageSize = p.PageSize
	s.clampPage()
	s.refreshWindow()
}

// SetVirtualized switches between the scroll window and page slices.
func (s *Store) SetVirtualized(on bool) {
	s.virtualized = on
	s.refreshWindow()
}

func (s *Store) SetHistoryDepth(depth int) { s.hist.SetDepth(depth) }

// FlushPending hands the pending edits to the caller and clears them.
func (s *Store) FlushPending() []model.CellEdit {
	out := s.pending
	s.pending = nil
	return out
}

func sameSearch(a, b model.SearchConfig) bool {
	return a.Query == b.Query &&
		a.CaseSensitive == b.CaseSensitive &&
		a.WholeWord == b.WholeWord &&
		a.Regex == b.Regex &&
		slices.Equal(a.Columns, b.Columns)
}

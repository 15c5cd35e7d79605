package store

import (
	"inspectgrid/internal/model"
	"inspectgrid/internal/window"
)

// View is the filtered, searched and sorted row sequence.
func (s *Store) View() []model.Row { return s.view }

func (s *Store) Columns() []model.Column { return s.columns }

// Rows are all loaded rows in load order.
func (s *Store) Rows() []model.Row { return s.rows }

// Row looks a row up by id.
func (s *Store) Row(id string) (model.Row, bool) {
	i, ok := s.rowIdx[id]
	if !ok {
		return model.Row{}, false
	}
	return s.rows[i], true
}

// Rendered is the row range keyboard navigation moves over: the whole view
// when virtualized, the current page otherwise.
func (s *Store) Rendered() []model.Row { return s.win.View() }

// Visible is the slice currently intersecting the viewport.
func (s *Store) Visible() []model.Row { return s.win.Visible() }

func (s *Store) Window() *window.Window { return s.win }

func (s *Store) Pending() []model.CellEdit {
	return append([]model.CellEdit(nil), s.pending...)
}

func (s *Store) Filters() []model.FilterCondition {
	return append([]model.FilterCondition(nil), s.filters...)
}

func (s *Store) Sort() []model.SortKey {
	return append([]model.SortKey(nil), s.sort...)
}

func (s *Store) Search() model.SearchConfig { return s.search }

func (s *Store) Pagination() model.Pagination { return s.pagination }

func (s *Store) Virtualized() bool { return s.virtualized }

func (s *Store) CanUndo() bool { return s.hist.Len() > 0 }
func (s *Store) CanRedo() bool { return s.hist.RedoLen() > 0 }

func (s *Store) selection() model.Selection {
	rows := make(map[string]struct{}, len(s.selected))
	for id := range s.selected {
		rows[id] = struct{}{}
	}
	return model.Selection{Rows: rows, SelectAll: s.allSelected()}
}

func (s *Store) Selection() model.Selection { return s.selection() }

func (s *Store) State() State {
	st := State{
		Filters:     s.Filters(),
		Search:      s.search,
		Sort:        s.Sort(),
		Pagination:  s.pagination,
		Selection:   s.selection(),
		Editing:     model.EditingState{Pending: s.Pending()},
		History:     s.hist.State(),
		Virtualized: s.virtualized,
		SearchErr:   s.searchErr,
	}
	if s.editing != nil {
		ref := *s.editing
		st.Editing.ActiveCell = &ref
	}
	return st
}

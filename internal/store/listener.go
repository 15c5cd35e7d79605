package store

import "inspectgrid/internal/model"

// Listener receives change notifications synchronously after the state
// change is applied.
type Listener interface {
	OnCellEdit(model.CellEdit)
	OnRowSelect(ids []string)
	OnSort([]model.SortKey)
	OnFilter([]model.FilterCondition)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	CellEdit  func(model.CellEdit)
	RowSelect func([]string)
	Sort      func([]model.SortKey)
	Filter    func([]model.FilterCondition)
}

func (f ListenerFuncs) OnCellEdit(e model.CellEdit) {
	if f.CellEdit != nil {
		f.CellEdit(e)
	}
}

func (f ListenerFuncs) OnRowSelect(ids []string) {
	if f.RowSelect != nil {
		f.RowSelect(ids)
	}
}

func (f ListenerFuncs) OnSort(keys []model.SortKey) {
	if f.Sort != nil {
		f.Sort(keys)
	}
}

func (f ListenerFuncs) OnFilter(filters []model.FilterCondition) {
	if f.Filter != nil {
		f.Filter(filters)
	}
}

type subscription struct {
	id int
	l  Listener
}

// Subscribe registers l and returns a func that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscription{id: id, l: l})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) emit(fn func(Listener)) {
	for _, sub := range s.subs {
		fn(sub.l)
	}
}

// Package pipeline derives the ordered view from the loaded rows and the
// current filter, search and sort configuration.
package pipeline

import (
	"sort"

	"inspectgrid/internal/filter"
	"inspectgrid/internal/model"
)

type Input struct {
	Rows    []model.Row
	Columns []model.Column
	Filters []model.FilterCondition
	Search  model.SearchConfig
	Sort    []model.SortKey
}

// Result is the view plus what the run had to report.
type Result struct {
	View      []model.Row
	SearchErr error
}

// Run filters, searches and stably sorts in.Rows. The input slice is never
// reordered; the view is a fresh slice sharing the row values.
func Run(in Input) Result {
	ev := filter.NewEvaluator(in.Columns, in.Filters, in.Search)
	view := make([]model.Row, 0, len(in.Rows))
	for _, r := range in.Rows {
		if ev.Match(r) {
			view = append(view, r)
		}
	}
	Sort(view, in.Columns, in.Sort)
	return Result{View: view, SearchErr: ev.SearchErr()}
}

// Sort orders rows in place by keys, first key first. Equal rows keep their
// relative order.
func Sort(rows []model.Row, columns []model.Column, keys []model.SortKey) {
	if len(keys) == 0 || len(rows) < 2 {
		return
	}
	types := make([]model.ColumnType, len(keys))
	for i, k := range keys {
		types[i] = model.TypeString
		for _, c := range columns {
			if c.ID == k.Column && c.Type.Known() {
				types[i] = c.Type
				break
			}
		}
	}
	strcmp := model.NewCollator()
	sort.SliceStable(rows, func(i, j int) bool {
		for n, k := range keys {
			c := model.Compare(types[n], rows[i].Get(k.Column), rows[j].Get(k.Column), strcmp)
			if c == 0 {
				continue
			}
			if k.Direction == model.Desc {
				c = -c
			}
			return c < 0
		}
		return false
	})
}

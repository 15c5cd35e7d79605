package source

import (
	"inspectgrid/internal/detect"
	"inspectgrid/internal/model"
)

const inferSample = 200

// builder accumulates records and turns them into a Dataset. Columns are
// inferred once per key; supplied columns are never changed but unknown
// keys still get an inferred column appended.
type builder struct {
	cols   []model.Column
	colIdx map[string]int
	keys   []string
	seen   map[string]bool
	recs   []record
}

func newBuilder(cols []model.Column) *builder {
	b := &builder{colIdx: map[string]int{}, seen: map[string]bool{}}
	for _, c := range cols {
		b.colIdx[c.ID] = len(b.cols)
		b.cols = append(b.cols, c)
	}
	return b
}

// declare registers keys in order without adding a record.
func (b *builder) declare(keys []string) {
	for _, k := range keys {
		if !b.seen[k] {
			b.seen[k] = true
			b.keys = append(b.keys, k)
		}
	}
}

func (b *builder) add(rec record) {
	b.declare(rec.keys)
	b.recs = append(b.recs, rec)
}

func (b *builder) sample() []map[string]string {
	n := min(len(b.recs), inferSample)
	out := make([]map[string]string, n)
	for i := 0; i < n; i++ {
		m := make(map[string]string, len(b.recs[i].fields))
		for k, v := range b.recs[i].fields {
			m[k] = text(v)
		}
		out[i] = m
	}
	return out
}

func (b *builder) inferMissing() {
	var missing []string
	for _, k := range b.keys {
		if _, ok := b.colIdx[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) == 0 {
		return
	}
	for _, c := range detect.Heuristics(missing, b.sample()).Columns {
		b.colIdx[c.ID] = len(b.cols)
		b.cols = append(b.cols, c)
	}
}

// build returns a fresh Dataset. A later record with an already seen id
// replaces the earlier one in place.
func (b *builder) build() Dataset {
	b.inferMissing()
	rows := make([]model.Row, 0, len(b.recs))
	pos := make(map[string]int, len(b.recs))
	for _, rec := range b.recs {
		fields := make(map[string]model.Value, len(rec.fields))
		for k, raw := range rec.fields {
			fields[k] = value(b.cols[b.colIdx[k]].Type, raw)
		}
		row := model.Row{ID: rec.id, Fields: fields}
		if i, ok := pos[rec.id]; ok {
			rows[i] = row
			continue
		}
		pos[rec.id] = len(rows)
		rows = append(rows, row)
	}
	return Dataset{Columns: append([]model.Column(nil), b.cols...), Rows: rows}
}

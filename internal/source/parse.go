package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"inspectgrid/internal/model"
)

// record is one input line before column types are known.
type record struct {
	line   int
	id     string
	keys   []string
	fields map[string]any
}

// parseJSONLine decodes a flat JSON object keeping its key order.
func parseJSONLine(line int, text string) (record, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return record{}, fmt.Errorf("line %d: %w", line, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return record{}, fmt.Errorf("line %d: expected object", line)
	}
	rec := record{line: line, fields: map[string]any{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return record{}, fmt.Errorf("line %d: %w", line, err)
		}
		k, _ := tok.(string)
		var v any
		if err := dec.Decode(&v); err != nil {
			return record{}, fmt.Errorf("line %d: field %q: %w", line, k, err)
		}
		if n, ok := v.(json.Number); ok {
			if f, err := n.Float64(); err == nil {
				v = f
			} else {
				v = n.String()
			}
		}
		if _, dup := rec.fields[k]; !dup {
			rec.keys = append(rec.keys, k)
		}
		rec.fields[k] = flatten(v)
	}
	rec.id = idOf(rec)
	return rec, nil
}

// flatten keeps scalars and renders nested values as compact JSON text.
func flatten(v any) any {
	switch v.(type) {
	case nil, string, float64, bool:
		return v
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimSpace(buf.String())
}

func csvRecord(line int, header, cells []string) (record, error) {
	if len(cells) > len(header) {
		return record{}, fmt.Errorf("line %d: %d cells for %d columns", line, len(cells), len(header))
	}
	rec := record{line: line, keys: header, fields: make(map[string]any, len(header))}
	for i, k := range header {
		if i < len(cells) {
			rec.fields[k] = cells[i]
		}
	}
	rec.id = idOf(rec)
	return rec, nil
}

// idOf takes the "id" field when present, else a line-based synthetic id.
func idOf(rec record) string {
	for _, k := range rec.keys {
		if !strings.EqualFold(k, "id") {
			continue
		}
		if s := strings.TrimSpace(model.FromAny(rec.fields[k]).String()); s != "" {
			return s
		}
	}
	return fmt.Sprintf("r%d", rec.line)
}

var errEmpty = errors.New("no records")

// text renders a raw field for type inference.
func text(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return model.FromAny(v).String()
}

// value converts a raw field into the column's type.
func value(t model.ColumnType, raw any) model.Value {
	if s, ok := raw.(string); ok {
		return model.ParseValue(t, s)
	}
	return model.Coerce(t, model.FromAny(raw))
}

package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"inspectgrid/internal/model"
)

// ToCSV writes the rows to path with a header of column ids.
func ToCSV(path string, cols []model.Column, rows []model.Row) error {
	if len(rows) == 0 {
		return errors.New("no rows")
	}
	return toFile(path, func(w io.Writer) error { return WriteCSV(w, cols, rows) })
}

// ToNDJSON writes one flat object per row.
func ToNDJSON(path string, cols []model.Column, rows []model.Row) error {
	return toFile(path, func(w io.Writer) error { return WriteNDJSON(w, cols, rows) })
}

func toFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("export %s: %w", path, err)
	}
	return f.Close()
}

// header puts id first unless a column already carries it.
func header(cols []model.Column) []string {
	out := []string{"id"}
	for _, c := range cols {
		if c.ID == "id" {
			out = out[:0]
			break
		}
	}
	for _, c := range cols {
		out = append(out, c.ID)
	}
	return out
}

func cell(r model.Row, key string) model.Value {
	if key == "id" {
		if v := r.Get("id"); v.IsDefined() {
			return v
		}
		return model.String(r.ID)
	}
	return r.Get(key)
}

func WriteCSV(w io.Writer, cols []model.Column, rows []model.Row) error {
	cw := csv.NewWriter(w)
	keys := header(cols)
	if err := cw.Write(keys); err != nil {
		return err
	}
	return writeRecords(cw, keys, rows)
}

// WriteCSVRows writes rows without a header, for appending to a file that
// already has one.
func WriteCSVRows(w io.Writer, cols []model.Column, rows []model.Row) error {
	return writeRecords(csv.NewWriter(w), header(cols), rows)
}

func writeRecords(cw *csv.Writer, keys []string, rows []model.Row) error {
	rec := make([]string, len(keys))
	for _, r := range rows {
		for i, k := range keys {
			rec[i] = cell(r, k).String()
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteNDJSON(w io.Writer, cols []model.Column, rows []model.Row) error {
	bw := bufio.NewWriter(w)
	keys := header(cols)
	for _, r := range rows {
		if err := writeObject(bw, keys, r); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// writeObject emits keys in column order; encoding/json would sort a map.
func writeObject(bw *bufio.Writer, keys []string, r model.Row) error {
	bw.WriteByte('{')
	first := true
	for _, k := range keys {
		v := cell(r, k)
		if v.IsNull() {
			continue
		}
		if !first {
			bw.WriteByte(',')
		}
		first = false
		kb, _ := json.Marshal(k)
		vb, err := json.Marshal(v)
		if err != nil {
			return err
		}
		bw.Write(kb)
		bw.WriteByte(':')
		bw.Write(vb)
	}
	_, err := bw.WriteString("}\n")
	return err
}

// WriteEdits appends edits to path as NDJSON, creating it if needed.
func WriteEdits(path string, edits []model.CellEdit) error {
	if len(edits) == 0 {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("edits: %w", err)
	}
	bw := bufio.NewWriter(f)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for _, e := range edits {
		if err := enc.Encode(e); err != nil {
			f.Close()
			return fmt.Errorf("edits: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("edits: %w", err)
	}
	return f.Close()
}

// Package source reads row datasets from CSV and NDJSON files, follows
// growing NDJSON files and provides demo data.
package source

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"inspectgrid/internal/model"
	"inspectgrid/internal/util/logx"
)

type Format string

const (
	FormatCSV    Format = "csv"
	FormatNDJSON Format = "ndjson"
)

// Dataset is an immutable load result. Callers must not mutate rows.
type Dataset struct {
	Columns []model.Column
	Rows    []model.Row
}

// DetectFormat picks the format from the extension, else sniffs the first
// non-blank byte.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return FormatCSV
	case ".ndjson", ".jsonl", ".json":
		return FormatNDJSON
	}
	f, err := os.Open(path)
	if err != nil {
		return FormatCSV
	}
	defer f.Close()
	br := bufio.NewReader(f)
	for {
		b, err := br.ReadByte()
		if err != nil {
			return FormatCSV
		}
		switch b {
		case ' ', '\t', '\r', '\n', 0xEF, 0xBB, 0xBF:
			continue
		case '{':
			return FormatNDJSON
		}
		return FormatCSV
	}
}

// Load reads the whole file. cols may be nil, in which case column types
// are inferred from the data.
func Load(path string, cols []model.Column) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	var ds Dataset
	switch DetectFormat(path) {
	case FormatNDJSON:
		ds, err = ReadNDJSON(f, cols)
	default:
		ds, err = ReadCSV(f, cols, delimiter(path))
	}
	if err != nil {
		return Dataset{}, fmt.Errorf("read %s: %w", path, err)
	}
	logx.Infof("source: loaded %d rows, %d columns from %s", len(ds.Rows), len(ds.Columns), path)
	return ds, nil
}

func delimiter(path string) rune {
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}
	return ','
}

func ReadCSV(r io.Reader, cols []model.Column, comma rune) (Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Dataset{}, errEmpty
	}
	if err != nil {
		return Dataset{}, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
	b := newBuilder(cols)
	b.declare(header)
	line := 1
	for {
		cells, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return Dataset{}, err
		}
		if blank(cells) {
			continue
		}
		rec, err := csvRecord(line, header, cells)
		if err != nil {
			logx.Warnf("source: %v", err)
			continue
		}
		b.add(rec)
	}
	return b.build(), nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// ReadNDJSON reads one flat JSON object per line. Malformed lines are
// skipped with a warning.
func ReadNDJSON(r io.Reader, cols []model.Column) (Dataset, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	b := newBuilder(cols)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		rec, err := parseJSONLine(line, text)
		if err != nil {
			logx.Warnf("source: %v", err)
			continue
		}
		b.add(rec)
	}
	if err := sc.Err(); err != nil {
		return Dataset{}, err
	}
	if len(b.recs) == 0 {
		return Dataset{}, errEmpty
	}
	return b.build(), nil
}

package source

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"inspectgrid/internal/model"
)

func TestReadCSVInfersTypes(t *testing.T) {
	in := "id,site,floors,due,passed\n1,חיפה,12,2024-05-01,כן\n2,אילת,\"1,200\",2024-06-01,לא\n\n3,נתניה,,2024-07-01,כן\n"
	ds, err := ReadCSV(strings.NewReader(in), nil, ',')
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(ds.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(ds.Rows))
	}
	types := map[string]model.ColumnType{}
	for _, c := range ds.Columns {
		types[c.ID] = c.Type
	}
	if types["floors"] != model.TypeNumber || types["due"] != model.TypeDate || types["passed"] != model.TypeBoolean {
		t.Fatalf("types = %v", types)
	}
	if v := ds.Rows[1].Get("floors"); v.Kind != model.KindNumber || v.Num != 1200 {
		t.Fatalf("floors = %+v", v)
	}
	if !ds.Rows[2].Get("floors").IsNull() {
		t.Fatalf("blank cell should be null")
	}
	if ds.Rows[0].ID != "1" {
		t.Fatalf("id = %q", ds.Rows[0].ID)
	}
}

func TestReadNDJSONKeepsKeyOrderAndSyntheticIDs(t *testing.T) {
	in := `{"site":"חיפה","floors":3,"meta":{"a":1}}
not json
{"site":"אילת","floors":4}
`
	ds, err := ReadNDJSON(strings.NewReader(in), nil)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(ds.Rows) != 2 || ds.Rows[0].ID != "r1" || ds.Rows[1].ID != "r3" {
		t.Fatalf("rows = %+v", ds.Rows)
	}
	var order []string
	for _, c := range ds.Columns {
		order = append(order, c.ID)
	}
	if strings.Join(order, ",") != "site,floors,meta" {
		t.Fatalf("column order = %v", order)
	}
	if got := ds.Rows[0].Get("meta").String(); got != `{"a":1}` {
		t.Fatalf("nested = %q", got)
	}
}

func TestReadNDJSONDuplicateIDReplaces(t *testing.T) {
	in := "{\"id\":\"a\",\"n\":1}\n{\"id\":\"b\",\"n\":2}\n{\"id\":\"a\",\"n\":3}\n"
	ds, err := ReadNDJSON(strings.NewReader(in), nil)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(ds.Rows) != 2 || ds.Rows[0].Get("n").Num != 3 {
		t.Fatalf("rows = %+v", ds.Rows)
	}
}

func TestLoadWithColumnsFile(t *testing.T) {
	dir := t.TempDir()
	colsPath := filepath.Join(dir, "columns.toml")
	toml := `[[column]]
id = "site"
label = "אתר"
type = "string"
editable = true

[[column]]
id = "floors"
label = "קומות"
type = "number"
`
	if err := os.WriteFile(colsPath, []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}
	cols, err := LoadColumns(colsPath)
	if err != nil {
		t.Fatalf("columns: %v", err)
	}
	dataPath := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(dataPath, []byte("site,floors,extra\nחיפה,7,x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ds, err := Load(dataPath, cols)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(ds.Columns) != 3 || ds.Columns[0].Label != "אתר" || ds.Columns[2].ID != "extra" {
		t.Fatalf("columns = %+v", ds.Columns)
	}
	if ds.Rows[0].ID != "r2" || ds.Rows[0].Get("floors").Num != 7 {
		t.Fatalf("row = %+v", ds.Rows[0])
	}
}

func TestLoadColumnsRejectsUnknownType(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cols.json")
	if err := os.WriteFile(p, []byte(`[{"id":"a","type":"money"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadColumns(p); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestDetectFormatSniffs(t *testing.T) {
	p := filepath.Join(t.TempDir(), "data.txt")
	if err := os.WriteFile(p, []byte("\n  {\"a\":1}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if DetectFormat(p) != FormatNDJSON {
		t.Fatalf("expected ndjson")
	}
}

func TestDemoIsDeterministic(t *testing.T) {
	a, b := Demo(20), Demo(20)
	for i := range a.Rows {
		if a.Rows[i].Get("site") != b.Rows[i].Get("site") {
			t.Fatalf("demo row %d differs", i)
		}
	}
	if a.Rows[0].ID != "INS-00001" {
		t.Fatalf("id = %q", a.Rows[0].ID)
	}
}

func TestFollowDeliversSnapshots(t *testing.T) {
	p := filepath.Join(t.TempDir(), "live.ndjson")
	if err := os.WriteFile(p, []byte("{\"id\":\"1\",\"status\":\"ממתין\"}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	out, _ := Follow(ctx, p, FollowOptions{Interval: 20 * time.Millisecond, Poll: true})
	first := <-out
	if len(first.Rows) != 1 {
		t.Fatalf("first snapshot rows = %d", len(first.Rows))
	}
	f, err := os.OpenFile(p, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = f.WriteString("{\"id\":\"1\",\"status\":\"הושלם\"}\n{\"id\":\"2\",\"status\":\"ממתין\"}\n")
	f.Close()
	for {
		select {
		case ds := <-out:
			if len(ds.Rows) == 2 && ds.Rows[0].Get("status").Str == "הושלם" {
				if first.Rows[0].Get("status").Str != "ממתין" {
					t.Fatalf("earlier snapshot mutated")
				}
				return
			}
		case <-ctx.Done():
			t.Fatalf("timed out waiting for follow snapshot")
		}
	}
}

func TestFollowClosesOnCancelWithUnreadSnapshots(t *testing.T) {
	p := filepath.Join(t.TempDir(), "live.ndjson")
	if err := os.WriteFile(p, []byte("{\"id\":\"1\",\"status\":\"ממתין\"}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	out, errs := Follow(ctx, p, FollowOptions{Interval: 10 * time.Millisecond, Poll: true})
	f, err := os.OpenFile(p, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := 2; i < 6; i++ {
		_, _ = f.WriteString("{\"id\":\"" + strconv.Itoa(i) + "\",\"status\":\"ממתין\"}\n")
		time.Sleep(30 * time.Millisecond)
	}
	f.Close()
	cancel()
	deadline := time.After(5 * time.Second)
	for out != nil || errs != nil {
		select {
		case _, ok := <-out:
			if !ok {
				out = nil
			}
		case _, ok := <-errs:
			if !ok {
				errs = nil
			}
		case <-deadline:
			t.Fatalf("follow did not close its channels after cancel")
		}
	}
}

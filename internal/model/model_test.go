package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestRingEvictsOldest(t *testing.T) {
	r := NewRing[int](3)
	for i := 1; i <= 5; i++ {
		r.Push(i)
	}
	got := r.Snapshot()
	want := []int{3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("snapshot[%d] = %d, want %d", i, got[i], want[i])
		}
	}
	if r.Dropped() != 2 {
		t.Fatalf("dropped = %d, want 2", r.Dropped())
	}
}

func TestRingPopNewest(t *testing.T) {
	r := NewRing[string](2)
	r.Push("a")
	r.Push("b")
	r.Push("c")
	if v, ok := r.Pop(); !ok || v != "c" {
		t.Fatalf("pop = %q,%v want c", v, ok)
	}
	if v, ok := r.Pop(); !ok || v != "b" {
		t.Fatalf("pop = %q,%v want b", v, ok)
	}
	if _, ok := r.Pop(); ok {
		t.Fatalf("pop on empty ring succeeded")
	}
	r.Push("d")
	if v, _ := r.Peek(); v != "d" {
		t.Fatalf("peek = %q, want d", v)
	}
}

func TestRingResizeKeepsNewest(t *testing.T) {
	r := NewRing[int](4)
	for i := 1; i <= 4; i++ {
		r.Push(i)
	}
	r.Resize(2)
	got := r.Snapshot()
	if len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Fatalf("after resize = %v, want [3 4]", got)
	}
}

func TestParseValue(t *testing.T) {
	cases := []struct {
		typ  ColumnType
		raw  string
		kind ValueKind
	}{
		{TypeNumber, "1,250.5", KindNumber},
		{TypeNumber, "abc", KindString},
		{TypeBoolean, "כן", KindBool},
		{TypeBoolean, "false", KindBool},
		{TypeDate, "2024-03-01", KindDate},
		{TypeDate, "01/03/2024", KindDate},
		{TypeString, "  ", KindNull},
		{TypeEmail, "a@b.co", KindString},
	}
	for _, c := range cases {
		if got := ParseValue(c.typ, c.raw); got.Kind != c.kind {
			t.Errorf("ParseValue(%s, %q).Kind = %v, want %v", c.typ, c.raw, got.Kind, c.kind)
		}
	}
}

func TestEqualIsTypeAware(t *testing.T) {
	if !Equal(TypeString, String(" מגדל "), String("מגדל")) {
		t.Fatalf("trimmed strings should be equal")
	}
	if !Equal(TypeNumber, String("30"), Number(30)) {
		t.Fatalf("numeric text should equal number")
	}
	if !Equal(TypeString, Null(), String("")) {
		t.Fatalf("null and blank should be equal")
	}
	if Equal(TypeNumber, Number(1), Null()) {
		t.Fatalf("number should not equal null")
	}
	d1 := Date(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	if !Equal(TypeDate, d1, String("2024-01-02")) {
		t.Fatalf("date text should equal date")
	}
}

func TestCompareNullsFirst(t *testing.T) {
	if Compare(TypeNumber, Null(), Number(-100), nil) >= 0 {
		t.Fatalf("null should sort before numbers")
	}
	if Compare(TypeString, String("a"), Null(), nil) <= 0 {
		t.Fatalf("defined should sort after null")
	}
	if Compare(TypeBoolean, Bool(false), Bool(true), nil) >= 0 {
		t.Fatalf("false should sort before true")
	}
	if Compare(TypeNumber, String("9"), String("10"), nil) >= 0 {
		t.Fatalf("numeric strings should compare numerically")
	}
}

func TestValueJSON(t *testing.T) {
	var row Row
	if err := json.Unmarshal([]byte(`{"id":"1","fields":{"n":3,"s":"x","b":true,"z":null}}`), &row); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if row.Get("n").Kind != KindNumber || row.Get("b").Kind != KindBool || !row.Get("z").IsNull() {
		t.Fatalf("unexpected kinds: %+v", row.Fields)
	}
	b, err := json.Marshal(row.Get("s"))
	if err != nil || string(b) != `"x"` {
		t.Fatalf("marshal = %s, %v", b, err)
	}
}

func TestRowWithCopies(t *testing.T) {
	r := Row{ID: "1", Fields: map[string]Value{"name": String("a")}}
	r2 := r.With("name", String("b"))
	if r.Get("name").Str != "a" {
		t.Fatalf("original row mutated")
	}
	if r2.ID != "1" || r2.Get("name").Str != "b" {
		t.Fatalf("edited row = %+v", r2)
	}
}

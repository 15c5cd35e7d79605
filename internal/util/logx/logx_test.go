package logx

import (
	"strings"
	"testing"
)

func TestLinesKeepsRecords(t *testing.T) {
	SetLevel(Debug)
	defer SetLevel(Info)
	Infof("store: loaded %d rows", 3)
	Debugf("pipeline: view=%d", 2)
	dump := Dump()
	if !strings.Contains(dump, "store: loaded 3 rows") {
		t.Fatalf("missing info line in %q", dump)
	}
	if !strings.Contains(dump, "DEBUG") {
		t.Fatalf("missing debug level in %q", dump)
	}
}

func TestLevelFiltersBelow(t *testing.T) {
	SetLevel(Warn)
	defer SetLevel(Info)
	Infof("hidden-marker-%d", 42)
	for _, l := range Lines() {
		if strings.Contains(l, "hidden-marker-42") {
			t.Fatalf("info line logged at warn level: %q", l)
		}
	}
}

func TestTailSinkBounded(t *testing.T) {
	s := &tailSink{max: 2}
	_, _ = s.Write([]byte("a\nb\n"))
	_, _ = s.Write([]byte("c\n"))
	got := s.lines()
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Fatalf("lines = %v, want [b c]", got)
	}
}

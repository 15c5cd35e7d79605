package filter

import (
	"testing"

	"inspectgrid/internal/model"
)

var testColumns = []model.Column{
	{ID: "name", Label: "שם", Type: model.TypeString, Editable: true},
	{ID: "status", Label: "סטטוס", Type: model.TypeString},
	{ID: "floors", Label: "קומות", Type: model.TypeNumber},
	{ID: "due", Label: "תאריך יעד", Type: model.TypeDate},
}

func row(id string, kv ...any) model.Row {
	r := model.Row{ID: id, Fields: map[string]model.Value{}}
	for i := 0; i+1 < len(kv); i += 2 {
		r.Fields[kv[i].(string)] = model.FromAny(kv[i+1])
	}
	return r
}

func TestOperators(t *testing.T) {
	r := row("1", "name", "מגדל צפון", "status", "Pending", "floors", 12.0, "due", "2024-05-01")
	cases := []struct {
		name string
		cond model.FilterCondition
		want bool
	}{
		{"equals folds case", model.FilterCondition{Column: "status", Operator: model.OpEquals, Value: model.String("pending")}, true},
		{"equals miss", model.FilterCondition{Column: "status", Operator: model.OpEquals, Value: model.String("done")}, false},
		{"contains hebrew", model.FilterCondition{Column: "name", Operator: model.OpContains, Value: model.String("צפון")}, true},
		{"startsWith", model.FilterCondition{Column: "name", Operator: model.OpStartsWith, Value: model.String("מגדל")}, true},
		{"endsWith", model.FilterCondition{Column: "name", Operator: model.OpEndsWith, Value: model.String("דרום")}, false},
		{"greaterThan numeric", model.FilterCondition{Column: "floors", Operator: model.OpGreaterThan, Value: model.String("9")}, true},
		{"lessThan numeric", model.FilterCondition{Column: "floors", Operator: model.OpLessThan, Value: model.Number(12)}, false},
		{"between inclusive", model.FilterCondition{Column: "floors", Operator: model.OpBetween, Value: model.Number(12), Value2: model.Number(20)}, true},
		{"between dates", model.FilterCondition{Column: "due", Operator: model.OpBetween, Value: model.String("2024-01-01"), Value2: model.String("2024-12-31")}, true},
		{"between open upper bound", model.FilterCondition{Column: "floors", Operator: model.OpBetween, Value: model.Number(10)}, true},
		{"between open lower bound", model.FilterCondition{Column: "floors", Operator: model.OpBetween, Value2: model.Number(11)}, false},
		{"in set", model.FilterCondition{Column: "status", Operator: model.OpIn, Set: []model.Value{model.String("done"), model.String("PENDING")}}, true},
		{"isEmpty on missing", model.FilterCondition{Column: "notes", Operator: model.OpIsEmpty}, true},
		{"isNotEmpty", model.FilterCondition{Column: "name", Operator: model.OpIsNotEmpty}, true},
		{"unknown operator passes", model.FilterCondition{Column: "name", Operator: "fuzzy", Value: model.String("zzz")}, true},
		{"expr true", model.FilterCondition{Operator: model.OpExpr, Expr: "floors > 10 && status == 'Pending'"}, true},
		{"expr false", model.FilterCondition{Operator: model.OpExpr, Expr: "floors < 10"}, false},
		{"expr malformed passes", model.FilterCondition{Operator: model.OpExpr, Expr: "floors >>> ("}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ev := NewEvaluator(testColumns, []model.FilterCondition{c.cond}, model.SearchConfig{})
			if got := ev.Match(r); got != c.want {
				t.Fatalf("Match = %v, want %v", got, c.want)
			}
		})
	}
}

func TestGreaterThanSkipsNull(t *testing.T) {
	ev := NewEvaluator(testColumns, []model.FilterCondition{{Column: "floors", Operator: model.OpLessThan, Value: model.Number(5)}}, model.SearchConfig{})
	if ev.Match(row("1", "name", "x")) {
		t.Fatalf("null value should not satisfy lessThan")
	}
}

func TestFiltersCombineWithAnd(t *testing.T) {
	filters := []model.FilterCondition{
		{ID: "a", Column: "status", Operator: model.OpEquals, Value: model.String("pending")},
		{ID: "b", Column: "floors", Operator: model.OpGreaterThan, Value: model.Number(3)},
	}
	ev := NewEvaluator(testColumns, filters, model.SearchConfig{})
	if !ev.Match(row("1", "status", "pending", "floors", 4.0)) {
		t.Fatalf("row satisfying both filters rejected")
	}
	if ev.Match(row("2", "status", "pending", "floors", 2.0)) {
		t.Fatalf("row failing one filter accepted")
	}
}

func TestSearch(t *testing.T) {
	r := row("1", "name", "Tower A", "status", "בדיקה חוזרת")
	cases := []struct {
		name string
		cfg  model.SearchConfig
		want bool
	}{
		{"empty query", model.SearchConfig{}, true},
		{"case insensitive", model.SearchConfig{Query: "tower", Columns: []string{"name"}}, true},
		{"case sensitive miss", model.SearchConfig{Query: "tower", Columns: []string{"name"}, CaseSensitive: true}, false},
		{"out of scope", model.SearchConfig{Query: "Tower", Columns: []string{"status"}}, false},
		{"all columns when unscoped", model.SearchConfig{Query: "חוזרת"}, true},
		{"whole word hebrew", model.SearchConfig{Query: "בדיקה", WholeWord: true}, true},
		{"whole word partial", model.SearchConfig{Query: "בדיק", WholeWord: true}, false},
		{"regex", model.SearchConfig{Query: `^Tow\w+ [A-C]$`, Regex: true, Columns: []string{"name"}}, true},
		{"malformed regex matches nothing", model.SearchConfig{Query: `Tower(`, Regex: true}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ev := NewEvaluator(testColumns, nil, c.cfg)
			if got := ev.Match(r); got != c.want {
				t.Fatalf("Match = %v, want %v", got, c.want)
			}
		})
	}
}

func TestMalformedRegexReported(t *testing.T) {
	ev := NewEvaluator(testColumns, nil, model.SearchConfig{Query: "[", Regex: true})
	if ev.SearchErr() == nil {
		t.Fatalf("expected search error for malformed pattern")
	}
}

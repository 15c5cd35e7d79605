package ui

import (
	"errors"
	"fmt"
	"strings"

	"inspectgrid/internal/model"
)

// parseQuickFilter reads the one-line filter syntax typed for a column:
//
//	>v <v =v         comparisons
//	~v ^v $v         contains, starts with, ends with
//	a..b             between, inclusive
//	in a,b,c         any of
//	empty !empty     blank checks
//	expr <formula>   govaluate expression over the row
//
// Anything else is a contains match on text columns and equality on the
// rest.
func parseQuickFilter(col model.Column, input string) (model.FilterCondition, error) {
	s := strings.TrimSpace(input)
	f := model.FilterCondition{ID: "col:" + col.ID, Column: col.ID}
	if s == "" {
		return f, errors.New("empty filter")
	}
	parse := func(raw string) model.Value { return model.ParseValue(col.Type, strings.TrimSpace(raw)) }
	switch {
	case s == "empty":
		f.Operator = model.OpIsEmpty
	case s == "!empty":
		f.Operator = model.OpIsNotEmpty
	case strings.HasPrefix(s, "expr "):
		f.ID = "expr:" + col.ID
		f.Operator = model.OpExpr
		f.Expr = strings.TrimSpace(s[len("expr "):])
	case strings.HasPrefix(s, "in "):
		f.Operator = model.OpIn
		for _, part := range strings.Split(s[len("in "):], ",") {
			if strings.TrimSpace(part) != "" {
				f.Set = append(f.Set, parse(part))
			}
		}
		if len(f.Set) == 0 {
			return f, errors.New("in: no values")
		}
	case strings.HasPrefix(s, ">"):
		f.Operator, f.Value = model.OpGreaterThan, parse(s[1:])
	case strings.HasPrefix(s, "<"):
		f.Operator, f.Value = model.OpLessThan, parse(s[1:])
	case strings.HasPrefix(s, "="):
		f.Operator, f.Value = model.OpEquals, parse(s[1:])
	case strings.HasPrefix(s, "~"):
		f.Operator, f.Value = model.OpContains, model.String(strings.TrimSpace(s[1:]))
	case strings.HasPrefix(s, "^"):
		f.Operator, f.Value = model.OpStartsWith, model.String(strings.TrimSpace(s[1:]))
	case strings.HasPrefix(s, "$"):
		f.Operator, f.Value = model.OpEndsWith, model.String(strings.TrimSpace(s[1:]))
	case strings.Contains(s, ".."):
		lo, hi, _ := strings.Cut(s, "..")
		if strings.TrimSpace(lo) == "" || strings.TrimSpace(hi) == "" {
			return f, fmt.Errorf("between needs both bounds: %q", s)
		}
		f.Operator, f.Value, f.Value2 = model.OpBetween, parse(lo), parse(hi)
	default:
		switch col.Type {
		case model.TypeString, model.TypeEmail, model.TypeURL:
			f.Operator, f.Value = model.OpContains, model.String(s)
		default:
			f.Operator, f.Value = model.OpEquals, parse(s)
		}
	}
	return f, nil
}

func describeFilter(f model.FilterCondition) string {
	switch f.Operator {
	case model.OpIsEmpty, model.OpIsNotEmpty:
		return fmt.Sprintf("%s %s", f.Column, f.Operator)
	case model.OpExpr:
		return "expr " + f.Expr
	case model.OpBetween:
		return fmt.Sprintf("%s between %s..%s", f.Column, f.Value, f.Value2)
	case model.OpIn:
		parts := make([]string, len(f.Set))
		for i, v := range f.Set {
			parts[i] = v.String()
		}
		return fmt.Sprintf("%s in %s", f.Column, strings.Join(parts, ","))
	}
	return fmt.Sprintf("%s %s %s", f.Column, f.Operator, f.Value)
}

package filter

import (
	"regexp"
	"strings"
	"time"

	"github.com/Knetic/govaluate"

	"inspectgrid/internal/model"
	"inspectgrid/internal/util/logx"
)

// Evaluator applies a set of filter conditions (AND) and a search config
// (OR across scoped columns) to rows. Build one per pipeline run; patterns
// and expressions are compiled once here.
type Evaluator struct {
	columns map[string]model.Column
	conds   []condition
	strcmp  func(a, b string) int

	// search
	query     string
	fold      bool
	scope     []string
	re        *regexp.Regexp
	searchErr error
}

type condition struct {
	model.FilterCondition
	typ  model.ColumnType
	expr *govaluate.EvaluableExpression
	pass bool // condition cannot be evaluated; row is retained
}

// wordBoundary delimits words by Unicode letters and digits so Hebrew
// words are recognised (regexp's \b is ASCII only).
const (
	wordStart = `(?:^|[^\p{L}\p{N}_])`
	wordEnd   = `(?:$|[^\p{L}\p{N}_])`
)

func NewEvaluator(columns []model.Column, filters []model.FilterCondition, search model.SearchConfig) *Evaluator {
	e := &Evaluator{columns: make(map[string]model.Column, len(columns)), strcmp: model.NewCollator()}
	for _, c := range columns {
		e.columns[c.ID] = c
	}
	for _, f := range filters {
		c := condition{FilterCondition: f, typ: e.typeOf(f.Column)}
		switch f.Operator {
		case model.OpEquals, model.OpContains, model.OpStartsWith, model.OpEndsWith,
			model.OpGreaterThan, model.OpLessThan, model.OpBetween, model.OpIn,
			model.OpIsEmpty, model.OpIsNotEmpty:
		case model.OpExpr:
			expr, err := govaluate.NewEvaluableExpression(f.Expr)
			if err != nil {
				logx.Warnf("filter: expression %q ignored: %v", f.Expr, err)
				c.pass = true
			}
			c.expr = expr
		default:
			logx.Debugf("filter: unrecognized operator %q on %s, retaining rows", f.Operator, f.Column)
			c.pass = true
		}
		e.conds = append(e.conds, c)
	}
	e.compileSearch(search)
	return e
}

func (e *Evaluator) typeOf(column string) model.ColumnType {
	if c, ok := e.columns[column]; ok && c.Type.Known() {
		return c.Type
	}
	return model.TypeString
}

func (e *Evaluator) compileSearch(s model.SearchConfig) {
	e.query = s.Query
	if e.query == "" {
		return
	}
	e.fold = !s.CaseSensitive
	if len(s.Columns) > 0 {
		e.scope = append([]string(nil), s.Columns...)
	} else {
		for id := range e.columns {
			e.scope = append(e.scope, id)
		}
	}
	if !s.Regex && !s.WholeWord {
		if e.fold {
			e.query = strings.ToLower(e.query)
		}
		return
	}
	pattern := s.Query
	if !s.Regex {
		pattern = regexp.QuoteMeta(pattern)
	}
	if s.WholeWord {
		pattern = wordStart + "(?:" + pattern + ")" + wordEnd
	}
	if e.fold {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		logx.Warnf("search: invalid pattern %q: %v", s.Query, err)
		e.searchErr = err
		return
	}
	e.re = re
}

// SearchErr reports a malformed search pattern. While set, search matches
// nothing.
func (e *Evaluator) SearchErr() error { return e.searchErr }

func (e *Evaluator) Match(row model.Row) bool {
	return e.MatchFilters(row) && e.MatchSearch(row)
}

func (e *Evaluator) MatchFilters(row model.Row) bool {
	for i := range e.conds {
		if !e.matchCondition(&e.conds[i], row) {
			return false
		}
	}
	return true
}

func (e *Evaluator) MatchSearch(row model.Row) bool {
	if e.query == "" {
		return true
	}
	if e.searchErr != nil {
		return false
	}
	for _, col := range e.scope {
		text := row.Get(col).String()
		if text == "" {
			continue
		}
		if e.re != nil {
			if e.re.MatchString(text) {
				return true
			}
			continue
		}
		if e.fold {
			text = strings.ToLower(text)
		}
		if strings.Contains(text, e.query) {
			return true
		}
	}
	return false
}

func (e *Evaluator) matchCondition(c *condition, row model.Row) bool {
	if c.pass {
		return true
	}
	v := row.Get(c.Column)
	switch c.Operator {
	case model.OpIsEmpty:
		return v.IsEmpty()
	case model.OpIsNotEmpty:
		return !v.IsEmpty()
	case model.OpEquals:
		return e.equal(c.typ, v, c.Value)
	case model.OpContains:
		return strings.Contains(lower(v), lower(c.Value))
	case model.OpStartsWith:
		return strings.HasPrefix(lower(v), lower(c.Value))
	case model.OpEndsWith:
		return strings.HasSuffix(lower(v), lower(c.Value))
	case model.OpGreaterThan:
		return v.IsDefined() && model.Compare(c.typ, v, c.Value, e.strcmp) > 0
	case model.OpLessThan:
		return v.IsDefined() && model.Compare(c.typ, v, c.Value, e.strcmp) < 0
	case model.OpBetween:
		// a null bound leaves that side open
		return v.IsDefined() &&
			(c.Value.IsEmpty() || model.Compare(c.typ, v, c.Value, e.strcmp) >= 0) &&
			(c.Value2.IsEmpty() || model.Compare(c.typ, v, c.Value2, e.strcmp) <= 0)
	case model.OpIn:
		for _, member := range c.Set {
			if e.equal(c.typ, v, member) {
				return true
			}
		}
		return false
	case model.OpExpr:
		return e.evalExpr(c, row)
	}
	return true
}

// equal compares text columns case-insensitively and everything else with
// the type-aware model.Equal.
func (e *Evaluator) equal(t model.ColumnType, a, b model.Value) bool {
	switch t {
	case model.TypeString, model.TypeEmail, model.TypeURL:
		if a.IsEmpty() || b.IsEmpty() {
			return a.IsEmpty() && b.IsEmpty()
		}
		return strings.EqualFold(strings.TrimSpace(a.String()), strings.TrimSpace(b.String()))
	}
	return model.Equal(t, a, b)
}

func lower(v model.Value) string { return strings.ToLower(v.String()) }

func (e *Evaluator) evalExpr(c *condition, row model.Row) bool {
	params := make(map[string]any, len(row.Fields)+1)
	for k, v := range row.Fields {
		v = model.Coerce(e.typeOf(k), v)
		switch v.Kind {
		case model.KindDate:
			params[k] = v.Time.Format(time.RFC3339)
		default:
			params[k] = v.Any()
		}
	}
	params["id"] = row.ID
	result, err := c.expr.Evaluate(params)
	if err != nil {
		return false
	}
	b, ok := result.(bool)
	return ok && b
}

package model

import (
	"sort"
	"time"
)

type ColumnType string

const (
	TypeString  ColumnType = "string"
	TypeNumber  ColumnType = "number"
	TypeBoolean ColumnType = "boolean"
	TypeDate    ColumnType = "date"
	TypeEmail   ColumnType = "email"
	TypeURL     ColumnType = "url"
)

// Known reports whether t is one of the declared column types.
func (t ColumnType) Known() bool {
	switch t {
	case TypeString, TypeNumber, TypeBoolean, TypeDate, TypeEmail, TypeURL:
		return true
	}
	return false
}

type Column struct {
	ID       string     `json:"id" toml:"id"`
	Label    string     `json:"label" toml:"label"`
	Type     ColumnType `json:"type" toml:"type"`
	Editable bool       `json:"editable" toml:"editable"`
	Width    int        `json:"width,omitempty" toml:"width"` // 0 = auto
}

// Title returns the label, falling back to the id.
func (c Column) Title() string {
	if c.Label != "" {
		return c.Label
	}
	return c.ID
}

// Row is a record keyed by a stable id. Rows are treated as immutable;
// use With to derive an edited copy.
type Row struct {
	ID     string           `json:"id"`
	Fields map[string]Value `json:"fields"`
}

func (r Row) Get(column string) Value {
	if r.Fields == nil {
		return Null()
	}
	return r.Fields[column]
}

// With returns a copy of r whose column holds v. r itself is untouched.
func (r Row) With(column string, v Value) Row {
	fields := make(map[string]Value, len(r.Fields)+1)
	for k, fv := range r.Fields {
		fields[k] = fv
	}
	fields[column] = v
	return Row{ID: r.ID, Fields: fields}
}

type Operator string

const (
	OpEquals      Operator = "equals"
	OpContains    Operator = "contains"
	OpStartsWith  Operator = "startsWith"
	OpEndsWith    Operator = "endsWith"
	OpGreaterThan Operator = "greaterThan"
	OpLessThan    Operator = "lessThan"
	OpBetween     Operator = "between"
	OpIn          Operator = "in"
	OpIsEmpty     Operator = "isEmpty"
	OpIsNotEmpty  Operator = "isNotEmpty"
	// OpExpr evaluates a govaluate expression over the row's fields.
	OpExpr Operator = "expr"
)

type FilterCondition struct {
	ID       string   `json:"id"`
	Column   string   `json:"column"`
	Operator Operator `json:"operator"`
	Value    Value    `json:"value"`
	Value2   Value    `json:"value2"`         // upper bound for between
	Set      []Value  `json:"set,omitempty"`  // members for in
	Expr     string   `json:"expr,omitempty"` // expression for expr
}

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
	// NoDirection removes a column from the sort list.
	NoDirection Direction = ""
)

type SortKey struct {
	Column    string    `json:"column"`
	Direction Direction `json:"direction"`
}

type SearchConfig struct {
	Query         string   `json:"query"`
	Columns       []string `json:"columns"` // empty = every column
	CaseSensitive bool     `json:"caseSensitive"`
	WholeWord     bool     `json:"wholeWord"`
	Regex         bool     `json:"regex"`
}

type Pagination struct {
	Page     int `json:"page"` // 1-based
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
}

// Pages returns the number of pages needed for Total rows.
func (p Pagination) Pages() int {
	if p.PageSize <= 0 || p.Total <= 0 {
		return 1
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

type Selection struct {
	Rows      map[string]struct{}
	SelectAll bool
}

// IDs returns the selected ids in sorted order.
func (s Selection) IDs() []string {
	out := make([]string, 0, len(s.Rows))
	for id := range s.Rows {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s Selection) Has(id string) bool {
	_, ok := s.Rows[id]
	return ok
}

// CellEdit is the unit of history.
type CellEdit struct {
	RowID     string    `json:"rowId"`
	ColumnID  string    `json:"columnId"`
	Value     Value     `json:"value"`
	OldValue  Value     `json:"oldValue"`
	Timestamp time.Time `json:"timestamp"`
}

// Inverse swaps the new and old values.
func (e CellEdit) Inverse() CellEdit {
	e.Value, e.OldValue = e.OldValue, e.Value
	return e
}

type CellRef struct {
	RowID    string
	ColumnID string
}

type EditingState struct {
	Pending    []CellEdit
	ActiveCell *CellRef
}

type UndoRedoState struct {
	Undo     []CellEdit
	Redo     []CellEdit
	MaxDepth int
}

// ActiveCell holds view-relative coordinates of the keyboard cursor.
type ActiveCell struct {
	RowIndex    int
	ColumnIndex int
}

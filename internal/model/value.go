package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindNumber
	KindBool
	KindDate
)

// Value is a loosely typed cell value. The zero Value is null.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
	Time time.Time
}

func Null() Value           { return Value{} }
func String(s string) Value  { return Value{Kind: KindString, Str: s} }
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }
func Bool(b bool) Value      { return Value{Kind: KindBool, Bool: b} }
func Date(t time.Time) Value { return Value{Kind: KindDate, Time: t} }

func (v Value) IsNull() bool    { return v.Kind == KindNull }
func (v Value) IsDefined() bool { return v.Kind != KindNull }

// IsEmpty reports null or blank text.
func (v Value) IsEmpty() bool {
	return v.Kind == KindNull || (v.Kind == KindString && strings.TrimSpace(v.Str) == "")
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"02.01.2006",
}

func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindDate:
		if h, m, s := v.Time.Clock(); h == 0 && m == 0 && s == 0 && v.Time.Nanosecond() == 0 {
			return v.Time.Format("2006-01-02")
		}
		return v.Time.Format(time.RFC3339)
	}
	return ""
}

// Float returns the numeric reading of v; booleans coerce to 0/1.
func (v Value) Float() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Num, true
	case KindBool:
		if v.Bool {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// Any returns v as a plain Go value (nil, string, float64, bool, time.Time).
func (v Value) Any() any {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return v.Num
	case KindBool:
		return v.Bool
	case KindDate:
		return v.Time
	}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.Num)
	case KindBool:
		return json.Marshal(v.Bool)
	case KindString, KindDate:
		return json.Marshal(v.String())
	}
	return []byte("null"), nil
}

func (v *Value) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*v = FromAny(raw)
	return nil
}

// FromAny converts decoded JSON/TOML scalars into a Value.
func FromAny(raw any) Value {
	switch t := raw.(type) {
	case nil:
		return Null()
	case string:
		return String(t)
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case bool:
		return Bool(t)
	case time.Time:
		return Date(t)
	case Value:
		return t
	default:
		b, _ := json.Marshal(t)
		return String(string(b))
	}
}

// ParseValue reads raw text as a value of column type t. Blank text is null;
// text that does not parse as t stays a string.
func ParseValue(t ColumnType, raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Null()
	}
	switch t {
	case TypeNumber:
		if n, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64); err == nil {
			return Number(n)
		}
	case TypeBoolean:
		if b, ok := parseBool(s); ok {
			return Bool(b)
		}
	case TypeDate:
		if ts, ok := parseDate(s); ok {
			return Date(ts)
		}
	}
	return String(raw)
}

// Coerce converts string values into t when they parse; other kinds pass.
func Coerce(t ColumnType, v Value) Value {
	if v.Kind != KindString {
		return v
	}
	switch t {
	case TypeNumber, TypeBoolean, TypeDate:
		return ParseValue(t, v.Str)
	}
	return v
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "y", "v", "כן":
		return true, true
	case "false", "0", "no", "n", "x", "לא":
		return false, true
	}
	return false, false
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// Equal is the type-aware equality used to detect no-op edits: numbers
// compare numerically, dates by instant, everything else as trimmed text.
func Equal(t ColumnType, a, b Value) bool {
	a, b = Coerce(t, a), Coerce(t, b)
	if a.IsEmpty() || b.IsEmpty() {
		return a.IsEmpty() && b.IsEmpty()
	}
	switch t {
	case TypeNumber, TypeBoolean:
		x, okx := a.Float()
		y, oky := b.Float()
		if okx && oky {
			return x == y
		}
	case TypeDate:
		if a.Kind == KindDate && b.Kind == KindDate {
			return a.Time.Equal(b.Time)
		}
	}
	return strings.TrimSpace(a.String()) == strings.TrimSpace(b.String())
}

// Compare orders a and b for column type t. Null sorts before any defined
// value. strcmp orders text; nil means byte order.
func Compare(t ColumnType, a, b Value, strcmp func(x, y string) int) int {
	switch {
	case a.IsNull() && b.IsNull():
		return 0
	case a.IsNull():
		return -1
	case b.IsNull():
		return 1
	}
	a, b = Coerce(t, a), Coerce(t, b)
	switch t {
	case TypeNumber, TypeBoolean:
		x, okx := a.Float()
		y, oky := b.Float()
		if okx && oky {
			return cmpFloat(x, y)
		}
	case TypeDate:
		if a.Kind == KindDate && b.Kind == KindDate {
			return a.Time.Compare(b.Time)
		}
	}
	if strcmp == nil {
		strcmp = strings.Compare
	}
	return strcmp(a.String(), b.String())
}

func cmpFloat(x, y float64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

package detect

import (
	"regexp"
	"strings"

	"inspectgrid/internal/model"
)

var (
	reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	reURL   = regexp.MustCompile(`^(?i)https?://\S+$`)
)

type Guess struct {
	Columns    []model.Column
	Confidence float64
}

// Heuristics guesses a column per key from sampled text values. A type wins
// when every non-blank sample parses as it; ties fall back to string.
func Heuristics(keys []string, sample []map[string]string) Guess {
	cols := make([]model.Column, 0, len(keys))
	decided, total := 0, 0
	for _, k := range keys {
		var values []string
		for _, rec := range sample {
			if v := strings.TrimSpace(rec[k]); v != "" {
				values = append(values, v)
			}
		}
		t := guessType(values)
		total++
		if len(values) > 0 {
			decided++
		}
		cols = append(cols, model.Column{ID: k, Label: k, Type: t, Editable: !isIDKey(k)})
	}
	return Guess{Columns: cols, Confidence: conf(total, decided)}
}

func isIDKey(k string) bool {
	return strings.EqualFold(k, "id")
}

func guessType(values []string) model.ColumnType {
	if len(values) == 0 {
		return model.TypeString
	}
	for _, t := range []model.ColumnType{model.TypeNumber, model.TypeBoolean, model.TypeDate} {
		if all(values, func(s string) bool { return model.ParseValue(t, s).Kind != model.KindString }) {
			return t
		}
	}
	if all(values, reEmail.MatchString) {
		return model.TypeEmail
	}
	if all(values, reURL.MatchString) {
		return model.TypeURL
	}
	return model.TypeString
}

func all(values []string, ok func(string) bool) bool {
	for _, v := range values {
		if !ok(v) {
			return false
		}
	}
	return true
}

func conf(total, hits int) float64 {
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

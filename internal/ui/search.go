package ui

import (
	"strings"
	"unicode"

	"inspectgrid/internal/model"
)

// parseSearch turns the search box text into a search config. /re/ is a
// regular expression and "text" matches whole words. Matching is case
// sensitive only when the query has an upper case letter.
func parseSearch(input string) model.SearchConfig {
	q := strings.TrimSpace(input)
	cfg := model.SearchConfig{}
	switch {
	case len(q) >= 2 && strings.HasPrefix(q, "/") && strings.HasSuffix(q, "/"):
		cfg.Regex = true
		q = q[1 : len(q)-1]
	case len(q) >= 2 && strings.HasPrefix(q, `"`) && strings.HasSuffix(q, `"`):
		cfg.WholeWord = true
		q = q[1 : len(q)-1]
	}
	cfg.Query = q
	cfg.CaseSensitive = strings.IndexFunc(q, unicode.IsUpper) >= 0
	return cfg
}

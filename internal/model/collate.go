package model

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NewCollator returns a Hebrew-aware text comparator that ignores case,
// width and niqqud. The returned func is not safe for concurrent use.
func NewCollator() func(a, b string) int {
	c := collate.New(language.Hebrew, collate.Loose)
	return c.CompareString
}

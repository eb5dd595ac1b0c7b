// Package textmatch implements the case and accent insensitive substring filter used by list pages.
package textmatch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s and strips combining marks, so "Nguyễn" folds to "nguyen".
func Fold(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	// đ has no decomposition
	out = strings.NewReplacer("đ", "d", "Đ", "D").Replace(out)
	return strings.ToLower(out)
}

// Contains reports whether query occurs in text after folding. An empty query matches everything.
func Contains(text, query string) bool {
	q := Fold(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(Fold(text), q)
}

// Matcher folds the query once for repeated checks.
type Matcher struct {
	q string
}

func NewMatcher(query string) Matcher {
	return Matcher{q: Fold(strings.TrimSpace(query))}
}

func (m Matcher) Empty() bool { return m.q == "" }

func (m Matcher) Match(text string) bool {
	return m.q == "" || strings.Contains(Fold(text), m.q)
}

// Package keywords matches text against a set of words, ignoring case.
package keywords

import (
	"strings"

	"golang.org/x/text/cases"
)

// Matcher reports whether text contains any of its words as a
// case-insensitive substring. It is not safe for concurrent use.
type Matcher struct {
	folder cases.Caser
	words  []string
}

// New builds a matcher. Empty words are dropped since they would match
// everything.
func New(words ...string) *Matcher {
	m := &Matcher{folder: cases.Fold()}
	for _, w := range words {
		if w == "" {
			continue
		}
		m.words = append(m.words, m.folder.String(w))
	}
	return m
}

// Len returns the number of words.
func (m *Matcher) Len() int {
	return len(m.words)
}

// Match returns true when text contains any word.
func (m *Matcher) Match(text string) bool {
	if len(m.words) == 0 {
		return false
	}
	folded := m.folder.String(text)
	for _, w := range m.words {
		if strings.Contains(folded, w) {
			return true
		}
	}
	return false
}

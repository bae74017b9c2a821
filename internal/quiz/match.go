package quiz

import (
	"strings"

	"golang.org/x/text/cases"
)

// Matcher resolves a free-form guess to a roster index. Matching is
// case-insensitive (Unicode case folding) and whitespace-insensitive, and
// accepts a team's name, tag, or any alias.
type Matcher struct {
	fold  cases.Caser
	index map[string]int
}

// NewMatcher builds the lookup index for r.
func NewMatcher(r *Roster) *Matcher {
	m := &Matcher{fold: cases.Fold(), index: make(map[string]int)}
	for i, t := range r.Teams {
		m.add(t.Name, i)
		m.add(t.Tag, i)
		for _, alias := range t.Aliases {
			m.add(alias, i)
		}
	}
	return m
}

func (m *Matcher) add(key string, idx int) {
	if key == "" {
		return
	}
	m.index[m.normalize(key)] = idx
}

func (m *Matcher) normalize(s string) string {
	return m.fold.String(strings.Join(strings.Fields(s), " "))
}

// Match returns the roster index for guess.
func (m *Matcher) Match(guess string) (int, bool) {
	idx, ok := m.index[m.normalize(guess)]
	return idx, ok
}

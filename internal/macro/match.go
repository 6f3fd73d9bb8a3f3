package macro

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// Match is one pattern match handed to a Handler.
// Group 0 is the whole match; groups 1..n are the capture groups.
type Match struct {
	text   string
	groups []group
}

type group struct {
	value   string
	matched bool
}

func newMatch(m *regexp2.Match) Match {
	gs := m.Groups()
	out := Match{text: m.String(), groups: make([]group, len(gs))}
	for i, g := range gs {
		out.groups[i] = group{value: g.String(), matched: len(g.Captures) > 0}
	}
	return out
}

// Text returns the whole matched span.
func (m Match) Text() string { return m.text }

// Group returns capture group i, or "" when it did not participate.
func (m Match) Group(i int) string {
	if i < 0 || i >= len(m.groups) {
		return ""
	}
	return m.groups[i].value
}

// Matched reports whether capture group i participated in the match.
func (m Match) Matched(i int) bool {
	if i < 0 || i >= len(m.groups) {
		return false
	}
	return m.groups[i].matched
}

// FindAll returns every non-overlapping match of re in s.
// Used by composite macros for their secondary scans.
func FindAll(re *regexp2.Regexp, s string) ([]Match, error) {
	var out []Match
	m, err := re.FindStringMatch(s)
	for m != nil && err == nil {
		out = append(out, newMatch(m))
		m, err = re.FindNextMatch(m)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExpansion, err)
	}
	return out, nil
}

// FindFirst returns the first match of re in s.
func FindFirst(re *regexp2.Regexp, s string) (Match, bool, error) {
	m, err := re.FindStringMatch(s)
	if err != nil {
		return Match{}, false, fmt.Errorf("%w: %v", ErrExpansion, err)
	}
	if m == nil {
		return Match{}, false, nil
	}
	return newMatch(m), true, nil
}

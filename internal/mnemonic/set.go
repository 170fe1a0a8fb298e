package mnemonic

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Set is an immutable collection of mnemonic spellings keyed by their
// upper-case form. The zero value is an empty set.
type Set struct {
	words map[string]struct{}
}

// NewSet builds a set from the given spellings. Empty strings are ignored.
func NewSet(words ...string) *Set {
	s := &Set{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		s.add(w)
	}
	return s
}

func (s *Set) add(word string) {
	word = strings.TrimSpace(word)
	if word == "" {
		return
	}
	s.words[normalize(word)] = struct{}{}
}

// Union returns a new set containing the words of every given set.
func Union(sets ...*Set) *Set {
	size := 0
	for _, s := range sets {
		size += s.Len()
	}
	out := &Set{words: make(map[string]struct{}, size)}
	for _, s := range sets {
		if s == nil {
			continue
		}
		for w := range s.words {
			out.words[w] = struct{}{}
		}
	}
	return out
}

// Contains reports whether token is a known mnemonic. The lookup ignores case.
func (s *Set) Contains(token string) bool {
	if s == nil || token == "" {
		return false
	}
	_, ok := s.words[normalize(token)]
	return ok
}

// Len returns the number of distinct mnemonics.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.words)
}

// Words returns the upper-case spellings in sorted order.
func (s *Set) Words() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

// normalize upper-cases a spelling the same way the formatter recases
// mnemonics, so an emitted spelling always looks itself up. A Caser keeps
// state, and sets are shared between workers: one per call.
func normalize(word string) string {
	return cases.Upper(language.Und).String(word)
}

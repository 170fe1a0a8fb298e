package testkit

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"fortio.org/safecast"

	"asmfmt/internal/format"
)

// CheckFormatInvariants runs the properties every formatter output must have:
// 1) non-empty output ends with exactly one '\n' and no blank lines before it
// 2) no line carries trailing whitespace
// 3) formatting the output again with the same settings changes nothing
func CheckFormatInvariants(out []byte, opt format.Options, set format.Mnemonics) error {
	if len(out) == 0 {
		return nil
	}
	if out[len(out)-1] != '\n' {
		return fmt.Errorf("output does not end with a newline")
	}

	lines := strings.Split(string(out[:len(out)-1]), "\n")
	last, err := safecast.Conv[uint32](len(lines))
	if err != nil {
		return fmt.Errorf("line count overflow: %w", err)
	}
	if strings.TrimSpace(lines[len(lines)-1]) == "" {
		return fmt.Errorf("line %d: trailing blank line", last)
	}
	for i, line := range lines {
		if line != strings.TrimRightFunc(line, unicode.IsSpace) {
			return fmt.Errorf("line %d: trailing whitespace in %q", i+1, line)
		}
	}

	again := format.Source(out, opt, set)
	if !bytes.Equal(again, out) {
		return fmt.Errorf("not idempotent:\nfirst:  %q\nsecond: %q", out, again)
	}
	return nil
}

// Mnemonics is a small fixed word set for harnesses that do not load lists.
type Mnemonics map[string]struct{}

// NewMnemonics builds a set of upper-cased words.
func NewMnemonics(words ...string) Mnemonics {
	m := make(Mnemonics, len(words))
	for _, w := range words {
		m[strings.ToUpper(w)] = struct{}{}
	}
	return m
}

// Contains reports whether tok is in the set ignoring case.
func (m Mnemonics) Contains(tok string) bool {
	_, ok := m[strings.ToUpper(tok)]
	return ok
}

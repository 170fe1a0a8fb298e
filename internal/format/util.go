package format

import (
	"strings"
	"unicode"
)

// isSpace is unicode.IsSpace plus the ASCII separators FS, GS, RS and US.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// leadingToken returns the first whitespace-delimited token of line and the
// byte offset right after it. tok is empty when the line has no tokens.
func leadingToken(line string) (tok string, end int) {
	start := strings.IndexFunc(line, notSpace)
	if start < 0 {
		return "", len(line)
	}
	n := strings.IndexFunc(line[start:], isSpace)
	if n < 0 {
		return line[start:], len(line)
	}
	return line[start : start+n], start + n
}

func notSpace(r rune) bool {
	return !isSpace(r)
}

func trimRight(s string) string {
	return strings.TrimRightFunc(s, isSpace)
}

func isBlank(s string) bool {
	return strings.IndexFunc(s, notSpace) < 0
}

package format

import "strings"

// SplitLines splits content on '\n' and strips trailing whitespace from every
// line. A trailing '\r' from CRLF input goes with it.
func SplitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = trimRight(line)
	}
	return lines
}

// TrimTrailingBlank drops lines from the end of lines while they are blank.
// Interior blank lines are kept. The input slice is not modified.
func TrimTrailingBlank(lines []string) []string {
	n := len(lines)
	for n > 0 && isBlank(lines[n-1]) {
		n--
	}
	return lines[:n]
}

// Format formats the lines of one file. Trailing blank lines are dropped and
// macro state starts cleared.
func Format(lines []string, opt Options, set Mnemonics) []string {
	out, _ := FormatStats(lines, opt, set)
	return out
}

// FormatStats is Format that also reports per-category counters.
func FormatStats(lines []string, opt Options, set Mnemonics) ([]string, Stats) {
	lines = TrimTrailingBlank(lines)
	s := NewSession(opt, set)
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = s.FormatLine(line, out)
	}
	return out, s.Stats()
}

// Source formats raw file content and returns the rendered result.
func Source(content []byte, opt Options, set Mnemonics) []byte {
	out, _ := SourceStats(content, opt, set)
	return out
}

// SourceStats is Source that also reports per-category counters.
func SourceStats(content []byte, opt Options, set Mnemonics) ([]byte, Stats) {
	lines, stats := FormatStats(SplitLines(string(content)), opt, set)
	return Render(lines), stats
}

package format

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Session formats the lines of a single file. It owns the macro state, so a
// new Session is needed per file. A Session is not safe for
// concurrent use; independent files may use independent sessions in parallel.
type Session struct {
	opt     Options
	set     Mnemonics
	inMacro bool
	stats   Stats

	upper cases.Caser
	lower cases.Caser
}

// Stats counts emitted lines per category.
type Stats struct {
	Input        int
	Output       int
	Blank        int
	Macro        int
	Instructions int
	Labels       int
	Verbatim     int
}

// NewSession creates a session with macro state cleared.
func NewSession(opt Options, set Mnemonics) *Session {
	return &Session{
		opt:   opt.withDefaults(),
		set:   set,
		upper: cases.Upper(language.Und),
		lower: cases.Lower(language.Und),
	}
}

// InMacro reports whether the session is inside a macro body.
func (s *Session) InMacro() bool {
	return s.inMacro
}

// Stats returns the counters collected so far.
func (s *Session) Stats() Stats {
	return s.stats
}

// FormatLine classifies line and appends its rewritten form to out.
func (s *Session) FormatLine(line string, out []string) []string {
	s.stats.Input++
	before := len(out)
	out = s.Rewrite(line, s.Classify(line), out)
	s.stats.Output += len(out) - before
	return out
}

package format

import "strings"

// Classify returns the category of line and updates the macro state when the
// line opens or closes a macro body.
//
// MACRO and ENDMACRO are recognized even inside a macro body. Any other line
// inside a macro body is verbatim. Outside, a known mnemonic wins over a
// trailing colon.
func (s *Session) Classify(line string) Kind {
	tok, _ := leadingToken(line)
	switch {
	case tok == "":
		return KindBlank
	case tok == MacroStart:
		s.inMacro = true
		return KindMacroStart
	case tok == MacroEnd:
		s.inMacro = false
		return KindMacroEnd
	case s.inMacro:
		return KindVerbatim
	case s.set != nil && s.set.Contains(tok):
		return KindInstruction
	case strings.HasSuffix(tok, ":"):
		return KindLabel
	default:
		return KindVerbatim
	}
}

package format

import "strings"

// Rewrite appends the output lines for a line of the given kind to out.
// Labels followed by code produce more than one line when NewlineAfterLabel is
// set; the code after the label is classified again as a line of its own.
func (s *Session) Rewrite(line string, kind Kind, out []string) []string {
	for {
		switch kind {
		case KindBlank:
			s.stats.Blank++
			return append(out, "")
		case KindMacroStart, KindMacroEnd:
			s.stats.Macro++
			return append(out, line)
		case KindInstruction:
			s.stats.Instructions++
			return append(out, s.instruction(line))
		case KindLabel:
			if !s.opt.NewlineAfterLabel {
				s.stats.Verbatim++
				return append(out, line)
			}
			s.stats.Labels++
			tok, end := leadingToken(line)
			out = append(out, tok)
			rest := trimRight(line[end:])
			if rest == "" {
				return out
			}
			// rest holds at least one token less than line, so this ends.
			line = rest
			kind = s.Classify(line)
		default:
			s.stats.Verbatim++
			return append(out, line)
		}
	}
}

// instruction re-indents line and recases its mnemonic. Everything after the
// mnemonic is copied as is.
func (s *Session) instruction(line string) string {
	tok, end := leadingToken(line)
	if s.opt.UpperCaseMnemonics {
		tok = s.upper.String(tok)
	} else {
		tok = s.lower.String(tok)
	}
	rest := line[end:]

	var sb strings.Builder
	sb.Grow(s.opt.Indent + len(tok) + len(rest))
	for range s.opt.Indent {
		sb.WriteByte(' ')
	}
	sb.WriteString(tok)
	sb.WriteString(rest)
	return sb.String()
}

package format

// Options configures the line rewriter.
type Options struct {
	// Indent is the number of spaces placed before every instruction.
	Indent int
	// UpperCaseMnemonics selects upper-case mnemonics; lower-case otherwise.
	UpperCaseMnemonics bool
	// NewlineAfterLabel moves code that follows a label onto its own line.
	NewlineAfterLabel bool
}

func (o Options) withDefaults() Options {
	if o.Indent < 0 {
		o.Indent = 0
	}
	return o
}

// Mnemonics answers whether a token is a known instruction keyword.
// Implementations must ignore case.
type Mnemonics interface {
	Contains(token string) bool
}

package format

// Kind is the category a line falls into.
type Kind uint8

const (
	KindBlank Kind = iota
	KindMacroStart
	KindMacroEnd
	KindInstruction
	KindLabel
	KindVerbatim
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindMacroStart:
		return "macro-start"
	case KindMacroEnd:
		return "macro-end"
	case KindInstruction:
		return "instruction"
	case KindLabel:
		return "label"
	case KindVerbatim:
		return "verbatim"
	default:
		return "unknown"
	}
}

// Keywords that open and close a macro body. Matched exactly, case included.
const (
	MacroStart = "MACRO"
	MacroEnd   = "ENDMACRO"
)

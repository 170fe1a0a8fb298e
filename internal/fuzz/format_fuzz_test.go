package fuzztests

import (
	"testing"

	"asmfmt/internal/format"
	"asmfmt/internal/testkit"
)

var fuzzWords = testkit.NewMnemonics("ld", "ldir", "ret", "nop", "djnz", "org", "db", "pha", "pla", "lda", "sta", "tax", "txa", "rti")

var fuzzConfigs = []format.Options{
	{Indent: 2, UpperCaseMnemonics: true, NewlineAfterLabel: true},
	{Indent: 8, UpperCaseMnemonics: false, NewlineAfterLabel: false},
	{Indent: 0, UpperCaseMnemonics: true, NewlineAfterLabel: false},
}

func FuzzFormatInvariants(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		for _, opt := range fuzzConfigs {
			out := format.Source(input, opt, fuzzWords)
			if err := testkit.CheckFormatInvariants(out, opt, fuzzWords); err != nil {
				t.Fatalf("options %+v: %v\ninput: %q", opt, err, input)
			}
		}
	})
}

// FuzzFormatNilMnemonics checks that a missing word set degrades to verbatim
// output instead of panicking.
func FuzzFormatNilMnemonics(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		opt := fuzzConfigs[0]
		out := format.Source(input, opt, nil)
		if err := testkit.CheckFormatInvariants(out, opt, nil); err != nil {
			t.Fatalf("%v\ninput: %q", err, input)
		}
	})
}

package testkit

import (
	"testing"

	"asmfmt/internal/format"
)

func TestCheckFormatInvariants(t *testing.T) {
	opt := format.Options{Indent: 4, UpperCaseMnemonics: true, NewlineAfterLabel: true}
	set := NewMnemonics("ld", "ret")

	good := format.Source([]byte("main: ld a,b\nret\n\n"), opt, set)
	if err := CheckFormatInvariants(good, opt, set); err != nil {
		t.Fatalf("formatted output rejected: %v", err)
	}

	cases := map[string]string{
		"no newline":     "    LD a,b",
		"trailing blank": "    LD a,b\n\n",
		"trailing space": "    LD a,b \n",
		"not idempotent": "ld a,b\n",
	}
	for name, out := range cases {
		if err := CheckFormatInvariants([]byte(out), opt, set); err == nil {
			t.Errorf("%s: expected an error for %q", name, out)
		}
	}
}

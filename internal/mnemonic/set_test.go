package mnemonic

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetContainsIgnoresCase(t *testing.T) {
	assert := assert.New(t)

	s := NewSet("ld", "Jp", "NOP", "", "  ")
	assert.Equal(3, s.Len())
	for _, tok := range []string{"ld", "LD", "Ld", "lD", "jp", "nop"} {
		assert.True(s.Contains(tok), tok)
	}
	assert.False(s.Contains("ldx"))
	assert.False(s.Contains(""))
	assert.Equal([]string{"JP", "LD", "NOP"}, s.Words())
}

func TestSetFoldsLikeTheRewriter(t *testing.T) {
	s := NewSet("maß")
	assert.Equal(t, []string{"MASS"}, s.Words())
	for _, tok := range []string{"maß", "MASS", "mass"} {
		assert.True(t, s.Contains(tok), tok)
	}
}

func TestNilSet(t *testing.T) {
	var s *Set
	assert.False(t, s.Contains("LD"))
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Words())
}

func TestParseSkipsCommentsAndBlanks(t *testing.T) {
	src := "# header\n\nld\n  add  \n; ca65 style comment\nLD\r\n"
	s, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"ADD", "LD"}, s.Words())
}

func TestUnion(t *testing.T) {
	u := Union(NewSet("ld", "add"), nil, NewSet("ADD", "org"))
	assert.Equal(t, []string{"ADD", "LD", "ORG"}, u.Words())
}

func TestLoadMergesArchitectureAndAssembler(t *testing.T) {
	fsys := fstest.MapFS{
		"architectures/toy/mnemonics.txt": {Data: []byte("mov\nadd\n")},
		"assemblers/tasm/mnemonics.txt":   {Data: []byte("org\ndb\n")},
	}
	s, err := Load(fsys, "toy", "tasm")
	require.NoError(t, err)
	assert.Equal(t, []string{"ADD", "DB", "MOV", "ORG"}, s.Words())
}

func TestLoadMissingListNamesPath(t *testing.T) {
	fsys := fstest.MapFS{
		"architectures/toy/mnemonics.txt": {Data: []byte("mov\n")},
	}
	_, err := Load(fsys, "toy", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assemblers/nope/mnemonics.txt")
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = Load(fsys, "", "nope")
	assert.Error(t, err)
}

func TestBuiltinLists(t *testing.T) {
	archs, asms, err := Available(Builtin())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"z80", "6502"}, archs)
	assert.ElementsMatch(t, []string{"sjasmplus", "ca65"}, asms)

	s, err := Load(Builtin(), "z80", "sjasmplus")
	require.NoError(t, err)
	assert.True(t, s.Contains("ld"))
	assert.True(t, s.Contains("djnz"))
	assert.True(t, s.Contains("org"))
	assert.False(t, s.Contains("MACRO"))
	assert.False(t, s.Contains("lda"))
}

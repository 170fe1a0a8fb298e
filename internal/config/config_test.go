package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asmfmt/internal/format"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultTemplate(t *testing.T) {
	path := writeConfig(t, t.TempDir(), DefaultTOML)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "z80", cfg.Architecture)
	assert.Equal(t, "sjasmplus", cfg.Assembler)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, format.Options{Indent: 2, UpperCaseMnemonics: true, NewlineAfterLabel: true}, cfg.FormatOptions())
	assert.Equal(t, DefaultExtensions, cfg.SourceExtensions())
	assert.False(t, cfg.Cache)

	set, err := cfg.LoadMnemonics()
	require.NoError(t, err)
	assert.True(t, set.Contains("ldir"))
	assert.True(t, set.Contains("defb"))
}

func TestLoadRejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"malformed", "architecture = ", "failed to parse TOML"},
		{"missing key", "architecture = \"z80\"\nassembler = \"sjasmplus\"\nindent = 2\nupperCaseMnemonics = true\n", "missing newlineAfterLabel"},
		{"negative indent", "architecture = \"z80\"\nassembler = \"sjasmplus\"\nindent = -1\nupperCaseMnemonics = true\nnewlineAfterLabel = false\n", "non-negative"},
		{"empty architecture", "architecture = \"\"\nassembler = \"sjasmplus\"\nindent = 1\nupperCaseMnemonics = true\nnewlineAfterLabel = false\n", "architecture must not be empty"},
		{"unknown key", DefaultTOML + "tabs = true\n", "unknown keys: tabs"},
		{"bad extension", DefaultTOML + "extensions = [\"asm\"]\n", "must start with a dot"},
		{"wrong type", "architecture = \"z80\"\nassembler = \"sjasmplus\"\nindent = \"two\"\nupperCaseMnemonics = true\nnewlineAfterLabel = false\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.body)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, DefaultTOML)
	nested := filepath.Join(root, "src", "lib")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, root, cfg.Dir())
}

func TestDiscoverNotFound(t *testing.T) {
	// A temp dir normally has no asmfmt.toml above it; skip if one exists.
	dir := t.TempDir()
	if _, ok, _ := Find(dir); ok {
		t.Skip("an asmfmt.toml exists above the temp directory")
	}
	_, err := Discover(dir)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMnemonicsDirRelativeToConfig(t *testing.T) {
	root := t.TempDir()
	lists := filepath.Join(root, "lists")
	require.NoError(t, os.MkdirAll(filepath.Join(lists, "architectures", "toy"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(lists, "assemblers", "tasm"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(lists, "architectures", "toy", "mnemonics.txt"), []byte("mov\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(lists, "assemblers", "tasm", "mnemonics.txt"), []byte("org\n"), 0o644))

	path := writeConfig(t, root, `architecture = "toy"
assembler = "tasm"
indent = 4
upperCaseMnemonics = false
newlineAfterLabel = false
mnemonicsDir = "lists"
extensions = [".toy"]
cache = true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Cache)
	assert.Equal(t, []string{".toy"}, cfg.SourceExtensions())

	set, err := cfg.LoadMnemonics()
	require.NoError(t, err)
	assert.Equal(t, []string{"MOV", "ORG"}, set.Words())

	cfg.Assembler = "missing"
	_, err = cfg.LoadMnemonics()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assemblers/missing/mnemonics.txt")
	assert.Contains(t, err.Error(), lists)
}

package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asmfmt/internal/format"
	"asmfmt/internal/mnemonic"
	"asmfmt/internal/trace"
)

const (
	messy = "start: ld a,b\n\tret\n\n\n"
	clean = "start:\n  LD a,b\n  RET\n"
)

func testOptions() FormatOptions {
	return FormatOptions{
		Options:    format.Options{Indent: 2, UpperCaseMnemonics: true, NewlineAfterLabel: true},
		Mnemonics:  mnemonic.NewSet("ld", "ret", "nop"),
		Extensions: []string{".asm", ".s"},
	}
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestFormatPathsStdoutKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "b.asm")
	b := filepath.Join(dir, "a.asm")
	writeFile(t, a, messy)
	writeFile(t, b, "nop\n")

	opts := testOptions()
	opts.Jobs = 4
	results, err := FormatPaths(context.Background(), []string{a, b}, opts)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, a, results[0].Path)
	assert.Equal(t, clean, string(results[0].Formatted))
	assert.True(t, results[0].Changed)
	assert.Equal(t, b, results[1].Path)
	assert.Equal(t, "  NOP\n", string(results[1].Formatted))

	// stdout mode never touches the files
	assert.Equal(t, messy, readFile(t, a))
}

func TestFormatPathsInPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.asm")
	writeFile(t, path, messy)
	require.NoError(t, os.Chmod(path, 0o600))

	opts := testOptions()
	opts.InPlace = true
	results, err := FormatPaths(context.Background(), []string{path}, opts)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.True(t, results[0].Changed)
	assert.Nil(t, results[0].Formatted)
	assert.Equal(t, clean, readFile(t, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// second pass is a no-op
	results, err = FormatPaths(context.Background(), []string{path}, opts)
	require.NoError(t, err)
	assert.False(t, results[0].Changed)
}

func TestFormatPathsCheckWritesNothing(t *testing.T) {
	dir := t.TempDir()
	dirty := filepath.Join(dir, "dirty.asm")
	tidy := filepath.Join(dir, "tidy.asm")
	writeFile(t, dirty, messy)
	writeFile(t, tidy, clean)

	opts := testOptions()
	opts.Check = true
	results, err := FormatPaths(context.Background(), []string{dirty, tidy}, opts)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Changed)
	assert.False(t, results[1].Changed)
	assert.Nil(t, results[0].Formatted)
	assert.Equal(t, messy, readFile(t, dirty))
}

func TestFormatPathsKeepsBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.asm")
	writeFile(t, path, "\ufeff"+messy)

	opts := testOptions()
	opts.InPlace = true
	results, err := FormatPaths(context.Background(), []string{path}, opts)
	require.NoError(t, err)
	require.NoError(t, results[0].Err)
	assert.Equal(t, "\ufeff"+clean, readFile(t, path))
}

func TestFormatPathsMissingFileContinues(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.asm")
	present := filepath.Join(dir, "present.asm")
	writeFile(t, present, messy)

	opts := testOptions()
	opts.InPlace = true
	results, err := FormatPaths(context.Background(), []string{missing, present}, opts)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, errors.Is(results[0].Err, os.ErrNotExist))
	require.NoError(t, results[1].Err)
	assert.Equal(t, clean, readFile(t, present))
}

func TestFormatPathsWalksDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "z.asm"), "nop\n")
	writeFile(t, filepath.Join(dir, "sub", "a.s"), "nop\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "nop\n")
	writeFile(t, filepath.Join(dir, ".git", "x.asm"), "nop\n")

	opts := testOptions()
	opts.Check = true
	results, err := FormatPaths(context.Background(), []string{dir, filepath.Join(dir, "z.asm")}, opts)
	require.NoError(t, err)

	var got []string
	for _, r := range results {
		rel, relErr := filepath.Rel(dir, r.Path)
		require.NoError(t, relErr)
		got = append(got, filepath.ToSlash(rel))
	}
	// a named file is kept even when a walk already found it
	assert.Equal(t, []string{"sub/a.s", "z.asm", "z.asm"}, got)
}

func TestFormatPathsRepeatedPathFormatsEachTime(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.asm")
	writeFile(t, a, messy)

	opts := testOptions()
	opts.Jobs = 2
	results, err := FormatPaths(context.Background(), []string{a, a}, opts)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		require.NoError(t, r.Err)
		assert.Equal(t, a, r.Path)
		assert.Equal(t, clean, string(r.Formatted))
	}
}

func TestFormatPathsInPlaceWritesRepeatedPathOnce(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.asm")
	writeFile(t, a, messy)

	opts := testOptions()
	opts.InPlace = true
	opts.Jobs = 2
	results, err := FormatPaths(context.Background(), []string{a, a}, opts)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, clean, readFile(t, a))
}

func TestFormatPathsWalkedFilesAppearOnce(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.asm"), "nop\n")

	opts := testOptions()
	opts.Check = true
	results, err := FormatPaths(context.Background(), []string{dir, dir}, opts)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestFormatPathsNoInputs(t *testing.T) {
	_, err := FormatPaths(context.Background(), nil, testOptions())
	assert.ErrorIs(t, err, ErrNoInputs)
}

func TestFormatPathsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FormatPaths(ctx, []string{"x.asm"}, testOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatReader(t *testing.T) {
	res, err := FormatReader(context.Background(), "", strings.NewReader(messy), testOptions())
	require.NoError(t, err)
	assert.Equal(t, "<stdin>", res.Path)
	assert.True(t, res.Changed)
	assert.Equal(t, clean, string(res.Formatted))
	assert.Equal(t, 3, res.Stats.Output)
}

func TestFormatReaderRejectsInPlace(t *testing.T) {
	opts := testOptions()
	opts.InPlace = true
	_, err := FormatReader(context.Background(), "", strings.NewReader(messy), opts)
	assert.ErrorIs(t, err, ErrInPlaceStdin)
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func TestFormatPathsEmitsProgress(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.asm")
	writeFile(t, path, messy)

	sink := &recordingSink{}
	opts := testOptions()
	opts.Check = true
	opts.Progress = sink
	_, err := FormatPaths(context.Background(), []string{path}, opts)
	require.NoError(t, err)

	require.Len(t, sink.events, 3)
	assert.Equal(t, StatusQueued, sink.events[0].Status)
	assert.Equal(t, StatusWorking, sink.events[1].Status)
	assert.Equal(t, StatusDone, sink.events[2].Status)
	assert.True(t, sink.events[2].Changed)
}

func TestFileSpansRecordLineEndings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dos.asm")
	writeFile(t, path, "nop\r\n")

	ring := trace.NewRingTracer(64, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), ring)
	_, err := FormatPaths(ctx, []string{path}, testOptions())
	require.NoError(t, err)
	_, err = FormatReader(ctx, "", strings.NewReader("nop\n"), testOptions())
	require.NoError(t, err)

	extras := make(map[string]map[string]string)
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanEnd && ev.Scope == trace.ScopeModule {
			extras[ev.Name] = ev.Extra
		}
	}
	require.Contains(t, extras, "file:"+path)
	assert.Equal(t, "true", extras["file:"+path]["crlf"])
	assert.Equal(t, "disk", extras["file:"+path]["origin"])

	stdin := extras["file:<stdin>"]
	require.NotNil(t, stdin)
	assert.Equal(t, "false", stdin["crlf"])
	assert.Equal(t, "memory", stdin["origin"])
}

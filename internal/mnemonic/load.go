package mnemonic

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
)

//go:embed lists
var embedded embed.FS

// Builtin returns the word lists shipped with the binary.
func Builtin() fs.FS {
	sub, err := fs.Sub(embedded, "lists")
	if err != nil {
		// lists/ is part of the embed pattern, Sub cannot fail here
		panic(err)
	}
	return sub
}

// ArchitecturePath returns the location of an architecture word list inside a
// word-list root.
func ArchitecturePath(arch string) string {
	return path.Join("architectures", arch, "mnemonics.txt")
}

// AssemblerPath returns the location of an assembler word list inside a
// word-list root.
func AssemblerPath(asm string) string {
	return path.Join("assemblers", asm, "mnemonics.txt")
}

// Parse reads a newline-delimited word list. Blank lines and lines starting
// with '#' or ';' are skipped.
func Parse(r io.Reader) (*Set, error) {
	s := NewSet()
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}
		s.add(line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadFile reads a single word list from fsys.
func LoadFile(fsys fs.FS, name string) (*Set, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open mnemonic list: %w", name, err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read mnemonic list: %w", name, err)
	}
	return s, nil
}

// Load reads the architecture and assembler word lists from fsys and merges
// them into one set.
func Load(fsys fs.FS, arch, asm string) (*Set, error) {
	if strings.TrimSpace(arch) == "" {
		return nil, fmt.Errorf("mnemonic: architecture is not set")
	}
	if strings.TrimSpace(asm) == "" {
		return nil, fmt.Errorf("mnemonic: assembler is not set")
	}
	archSet, err := LoadFile(fsys, ArchitecturePath(arch))
	if err != nil {
		return nil, err
	}
	asmSet, err := LoadFile(fsys, AssemblerPath(asm))
	if err != nil {
		return nil, err
	}
	return Union(archSet, asmSet), nil
}

// Available lists the architectures and assemblers present in fsys.
func Available(fsys fs.FS) (archs, asms []string, err error) {
	archs, err = listDirs(fsys, "architectures")
	if err != nil {
		return nil, nil, err
	}
	asms, err = listDirs(fsys, "assemblers")
	if err != nil {
		return nil, nil, err
	}
	return archs, asms, nil
}

func listDirs(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

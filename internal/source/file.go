package source

import (
	"bytes"
	"crypto/sha256"
	"io"
	"os"
)

// StdinName is the display name used for standard input.
const StdinName = "<stdin>"

var bom = []byte{0xEF, 0xBB, 0xBF}

// Load reads a file from disk and strips a leading UTF-8 BOM.
// The file handle is closed before Load returns.
func Load(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f := newFile(normalizePath(path), content, 0)
	f.Mode = info.Mode().Perm()
	return f, nil
}

// Read consumes r completely and returns it as a virtual file.
func Read(name string, r io.Reader) (*File, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return newFile(name, content, FileVirtual), nil
}

// FromBytes wraps in-memory content as a virtual file.
func FromBytes(name string, content []byte) *File {
	return newFile(name, content, FileVirtual)
}

func newFile(path string, content []byte, flags FileFlags) *File {
	content, hadBOM := removeBOM(content)
	if hadBOM {
		flags |= FileHadBOM
	}
	if bytes.Contains(content, []byte("\r\n")) {
		flags |= FileHasCRLF
	}
	return &File{
		Path:    path,
		Content: content,
		Hash:    sha256.Sum256(content),
		Flags:   flags,
		Mode:    0o644,
	}
}

// Restore prepares formatted content for writing back to the file. The BOM
// removed on load is put back.
func (f *File) Restore(formatted []byte) []byte {
	if f.Flags&FileHadBOM == 0 {
		return formatted
	}
	out := make([]byte, 0, len(bom)+len(formatted))
	out = append(out, bom...)
	return append(out, formatted...)
}

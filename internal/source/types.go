package source

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
)

// FileFlags encodes metadata about a source file.
type FileFlags uint8 // метаданные

const (
	// FileVirtual indicates the file was read from memory (stdin, test).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileHasCRLF
)

// Digest is a SHA-256 hash of file content.
type Digest [32]byte

// String returns the hex form of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Combine hashes the concatenation of the given digests: H(d1 || d2 ...).
// Order matters.
func Combine(parts ...Digest) Digest {
	h := sha256.New()
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// File captures content and metadata for a single input.
type File struct {
	Path    string
	Content []byte // without BOM
	Hash    Digest // hash of Content
	Flags   FileFlags
	Mode    fs.FileMode
}

// Virtual reports whether the file did not come from disk.
func (f *File) Virtual() bool {
	return f.Flags&FileVirtual != 0
}

// HasCRLF reports whether the content used CRLF line endings.
func (f *File) HasCRLF() bool {
	return f.Flags&FileHasCRLF != 0
}

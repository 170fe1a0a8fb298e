package source

import (
	"bytes"
	"path/filepath"
	"strings"
)

func removeBOM(content []byte) ([]byte, bool) {
	if bytes.HasPrefix(content, bom) {
		return content[len(bom):], true
	}
	return content, false
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}

// RelativePath returns path relative to baseDir when path lies inside it, and
// the cleaned absolute path otherwise.
func RelativePath(path, baseDir string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(abs), nil
	}
	return normalizePath(rel), nil
}

// DisplayPath shortens path for messages. Virtual names are returned as is.
func DisplayPath(path, baseDir string) string {
	if path == StdinName || baseDir == "" {
		return path
	}
	if rel, err := RelativePath(path, baseDir); err == nil {
		return rel
	}
	return path
}

package driver

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"asmfmt/internal/format"
	"asmfmt/internal/source"
)

// Current schema version - increment when cacheRecord format changes
const cacheSchemaVersion uint16 = 1

// Cache remembers which file contents are already formatted under a given
// set of settings, so unchanged files can be skipped on the next run.
// Thread-safe for concurrent access. A nil *Cache is a disabled cache.
type Cache struct {
	mu          sync.RWMutex
	dir         string
	fingerprint source.Digest
}

// cacheRecord is stored per known-clean content, msgpack encoded.
type cacheRecord struct {
	Schema      uint16
	Path        string
	ContentHash source.Digest
	Fingerprint source.Digest
	Stored      time.Time
}

// OpenCache initializes a cache at the standard per-user location.
func OpenCache(app string, fingerprint source.Digest) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewCache(filepath.Join(base, app), fingerprint)
}

// NewCache initializes a cache rooted at dir.
func NewCache(dir string, fingerprint source.Digest) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, fingerprint: fingerprint}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *Cache) key(content source.Digest) source.Digest {
	return source.Combine(c.fingerprint, content)
}

func (c *Cache) pathFor(key source.Digest) string {
	return filepath.Join(c.dir, "clean", key.String()+".mp")
}

// Known reports whether content was recorded as already formatted.
// Read errors count as a miss.
func (c *Cache) Known(content source.Digest) bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(c.key(content)))
	if err != nil {
		return false
	}
	defer f.Close()

	var rec cacheRecord
	if err := msgpack.NewDecoder(f).Decode(&rec); err != nil {
		return false
	}
	return rec.Schema == cacheSchemaVersion && rec.Fingerprint == c.fingerprint && rec.ContentHash == content
}

// Remember records content as already formatted.
func (c *Cache) Remember(path string, content source.Digest) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(c.key(content))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	rec := cacheRecord{
		Schema:      cacheSchemaVersion,
		Path:        path,
		ContentHash: content,
		Fingerprint: c.fingerprint,
		Stored:      time.Now().UTC(),
	}
	if err := msgpack.NewEncoder(f).Encode(&rec); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// DropAll removes every cached record.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "clean"))
}

// Fingerprint identifies everything that influences formatted output: the
// rewriter options, the mnemonic spellings and the tool version.
func Fingerprint(opt format.Options, words []string, version string) source.Digest {
	h := sha256.New()
	fmt.Fprintf(h, "schema=%d\nversion=%s\n", cacheSchemaVersion, version)
	fmt.Fprintf(h, "indent=%d\nupper=%s\nlabel=%s\n",
		opt.Indent,
		strconv.FormatBool(opt.UpperCaseMnemonics),
		strconv.FormatBool(opt.NewlineAfterLabel))
	h.Write([]byte(strings.Join(words, "\n")))
	var out source.Digest
	copy(out[:], h.Sum(nil))
	return out
}

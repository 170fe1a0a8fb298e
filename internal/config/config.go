// Package config loads the formatter configuration (asmfmt.toml).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"asmfmt/internal/format"
	"asmfmt/internal/mnemonic"
)

// FileName is the configuration file looked up by Discover.
const FileName = "asmfmt.toml"

// ErrNotFound is returned by Discover when no configuration file exists in the
// start directory or any of its parents.
var ErrNotFound = errors.New("no " + FileName + " found")

// DefaultExtensions are collected when a directory is given on the command line.
var DefaultExtensions = []string{".asm", ".s", ".z80", ".inc"}

// Config is the decoded configuration file.
type Config struct {
	Architecture       string   `toml:"architecture"`
	Assembler          string   `toml:"assembler"`
	Indent             int64    `toml:"indent"`
	UpperCaseMnemonics bool     `toml:"upperCaseMnemonics"`
	NewlineAfterLabel  bool     `toml:"newlineAfterLabel"`
	MnemonicsDir       string   `toml:"mnemonicsDir"`
	Extensions         []string `toml:"extensions"`
	Cache              bool     `toml:"cache"`

	// Path is the file the configuration was read from.
	Path string `toml:"-"`
}

var requiredKeys = []string{
	"architecture",
	"assembler",
	"indent",
	"upperCaseMnemonics",
	"newlineAfterLabel",
}

// Find walks from startDir up to the filesystem root looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the configuration governing startDir.
func Discover(startDir string) (*Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return Load(path)
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	for _, key := range requiredKeys {
		if !meta.IsDefined(key) {
			return nil, fmt.Errorf("%s: missing %s", path, key)
		}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Architecture) == "" {
		return errors.New("architecture must not be empty")
	}
	if strings.TrimSpace(c.Assembler) == "" {
		return errors.New("assembler must not be empty")
	}
	if c.Indent < 0 {
		return fmt.Errorf("indent must be non-negative, got %d", c.Indent)
	}
	if _, err := safecast.Conv[int](c.Indent); err != nil {
		return fmt.Errorf("indent out of range: %w", err)
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	return nil
}

// FormatOptions returns the rewriter options.
func (c *Config) FormatOptions() format.Options {
	indent, err := safecast.Conv[int](c.Indent)
	if err != nil {
		indent = 0
	}
	return format.Options{
		Indent:             indent,
		UpperCaseMnemonics: c.UpperCaseMnemonics,
		NewlineAfterLabel:  c.NewlineAfterLabel,
	}
}

// SourceExtensions returns the extensions collected from directories.
func (c *Config) SourceExtensions() []string {
	if len(c.Extensions) == 0 {
		return slices.Clone(DefaultExtensions)
	}
	return slices.Clone(c.Extensions)
}

// Dir returns the directory holding the configuration file.
func (c *Config) Dir() string {
	if c.Path == "" {
		return "."
	}
	return filepath.Dir(c.Path)
}

// WordListRoot returns the filesystem word lists are read from and a
// description of it for messages.
func (c *Config) WordListRoot() (fs.FS, string) {
	dir := strings.TrimSpace(c.MnemonicsDir)
	if dir == "" {
		return mnemonic.Builtin(), "builtin"
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.Dir(), dir)
	}
	return os.DirFS(dir), dir
}

// LoadMnemonics reads and merges the architecture and assembler word lists.
func (c *Config) LoadMnemonics() (*mnemonic.Set, error) {
	root, name := c.WordListRoot()
	set, err := mnemonic.Load(root, c.Architecture, c.Assembler)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return set, nil
}

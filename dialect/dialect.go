// Package dialect loads terminal dialect definitions, extra escape-sequence
// bindings for terminals that encode keys outside the standard vocabulary.
// Definitions are TOML or YAML files mapping key names to byte sequences and
// are applied on top of a parser's sequence table.
package dialect

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/c-bata/replkit/key"
)

var (
	// ErrUnknownKey reports a binding whose key name is not in the
	// vocabulary.
	ErrUnknownKey = errors.New("unknown key name")

	// ErrEmptySequence reports a binding with no bytes.
	ErrEmptySequence = errors.New("empty sequence")

	// ErrUnsupportedFormat reports a file extension other than .toml,
	// .yaml or .yml.
	ErrUnsupportedFormat = errors.New("unsupported dialect file format")
)

// Binding maps one escape sequence to a named key. The sequence is written
// with the usual textual escapes, e.g. `\e[1;9A` or `\x1bOj`.
type Binding struct {
	Key      string `toml:"key" yaml:"key"`
	Sequence string `toml:"sequence" yaml:"sequence"`
}

// Config is a parsed dialect definition.
type Config struct {
	// Name identifies the dialect, e.g. "rxvt-unicode".
	Name string `toml:"name" yaml:"name"`

	Bindings []Binding `toml:"bindings" yaml:"bindings"`
}

// Load reads and parses a dialect file, choosing the decoder from the file
// extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dialect file %s: %w", path, err)
	}
	return Parse(path, data)
}

// LoadOptional is Load, except a missing file is not an error and yields a
// nil config.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return cfg, err
}

// Parse decodes dialect data. The path is used only to pick the format and
// to label errors.
func Parse(path string, data []byte) (*Config, error) {
	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing dialect file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing dialect file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("dialect file %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks every binding without modifying anything.
func (c *Config) Validate() error {
	for i, b := range c.Bindings {
		if _, ok := key.FromName(b.Key); !ok {
			return fmt.Errorf("binding %d: %w: %q", i, ErrUnknownKey, b.Key)
		}
		seq, err := DecodeSequence(b.Sequence)
		if err != nil {
			return fmt.Errorf("binding %d (%s): %w", i, b.Key, err)
		}
		if len(seq) == 0 {
			return fmt.Errorf("binding %d (%s): %w", i, b.Key, ErrEmptySequence)
		}
	}
	return nil
}

// Apply registers every binding in the table. The config must have passed
// Validate; Apply revalidates and stops at the first bad binding.
func (c *Config) Apply(t *key.Table) error {
	for i, b := range c.Bindings {
		k, ok := key.FromName(b.Key)
		if !ok {
			return fmt.Errorf("binding %d: %w: %q", i, ErrUnknownKey, b.Key)
		}
		seq, err := DecodeSequence(b.Sequence)
		if err != nil {
			return fmt.Errorf("binding %d (%s): %w", i, b.Key, err)
		}
		if len(seq) == 0 {
			return fmt.Errorf("binding %d (%s): %w", i, b.Key, ErrEmptySequence)
		}
		t.Insert(seq, k)
	}
	return nil
}

// DecodeSequence turns the textual form of a sequence into bytes. It
// understands `\e` and `\E` for ESC, `\xNN` hex escapes, `\\` for a literal
// backslash, and passes everything else through as UTF-8 bytes.
func DecodeSequence(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			out = append(out, s[i])
			continue
		}
		if i+1 >= len(s) {
			return nil, fmt.Errorf("trailing backslash in sequence %q", s)
		}
		i++
		switch s[i] {
		case 'e', 'E':
			out = append(out, 0x1b)
		case '\\':
			out = append(out, '\\')
		case 'x':
			if i+2 >= len(s) {
				return nil, fmt.Errorf("truncated hex escape in sequence %q", s)
			}
			n, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
			if err != nil {
				return nil, fmt.Errorf("bad hex escape in sequence %q: %w", s, err)
			}
			out = append(out, byte(n))
			i += 2
		default:
			return nil, fmt.Errorf("unknown escape \\%c in sequence %q", s[i], s)
		}
	}
	return out, nil
}

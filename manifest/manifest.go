// Package manifest handles hashlit.toml generator configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/tliron/commonlog"

	"github.com/portal-co/sha3-literal/compiler"
)

// FileName is the manifest file looked up by FindAndLoad.
const FileName = "hashlit.toml"

// DefaultOutput is the generated file name when none is configured.
const DefaultOutput = "hashlit_gen.go"

var log = commonlog.GetLogger("hashlit.manifest")

// Manifest represents a hashlit.toml configuration.
type Manifest struct {
	Generate Generate `toml:"generate"`
	Entries  []Entry  `toml:"entry"`

	// Dir is the directory containing the hashlit.toml file (set at load
	// time). It is empty for Default().
	Dir string `toml:"-"`
}

// Generate configures generator output.
type Generate struct {
	Output   string `toml:"output"`
	MaxDepth int    `toml:"max-depth"`
	Record   string `toml:"record"`
}

// Entry declares one digest algorithm exposed under two entry points,
// <name>_literal and <name>_hex_literal.
type Entry struct {
	Name      string `toml:"name"`
	Algorithm string `toml:"algorithm"`

	// Nested lists the entry points usable as nested invocations inside
	// this entry's expressions. When omitted every entry point of the
	// manifest is available, unless Isolated is set.
	Nested   []string  `toml:"nested"`
	Isolated bool      `toml:"isolated"`
	Handlers []Handler `toml:"handler"`
}

// Handler is an extra nested invocation: a named digest with an encoding.
type Handler struct {
	Name      string `toml:"name"`
	Algorithm string `toml:"algorithm"`
	Encoding  string `toml:"encoding"`
}

// RawName returns the name of the entry's byte-array entry point.
func (e Entry) RawName() string { return e.Name + "_literal" }

// HexName returns the name of the entry's hex-string entry point.
func (e Entry) HexName() string { return e.Name + "_hex_literal" }

// Default returns the built-in configuration: sha3 (SHA3-256) and
// sha3_512 (SHA3-512), each able to nest all four entry points.
func Default() *Manifest {
	m := &Manifest{
		Entries: []Entry{
			{Name: "sha3", Algorithm: "sha3-256"},
			{Name: "sha3_512", Algorithm: "sha3-512"},
		},
	}
	m.applyDefaults()
	return m
}

// Load parses the hashlit.toml file in dir.
func Load(dir string) (*Manifest, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// LoadFile parses and validates a manifest at an explicit path.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		log.Warningf("%s: unknown key %s", path, key)
	}

	m.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}

	m.applyDefaults()
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	log.Debugf("loaded %s: %d entries", path, len(m.Entries))
	return &m, nil
}

func (m *Manifest) applyDefaults() {
	if m.Generate.Output == "" {
		m.Generate.Output = DefaultOutput
	}
	if m.Generate.MaxDepth == 0 {
		m.Generate.MaxDepth = compiler.DefaultMaxDepth
	}
	if len(m.Entries) == 0 {
		m.Entries = Default().Entries
	}
}

// FindAndLoad walks up from startDir to find a hashlit.toml file,
// then loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// Resolve picks the manifest for a package directory: the explicit file
// when configPath is set, otherwise the nearest hashlit.toml above dir,
// otherwise Default().
func Resolve(configPath, dir string) (*Manifest, error) {
	if configPath != "" {
		return LoadFile(configPath)
	}
	m, err := FindAndLoad(dir)
	if err != nil {
		return nil, err
	}
	if m == nil {
		log.Debugf("no %s above %s, using defaults", FileName, dir)
		return Default(), nil
	}
	return m, nil
}

// RecordPath returns the absolute path of the configured digest record,
// or "" when none is configured.
func (m *Manifest) RecordPath() string {
	if m.Generate.Record == "" {
		return ""
	}
	if filepath.IsAbs(m.Generate.Record) || m.Dir == "" {
		return m.Generate.Record
	}
	return filepath.Join(m.Dir, m.Generate.Record)
}

// Package record stores the digests a generator run produced, so that a
// later run or an auditor can compare them without re-reading sources.
package record

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fxamacker/cbor/v2"

	"github.com/portal-co/sha3-literal/compiler"
	"github.com/portal-co/sha3-literal/gogen"
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("record: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Record holds the digests of one generator run.
type Record struct {
	Packages []Package `cbor:"1,keyasint,omitempty"`
}

// Package is the digest record of one package.
type Package struct {
	Path    string  `cbor:"1,keyasint"`
	Entries []Entry `cbor:"2,keyasint,omitempty"`
}

// Entry is one generated declaration.
type Entry struct {
	Name   string `cbor:"1,keyasint"`
	Entry  string `cbor:"2,keyasint"` // entry point, e.g. sha3_hex_literal
	Pos    string `cbor:"3,keyasint"` // file:line:col of the expression
	Digest []byte `cbor:"4,keyasint"`
	Hex    bool   `cbor:"5,keyasint,omitempty"`
}

// Add records an expanded package, replacing any earlier record of the
// same import path. Packages and entries are kept sorted so the encoding
// does not depend on load order.
func (r *Record) Add(res *gogen.Result) {
	p := Package{Path: res.Package.ImportPath}
	for _, d := range res.Decls {
		_, isHex := gogen.Literal(d.Node).(*compiler.HexString)
		p.Entries = append(p.Entries, Entry{
			Name:   d.Directive.Name,
			Entry:  d.Entry.Name,
			Pos:    d.Directive.Span().String(),
			Digest: d.Digest(),
			Hex:    isHex,
		})
	}
	sort.Slice(p.Entries, func(i, j int) bool { return p.Entries[i].Name < p.Entries[j].Name })

	for i := range r.Packages {
		if r.Packages[i].Path == p.Path {
			r.Packages[i] = p
			return
		}
	}
	r.Packages = append(r.Packages, p)
	sort.Slice(r.Packages, func(i, j int) bool { return r.Packages[i].Path < r.Packages[j].Path })
}

// Lookup returns the entry for a declaration in the package at path.
func (r *Record) Lookup(path, name string) (Entry, bool) {
	for _, p := range r.Packages {
		if p.Path != path {
			continue
		}
		for _, e := range p.Entries {
			if e.Name == name {
				return e, true
			}
		}
	}
	return Entry{}, false
}

// Marshal serializes a Record to canonical CBOR bytes.
func Marshal(r *Record) ([]byte, error) {
	return cborEncMode.Marshal(r)
}

// Unmarshal deserializes a Record from CBOR bytes.
func Unmarshal(data []byte) (*Record, error) {
	var r Record
	if err := cbor.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("record: unmarshal: %w", err)
	}
	return &r, nil
}

// WriteFile writes r to path.
func WriteFile(path string, r *Record) error {
	data, err := Marshal(r)
	if err != nil {
		return fmt.Errorf("record: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	return nil
}

// ReadFile reads a record written by WriteFile.
func ReadFile(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}
	return Unmarshal(data)
}

// WriteText prints r in a line-oriented form, one declaration per line.
func (r *Record) WriteText(w io.Writer) error {
	for _, p := range r.Packages {
		if _, err := fmt.Fprintln(w, p.Path); err != nil {
			return err
		}
		for _, e := range p.Entries {
			if _, err := fmt.Fprintf(w, "\t%s\t%s\t%x\t%s\n", e.Name, e.Entry, e.Digest, e.Pos); err != nil {
				return err
			}
		}
	}
	return nil
}

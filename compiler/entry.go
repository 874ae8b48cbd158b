package compiler

import "fmt"

// Mode selects how an entry point emits its digest.
type Mode int

const (
	// ModeRaw emits a byte array literal.
	ModeRaw Mode = iota
	// ModeHex emits a lowercase hex string literal.
	ModeHex
)

func (m Mode) String() string {
	switch m {
	case ModeRaw:
		return "raw"
	case ModeHex:
		return "hex"
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// EntryPoint is one named invocation form, such as sha3_literal or
// sha3_hex_literal: a digest algorithm, an emission mode, and the handler
// registry its nested invocations resolve against.
type EntryPoint struct {
	Name     string
	Mode     Mode
	Digest   DigestFunc
	Handlers Registry
}

// Expand parses src as an invocation of e and returns the output node.
// at locates src in its file so that errors and spans point into the
// original source.
func (e *EntryPoint) Expand(file, src string, at Position, opts Options) (Node, error) {
	lit, err := Parse(file, src, at, e.Handlers, opts)
	if err != nil {
		return nil, err
	}
	return e.Emit(lit), nil
}

// Emit digests an already parsed invocation and threads it through its
// continuation.
func (e *EntryPoint) Emit(lit *HashLiteral) Node {
	var n Node
	switch e.Mode {
	case ModeHex:
		n = EmitHex(lit.Lit, e.Digest)
	default:
		n = EmitRaw(lit.Lit, e.Digest)
	}
	return Thread(n, lit.Continuation)
}

// Table is the ordered set of entry points a configuration exposes.
type Table []*EntryPoint

// Lookup returns the entry point with the given name.
func (t Table) Lookup(name string) (*EntryPoint, bool) {
	for _, e := range t {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// Names lists the entry point names in order.
func (t Table) Names() []string {
	names := make([]string, len(t))
	for i, e := range t {
		names[i] = e.Name
	}
	return names
}

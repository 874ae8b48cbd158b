package hash

import (
	"encoding/hex"
	"fmt"

	"github.com/portal-co/sha3-literal/compiler"
)

// Encoding selects how a transform presents its digest.
type Encoding int

const (
	// Raw yields the digest bytes.
	Raw Encoding = iota
	// Hex yields the ASCII bytes of the lowercase hex digest.
	Hex
)

func (e Encoding) String() string {
	switch e {
	case Raw:
		return "raw"
	case Hex:
		return "hex"
	}
	return fmt.Sprintf("Encoding(%d)", e)
}

// ParseEncoding parses "raw" or "hex". The empty string means raw.
func ParseEncoding(s string) (Encoding, error) {
	switch s {
	case "", "raw":
		return Raw, nil
	case "hex":
		return Hex, nil
	}
	return Raw, fmt.Errorf("unknown encoding %q (want raw or hex)", s)
}

// Mode returns the entry-point emission mode matching e.
func (e Encoding) Mode() compiler.Mode {
	if e == Hex {
		return compiler.ModeHex
	}
	return compiler.ModeRaw
}

// Transform digests a nested invocation's bytes with Algorithm and
// presents them in Encoding. The span passes through unchanged.
type Transform struct {
	Algorithm Algorithm
	Encoding  Encoding
}

// Apply implements compiler.Transform.
func (t Transform) Apply(data []byte, span compiler.Span) ([]byte, compiler.Span) {
	sum := t.Algorithm.Sum(data)
	if t.Encoding == Hex {
		return []byte(hex.EncodeToString(sum)), span
	}
	return sum, span
}

func (t Transform) String() string {
	return t.Algorithm.Name + "/" + t.Encoding.String()
}

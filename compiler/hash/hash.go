// Package hash provides the digest algorithms hash literals are computed
// with and the transforms nested invocations apply.
package hash

import (
	"crypto/sha256"
	"crypto/sha512"
	gohash "hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/portal-co/sha3-literal/compiler"
)

// Algorithm is a named digest algorithm.
type Algorithm struct {
	Name string
	Size int // digest length in bytes
	Sum  compiler.DigestFunc
}

// ---------------------------------------------------------------------------
// Algorithm names appear in hashlit.toml files. Once published, a name must
// keep meaning the same function.
// ---------------------------------------------------------------------------

var algorithms = []Algorithm{
	{Name: "sha3-224", Size: 28, Sum: func(b []byte) []byte { s := sha3.Sum224(b); return s[:] }},
	{Name: "sha3-256", Size: 32, Sum: func(b []byte) []byte { s := sha3.Sum256(b); return s[:] }},
	{Name: "sha3-384", Size: 48, Sum: func(b []byte) []byte { s := sha3.Sum384(b); return s[:] }},
	{Name: "sha3-512", Size: 64, Sum: func(b []byte) []byte { s := sha3.Sum512(b); return s[:] }},
	{Name: "keccak-256", Size: 32, Sum: sum(sha3.NewLegacyKeccak256)},
	{Name: "sha256", Size: 32, Sum: func(b []byte) []byte { s := sha256.Sum256(b); return s[:] }},
	{Name: "sha512", Size: 64, Sum: func(b []byte) []byte { s := sha512.Sum512(b); return s[:] }},
	{Name: "blake2b-256", Size: 32, Sum: func(b []byte) []byte { s := blake2b.Sum256(b); return s[:] }},
	{Name: "blake2b-512", Size: 64, Sum: func(b []byte) []byte { s := blake2b.Sum512(b); return s[:] }},
}

func sum(newHash func() gohash.Hash) compiler.DigestFunc {
	return func(b []byte) []byte {
		h := newHash()
		h.Write(b)
		return h.Sum(nil)
	}
}

// Lookup returns the algorithm registered under name.
func Lookup(name string) (Algorithm, bool) {
	for _, a := range algorithms {
		if a.Name == name {
			return a, true
		}
	}
	return Algorithm{}, false
}

// All returns every registered algorithm in a stable order.
func All() []Algorithm {
	return append([]Algorithm(nil), algorithms...)
}

// Names returns the registered algorithm names.
func Names() []string {
	names := make([]string, len(algorithms))
	for i, a := range algorithms {
		names[i] = a.Name
	}
	return names
}

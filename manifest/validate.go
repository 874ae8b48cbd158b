package manifest

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"github.com/portal-co/sha3-literal/compiler/hash"
)

// builtins are the include forms the resolver handles before consulting
// any registry; a handler with one of these names could never be reached.
var builtins = map[string]bool{
	"include":       true,
	"include_bytes": true,
	"include_str":   true,
}

// Validate checks names, algorithms and encodings, and that every nested
// reference names an entry point of the manifest. All problems found are
// reported together.
func (m *Manifest) Validate() error {
	var errs []error
	fail := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if m.Generate.MaxDepth < 0 {
		fail("generate: max-depth must not be negative")
	}
	if m.Generate.Output != "" && !strings.HasSuffix(m.Generate.Output, ".go") {
		fail("generate: output %q must be a .go file name", m.Generate.Output)
	}

	points := make(map[string]bool)
	for _, e := range m.Entries {
		if !token.IsIdentifier(e.Name) {
			fail("entry %q: name is not a Go identifier", e.Name)
			continue
		}
		for _, name := range []string{e.RawName(), e.HexName()} {
			if points[name] {
				fail("entry %q: entry point %s is declared twice", e.Name, name)
			}
			points[name] = true
		}
		if _, ok := hash.Lookup(e.Algorithm); !ok {
			fail("entry %q: unknown algorithm %q", e.Name, e.Algorithm)
		}
	}

	for _, e := range m.Entries {
		if e.Isolated && len(e.Nested) > 0 {
			fail("entry %q: isolated entries cannot list nested entry points", e.Name)
		}
		for _, n := range e.Nested {
			if !points[n] {
				fail("entry %q: nested %q is not an entry point", e.Name, n)
			}
		}
		for _, h := range e.Handlers {
			switch {
			case !token.IsIdentifier(h.Name):
				fail("entry %q: handler %q: name is not a Go identifier", e.Name, h.Name)
			case builtins[h.Name]:
				fail("entry %q: handler %q: name is reserved", e.Name, h.Name)
			}
			if _, ok := hash.Lookup(h.Algorithm); !ok {
				fail("entry %q: handler %q: unknown algorithm %q", e.Name, h.Name, h.Algorithm)
			}
			if _, err := hash.ParseEncoding(h.Encoding); err != nil {
				fail("entry %q: handler %q: %v", e.Name, h.Name, err)
			}
		}
	}

	return errors.Join(errs...)
}

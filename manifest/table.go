package manifest

import (
	"fmt"

	"github.com/portal-co/sha3-literal/compiler"
	"github.com/portal-co/sha3-literal/compiler/hash"
)

// point is one entry point before its registry is attached.
type point struct {
	name string
	alg  hash.Algorithm
	enc  hash.Encoding
}

// Table builds the entry points the manifest declares, two per entry in
// declaration order. The manifest must have passed Validate.
func (m *Manifest) Table() (compiler.Table, error) {
	var points []point
	byName := make(map[string]point)
	for _, e := range m.Entries {
		alg, ok := hash.Lookup(e.Algorithm)
		if !ok {
			return nil, fmt.Errorf("entry %q: unknown algorithm %q", e.Name, e.Algorithm)
		}
		for _, p := range []point{
			{name: e.RawName(), alg: alg, enc: hash.Raw},
			{name: e.HexName(), alg: alg, enc: hash.Hex},
		} {
			points = append(points, p)
			byName[p.name] = p
		}
	}

	var table compiler.Table
	for i, e := range m.Entries {
		reg, err := m.registry(e, points, byName)
		if err != nil {
			return nil, err
		}
		for _, p := range points[2*i : 2*i+2] {
			table = append(table, &compiler.EntryPoint{
				Name:     p.name,
				Mode:     p.enc.Mode(),
				Digest:   p.alg.Sum,
				Handlers: reg,
			})
		}
	}
	return table, nil
}

// registry assembles the nested handlers of e: its nested entry points
// first, then its explicit handlers.
func (m *Manifest) registry(e Entry, points []point, byName map[string]point) (compiler.Registry, error) {
	var reg compiler.Registry

	switch {
	case e.Isolated:
	case e.Nested == nil:
		for _, p := range points {
			reg = append(reg, handler(p))
		}
	default:
		for _, n := range e.Nested {
			p, ok := byName[n]
			if !ok {
				return nil, fmt.Errorf("entry %q: nested %q is not an entry point", e.Name, n)
			}
			reg = append(reg, handler(p))
		}
	}

	for _, h := range e.Handlers {
		alg, ok := hash.Lookup(h.Algorithm)
		if !ok {
			return nil, fmt.Errorf("entry %q: handler %q: unknown algorithm %q", e.Name, h.Name, h.Algorithm)
		}
		enc, err := hash.ParseEncoding(h.Encoding)
		if err != nil {
			return nil, fmt.Errorf("entry %q: handler %q: %w", e.Name, h.Name, err)
		}
		reg = append(reg, handler(point{name: h.Name, alg: alg, enc: enc}))
	}
	return reg, nil
}

func handler(p point) compiler.Handler {
	return compiler.Handler{Name: p.name, Transform: hash.Transform{Algorithm: p.alg, Encoding: p.enc}}
}

// Options returns resolver options for sources in dir.
func (m *Manifest) Options(dir string) compiler.Options {
	return compiler.Options{Files: compiler.DirReader(dir), MaxDepth: m.Generate.MaxDepth}
}

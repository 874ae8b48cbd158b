package gogen

import (
	"encoding/hex"

	"github.com/tliron/commonlog"

	"github.com/portal-co/sha3-literal/compiler"
)

var log = commonlog.GetLogger("hashlit.gogen")

// Generator expands directives against a table of entry points.
type Generator struct {
	Table compiler.Table

	// Options configures resolution. When Files is nil, include paths are
	// read relative to each package's directory.
	Options compiler.Options
}

// Decl is one expanded directive.
type Decl struct {
	Directive *Directive
	Entry     *compiler.EntryPoint
	Node      compiler.Node
}

// Const reports whether the declaration can be a constant: a hex string
// that is not passed through a continuation.
func (d *Decl) Const() bool {
	_, ok := d.Node.(*compiler.HexString)
	return ok
}

// Digest returns the raw digest bytes the declaration carries.
func (d *Decl) Digest() []byte {
	switch n := Literal(d.Node).(type) {
	case *compiler.ByteArray:
		return n.Bytes
	case *compiler.HexString:
		b, _ := hex.DecodeString(n.Text)
		return b
	}
	return nil
}

// Literal returns the digest literal inside n, unwrapping a continuation
// call.
func Literal(n compiler.Node) compiler.Node {
	if call, ok := n.(*compiler.Call); ok && len(call.Args) > 0 {
		return call.Args[0]
	}
	return n
}

// Result is the expansion of a whole package.
type Result struct {
	Package *PackageModel
	Decls   []*Decl
}

// Package expands every directive of pkg. All errors are collected; if
// there are any, the returned error is a sorted compiler.ErrorList and no
// result is produced.
func (g *Generator) Package(pkg *PackageModel) (*Result, error) {
	opts := g.Options
	if opts.Files == nil {
		opts.Files = compiler.DirReader(pkg.Dir)
	}

	res := &Result{Package: pkg}
	seen := make(map[string]*Directive)
	var errs compiler.ErrorList

	for _, d := range pkg.Directives() {
		if prev, ok := seen[d.Name]; ok {
			errs.Add(&compiler.ParseError{
				Span: d.Span(),
				Kind: compiler.KindSyntax,
				Msg:  d.Name + " redeclared; previous directive at " + prev.Span().String(),
			})
			continue
		}
		seen[d.Name] = d

		decl, err := g.Expand(d, opts)
		if err != nil {
			errs.Add(err)
			continue
		}
		res.Decls = append(res.Decls, decl)
	}

	if len(errs) > 0 {
		errs.Sort()
		return nil, errs
	}
	log.Debugf("package %s: %d declarations", pkg.ImportPath, len(res.Decls))
	return res, nil
}

// Expand expands a single directive.
func (g *Generator) Expand(d *Directive, opts compiler.Options) (*Decl, *compiler.ParseError) {
	e, ok := g.Table.Lookup(d.Entry)
	if !ok {
		return nil, &compiler.ParseError{
			Span: d.Span(),
			Kind: compiler.KindSyntax,
			Msg:  "unknown entry point " + d.Entry,
		}
	}

	n, err := e.Expand(d.File, d.Expr, d.At, opts)
	if err != nil {
		pe, ok := err.(*compiler.ParseError)
		if !ok {
			pe = &compiler.ParseError{Span: d.Span(), Kind: compiler.KindSyntax, Msg: "expansion failed", Err: err}
		}
		if pe.Span.IsCallSite() {
			pe.Span = d.Span()
		}
		return nil, pe
	}
	log.Debugf("%s: %s %s", d.Span(), d.Entry, d.Name)
	return &Decl{Directive: d, Entry: e, Node: n}, nil
}

package gogen

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/dave/jennifer/jen"

	"github.com/portal-co/sha3-literal/compiler"
)

// Header is the generated-code marker at the top of every output file.
const Header = "Code generated by hashlit. DO NOT EDIT."

// Render produces the formatted Go source for an expanded package.
func Render(res *Result) ([]byte, error) {
	pkg := res.Package
	f := jen.NewFilePathName(pkg.ImportPath, pkg.Name)
	f.HeaderComment(Header)

	for _, file := range pkg.Files {
		for alias := range file.Aliases {
			f.ImportAlias(file.Imports[alias], alias)
		}
	}

	for _, d := range res.Decls {
		f.Add(renderDecl(d))
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", pkg.ImportPath, err)
	}
	return buf.Bytes(), nil
}

// renderDecl emits
//
//	//line file.go:12:5
//	var Name = <expr>
//
// so that anything reported against the declaration points back at the
// literal in the directive.
func renderDecl(d *Decl) jen.Code {
	stmt := jen.Comment(lineDirective(d)).Line()
	if d.Const() {
		stmt = stmt.Const()
	} else {
		stmt = stmt.Var()
	}
	return stmt.Id(d.Directive.Name).Op("=").Add(renderNode(d.Node, d.Directive.Imports))
}

// lineDirective locates the declaration at its literal, or at the
// directive's expression when the literal lives elsewhere (an included
// file, or the call site).
func lineDirective(d *Decl) string {
	span := Literal(d.Node).Span()
	if span.IsCallSite() || span.File != d.Directive.File {
		span = d.Directive.Span()
	}
	return fmt.Sprintf("//line %s:%d:%d", filepath.Base(span.File), span.Start.Line, span.Start.Column)
}

func renderNode(n compiler.Node, imports map[string]string) jen.Code {
	switch n := n.(type) {
	case *compiler.ByteArray:
		items := make([]jen.Code, len(n.Bytes))
		for i, b := range n.Bytes {
			items[i] = jen.Op(fmt.Sprintf("0x%02x", b))
		}
		return jen.Index(jen.Lit(len(n.Bytes))).Byte().Values(items...)

	case *compiler.HexString:
		return jen.Lit(n.Text)

	case *compiler.Tokens:
		return renderTokens(n.Toks, imports)

	case *compiler.Call:
		args := make([]jen.Code, len(n.Args))
		for i, a := range n.Args {
			args[i] = renderNode(a, imports)
		}
		return renderPath(n.Path, imports).Call(args...)
	}
	return jen.Null()
}

// renderPath renders a callee. A leading element naming an import of the
// directive's file becomes a qualified reference so the import is carried
// into the generated file.
func renderPath(path []string, imports map[string]string) *jen.Statement {
	if len(path) >= 2 {
		if importPath, ok := imports[path[0]]; ok {
			s := jen.Qual(importPath, path[1])
			for _, sel := range path[2:] {
				s = s.Dot(sel)
			}
			return s
		}
	}
	s := jen.Id(path[0])
	for _, sel := range path[1:] {
		s = s.Dot(sel)
	}
	return s
}

// renderTokens reproduces continuation arguments. Spacing is left to
// gofmt; only pkg.Name selectors on imports are rewritten.
func renderTokens(toks []compiler.Token, imports map[string]string) jen.Code {
	stmt := &jen.Statement{}
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		if tok.Type == compiler.TokenIdentifier &&
			i+2 < len(toks) &&
			toks[i+1].Type == compiler.TokenPeriod &&
			toks[i+2].Type == compiler.TokenIdentifier &&
			(i == 0 || toks[i-1].Type != compiler.TokenPeriod) {
			if importPath, ok := imports[tok.Literal]; ok {
				stmt.Add(jen.Qual(importPath, toks[i+2].Literal))
				i += 2
				continue
			}
		}
		stmt.Add(jen.Op(tok.Literal))
	}
	return stmt
}

// Package gogen finds //hashlit: directives in Go packages and generates
// the declarations they describe.
package gogen

import (
	"go/token"

	"github.com/portal-co/sha3-literal/compiler"
)

// Prefix starts every directive comment.
const Prefix = "//hashlit:"

// PackageModel is the in-memory representation of a package's directives.
type PackageModel struct {
	ImportPath string
	Name       string // short package name (e.g., "config")
	Dir        string
	Files      []FileModel
}

// FileModel holds the directives of one source file and the imports they
// may refer to.
type FileModel struct {
	Path       string
	Imports    map[string]string // local name -> import path
	Aliases    map[string]bool   // local names written explicitly in the import
	Directives []Directive
}

// Directive is one //hashlit:<entry> <Name> <expression> comment.
type Directive struct {
	Entry string
	Name  string
	Expr  string

	// At locates the first byte of Expr in the source file.
	At compiler.Position
	// File is the path of the file holding the directive.
	File string
	// Comment is the position of the comment in the loading FileSet.
	Comment token.Pos
	// Imports is the import table of the directive's file.
	Imports map[string]string
}

// Span returns the span of the directive's expression.
func (d *Directive) Span() compiler.Span {
	end := d.At
	end.Offset += len(d.Expr)
	end.Column += len(d.Expr)
	return compiler.MakeSpan(d.File, d.At, end)
}

// Directives returns every directive of the package in file order.
func (p *PackageModel) Directives() []*Directive {
	var out []*Directive
	for i := range p.Files {
		for j := range p.Files[i].Directives {
			out = append(out, &p.Files[i].Directives[j])
		}
	}
	return out
}

package gogen

import (
	"fmt"
	"go/ast"
	"go/token"
	"strconv"
	"strings"

	"github.com/portal-co/sha3-literal/compiler"
)

// ScanFile collects the directives and imports of a parsed file. names
// maps import paths to their declared package names when known; paths
// missing from it fall back to ImportName. Malformed directives are
// reported as errors and skipped.
func ScanFile(fset *token.FileSet, f *ast.File, names map[string]string) (*FileModel, compiler.ErrorList) {
	fm := &FileModel{
		Path:    fset.Position(f.Package).Filename,
		Imports: make(map[string]string),
		Aliases: make(map[string]bool),
	}

	for _, imp := range f.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		local := names[path]
		if local == "" {
			local = ImportName(path)
		}
		if imp.Name != nil {
			if imp.Name.Name == "_" || imp.Name.Name == "." {
				continue
			}
			local = imp.Name.Name
			fm.Aliases[local] = true
		}
		fm.Imports[local] = path
	}

	var errs compiler.ErrorList
	for _, group := range f.Comments {
		for _, c := range group.List {
			if !strings.HasPrefix(c.Text, Prefix) {
				continue
			}
			d, err := parseDirective(fset, c)
			if err != nil {
				errs.Add(err)
				continue
			}
			d.Imports = fm.Imports
			fm.Directives = append(fm.Directives, *d)
		}
	}
	return fm, errs
}

// parseDirective splits "//hashlit:<entry> <Name> <expression>".
func parseDirective(fset *token.FileSet, c *ast.Comment) (*Directive, *compiler.ParseError) {
	p := fset.Position(c.Slash)
	at := compiler.Position{Offset: p.Offset, Line: p.Line, Column: p.Column}
	span := compiler.MakeSpan(p.Filename, at, at)

	malformed := func(format string, args ...interface{}) *compiler.ParseError {
		return &compiler.ParseError{
			Span: span,
			Kind: compiler.KindSyntax,
			Msg:  "malformed directive: " + fmt.Sprintf(format, args...),
		}
	}

	rest := c.Text[len(Prefix):]
	if strings.HasPrefix(rest, " ") || strings.HasPrefix(rest, "\t") {
		return nil, malformed("missing entry point name")
	}
	entry, rest := field(rest)
	if entry == "" {
		return nil, malformed("missing entry point name")
	}
	name, rest := field(rest)
	if name == "" {
		return nil, malformed("missing declaration name after %s", entry)
	}
	if !token.IsIdentifier(name) {
		return nil, malformed("%q is not a Go identifier", name)
	}
	expr := strings.TrimSpace(rest)
	if expr == "" {
		return nil, malformed("missing expression for %s", name)
	}

	// The expression keeps its exact place in the line so spans computed
	// by the lexer point into the real source.
	idx := len(c.Text) - len(strings.TrimLeft(rest, " \t"))
	at.Offset += idx
	at.Column += idx

	return &Directive{
		Entry:   entry,
		Name:    name,
		Expr:    expr,
		At:      at,
		File:    p.Filename,
		Comment: c.Slash,
	}, nil
}

// field splits off the first blank-separated word of s.
func field(s string) (string, string) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}

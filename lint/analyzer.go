// Package lint implements a go/analysis analyzer that expands every
// //hashlit: directive of a package and reports the ones that would fail
// generation, at the position of the offending expression fragment.
//
// The analyzer reads the same hashlit.toml as the generator: the nearest
// one above the package directory, or the file given with -config.
package lint

import (
	"go/ast"
	"go/token"
	"path/filepath"

	"golang.org/x/tools/go/analysis"

	"github.com/portal-co/sha3-literal/compiler"
	"github.com/portal-co/sha3-literal/gogen"
	"github.com/portal-co/sha3-literal/manifest"
)

// Diagnostic categories.
const (
	CategoryDirective = "directive" // malformed or duplicate directive
	CategoryExpansion = "expansion" // the expression does not expand
)

var configPath string

// Analyzer is the hashlit analysis pass. Use it with singlechecker or
// multichecker, or via go vet -vettool.
var Analyzer = &analysis.Analyzer{
	Name: "hashlit",
	Doc:  "reports //hashlit: directives whose expressions do not expand",
	URL:  "https://github.com/portal-co/sha3-literal/lint",
	Run:  run,
}

func init() {
	Analyzer.Flags.StringVar(&configPath, "config", "",
		"path to hashlit.toml (default: nearest one above each package)")
}

func run(pass *analysis.Pass) (interface{}, error) {
	var (
		files []gogen.FileModel
		tfs   = make(map[string]*token.File)
		dir   string
	)
	for _, f := range pass.Files {
		if ast.IsGenerated(f) {
			continue
		}
		tf := pass.Fset.File(f.Pos())
		if tf == nil {
			continue
		}
		tfs[tf.Name()] = tf
		if dir == "" {
			dir = filepath.Dir(tf.Name())
		}

		fm, errs := gogen.ScanFile(pass.Fset, f, importNames(pass))
		for _, err := range errs {
			report(pass, tfs, token.NoPos, CategoryDirective, err)
		}
		if len(fm.Directives) > 0 {
			files = append(files, *fm)
		}
	}
	if len(files) == 0 {
		return nil, nil
	}

	m, err := manifest.Resolve(configPath, dir)
	if err != nil {
		return nil, err
	}
	table, err := m.Table()
	if err != nil {
		return nil, err
	}
	g := &gogen.Generator{Table: table}
	opts := m.Options(dir)

	pkg := &gogen.PackageModel{ImportPath: pass.Pkg.Path(), Name: pass.Pkg.Name(), Dir: dir, Files: files}
	seen := make(map[string]*gogen.Directive)
	for _, d := range pkg.Directives() {
		if prev, ok := seen[d.Name]; ok {
			report(pass, tfs, d.Comment, CategoryDirective, &compiler.ParseError{
				Span: d.Span(),
				Kind: compiler.KindSyntax,
				Msg:  d.Name + " redeclared; previous directive at " + prev.Span().String(),
			})
			continue
		}
		seen[d.Name] = d

		if _, err := g.Expand(d, opts); err != nil {
			report(pass, tfs, d.Comment, CategoryExpansion, err)
		}
	}
	return nil, nil
}

// importNames maps the import paths of the package to their declared
// names, which the type checker already knows.
func importNames(pass *analysis.Pass) map[string]string {
	names := make(map[string]string)
	for _, imp := range pass.Pkg.Imports() {
		names[imp.Path()] = imp.Name()
	}
	return names
}

// report emits err at its span when the span lies in a file of the
// package. Errors located elsewhere, such as inside an included file, are
// reported at fallback with their full location in the message.
func report(pass *analysis.Pass, tfs map[string]*token.File, fallback token.Pos, category string, err *compiler.ParseError) {
	msg := err.Msg
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}

	pos := fallback
	if tf, ok := tfs[err.Span.File]; ok && err.Span.Start.Offset <= tf.Size() {
		pos = tf.Pos(err.Span.Start.Offset)
	} else {
		msg = err.Error()
	}

	pass.Report(analysis.Diagnostic{Pos: pos, Category: category, Message: msg})
}

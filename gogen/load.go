package gogen

import (
	"fmt"
	"go/ast"
	"go/token"
	"path/filepath"

	"golang.org/x/tools/go/packages"

	"github.com/portal-co/sha3-literal/compiler"
)

// Load loads the packages matching patterns, relative to dir, and scans
// their non-test files for directives. Files for which skip reports true
// (the generator's own output) are ignored; skip may be nil.
func Load(dir string, skip func(filename string) bool, patterns ...string) ([]*PackageModel, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax | packages.NeedImports,
		Dir:  dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading %v: %w", patterns, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found for %v", patterns)
	}

	var (
		models []*PackageModel
		errs   compiler.ErrorList
	)
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("package errors: %v", pkg.Errors)
		}

		names := make(map[string]string, len(pkg.Imports))
		for path, imp := range pkg.Imports {
			names[path] = imp.Name
		}

		files := pkg.Syntax
		if skip != nil {
			files = withoutFiles(pkg.Fset, files, skip)
		}
		m, scanErrs := Scan(pkg.Fset, files, names)
		errs = append(errs, scanErrs...)
		m.ImportPath = pkg.PkgPath
		m.Name = pkg.Name
		if len(pkg.GoFiles) > 0 {
			m.Dir = filepath.Dir(pkg.GoFiles[0])
		}
		models = append(models, m)
	}

	if len(errs) > 0 {
		errs.Sort()
		return nil, errs
	}
	return models, nil
}

// Scan builds a package model from already parsed files. Only files with
// directives are kept. ImportPath and Dir are left for the caller.
func Scan(fset *token.FileSet, files []*ast.File, names map[string]string) (*PackageModel, compiler.ErrorList) {
	m := &PackageModel{}
	var errs compiler.ErrorList
	for _, f := range files {
		fm, fileErrs := ScanFile(fset, f, names)
		errs = append(errs, fileErrs...)
		if len(fm.Directives) > 0 {
			m.Files = append(m.Files, *fm)
		}
		if m.Name == "" {
			m.Name = f.Name.Name
		}
	}
	return m, errs
}

func withoutFiles(fset *token.FileSet, files []*ast.File, skip func(string) bool) []*ast.File {
	var out []*ast.File
	for _, f := range files {
		if skip(fset.Position(f.Package).Filename) {
			continue
		}
		out = append(out, f)
	}
	return out
}

package gogen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/portal-co/sha3-literal/compiler"
)

func parseSrc(t *testing.T, fset *token.FileSet, name, src string) *ast.File {
	t.Helper()
	f, err := parser.ParseFile(fset, name, src, parser.ParseComments)
	if err != nil {
		t.Fatalf("parsing %s: %v", name, err)
	}
	return f
}

func TestScanFile(t *testing.T) {
	src := `package demo

import (
	"os"
	v "github.com/acme/verify"
	_ "embed"
	"github.com/fxamacker/cbor/v2"
)

//hashlit:sha3_hex_literal Pin "abc"
var _ = os.Args

func f() {
	//hashlit:sha3_literal   Blob	 [1, 2, 3] => v.Check(x)
}

// hashlit:sha3_literal Ignored "spaced out prefix"
/*hashlit:sha3_literal Ignored "block"*/
`
	fset := token.NewFileSet()
	fm, errs := ScanFile(fset, parseSrc(t, fset, "demo.go", src), nil)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	wantImports := map[string]string{
		"os":   "os",
		"v":    "github.com/acme/verify",
		"cbor": "github.com/fxamacker/cbor/v2",
	}
	if len(fm.Imports) != len(wantImports) {
		t.Errorf("imports = %v, want %v", fm.Imports, wantImports)
	}
	for name, path := range wantImports {
		if fm.Imports[name] != path {
			t.Errorf("import %s = %q, want %q", name, fm.Imports[name], path)
		}
	}
	if !fm.Aliases["v"] || fm.Aliases["os"] {
		t.Errorf("aliases = %v, want only v", fm.Aliases)
	}

	if len(fm.Directives) != 2 {
		t.Fatalf("got %d directives, want 2", len(fm.Directives))
	}

	pin := fm.Directives[0]
	if pin.Entry != "sha3_hex_literal" || pin.Name != "Pin" || pin.Expr != `"abc"` {
		t.Errorf("directive 0 = %+v", pin)
	}
	if pin.At.Line != 10 || pin.At.Column != 32 {
		t.Errorf("directive 0 at %d:%d, want 10:32", pin.At.Line, pin.At.Column)
	}
	if pin.File != "demo.go" {
		t.Errorf("directive 0 file = %q", pin.File)
	}
	if got := src[pin.At.Offset : pin.At.Offset+len(pin.Expr)]; got != pin.Expr {
		t.Errorf("offset points at %q, want %q", got, pin.Expr)
	}

	blob := fm.Directives[1]
	if blob.Name != "Blob" || blob.Expr != `[1, 2, 3] => v.Check(x)` {
		t.Errorf("directive 1 = %+v", blob)
	}
	if got := src[blob.At.Offset : blob.At.Offset+len(blob.Expr)]; got != blob.Expr {
		t.Errorf("offset points at %q, want %q", got, blob.Expr)
	}
	if blob.Imports["v"] != "github.com/acme/verify" {
		t.Error("directive should carry its file's imports")
	}
}

func TestScanFileKnownNames(t *testing.T) {
	src := `package demo

import "example.com/go-thing"

//hashlit:sha3_literal X "x"
`
	fset := token.NewFileSet()
	fm, _ := ScanFile(fset, parseSrc(t, fset, "demo.go", src), map[string]string{"example.com/go-thing": "gothing"})
	if fm.Imports["gothing"] != "example.com/go-thing" {
		t.Errorf("imports = %v, want the declared package name", fm.Imports)
	}
}

func TestScanFileMalformed(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{`//hashlit:`, "missing entry point name"},
		{`//hashlit: sha3_literal X "a"`, "missing entry point name"},
		{`//hashlit:sha3_literal`, "missing declaration name after sha3_literal"},
		{`//hashlit:sha3_literal 1X "a"`, `"1X" is not a Go identifier`},
		{`//hashlit:sha3_literal X   `, "missing expression for X"},
	}

	for _, tc := range tests {
		src := "package demo\n\n" + tc.line + "\n"
		fset := token.NewFileSet()
		fm, errs := ScanFile(fset, parseSrc(t, fset, "bad.go", src), nil)
		if len(fm.Directives) != 0 {
			t.Errorf("%s: produced directives %+v", tc.line, fm.Directives)
		}
		if len(errs) != 1 {
			t.Errorf("%s: got %d errors, want 1", tc.line, len(errs))
			continue
		}
		if errs[0].Kind != compiler.KindSyntax {
			t.Errorf("%s: kind %v", tc.line, errs[0].Kind)
		}
		if !strings.HasPrefix(errs[0].Error(), "bad.go:3:1: malformed directive: ") || !strings.Contains(errs[0].Error(), tc.want) {
			t.Errorf("%s: error %q, want %q", tc.line, errs[0].Error(), tc.want)
		}
	}
}

func TestImportName(t *testing.T) {
	tests := []struct {
		importPath string
		expected   string
	}{
		{"strings", "strings"},
		{"encoding/json", "json"},
		{"github.com/fxamacker/cbor/v2", "cbor"},
		{"gopkg.in/yaml.v3", "yaml"},
		{"github.com/mattn/go-isatty", "isatty"},
		{"github.com/dave/jennifer/jen", "jen"},
		{"example.com/thing-go", "thing"},
		{"example.com/my-lib", "mylib"},
	}
	for _, tt := range tests {
		t.Run(tt.importPath, func(t *testing.T) {
			if got := ImportName(tt.importPath); got != tt.expected {
				t.Errorf("ImportName(%q) = %q, want %q", tt.importPath, got, tt.expected)
			}
		})
	}
}

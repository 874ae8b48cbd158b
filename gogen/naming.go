package gogen

import (
	"strings"
	"unicode"
)

// ImportName guesses the package name of an import path the way goimports
// does when the package itself is not available: the last path element,
// skipping a major-version suffix, with common "go-" decorations removed.
// e.g., "encoding/json" → "json", "github.com/fxamacker/cbor/v2" → "cbor",
// "gopkg.in/yaml.v3" → "yaml", "github.com/mattn/go-isatty" → "isatty"
func ImportName(importPath string) string {
	parts := strings.Split(importPath, "/")
	last := parts[len(parts)-1]
	if len(parts) > 1 && isMajorVersion(last) {
		last = parts[len(parts)-2]
	}
	if i := strings.Index(last, ".v"); i > 0 && isMajorVersion(last[i+1:]) {
		last = last[:i]
	}
	last = strings.TrimPrefix(last, "go-")
	last = strings.TrimSuffix(last, "-go")
	last = strings.TrimSuffix(last, ".go")

	var b strings.Builder
	for _, r := range last {
		if unicode.IsLetter(r) || r == '_' || (b.Len() > 0 && unicode.IsDigit(r)) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	if b.Len() == 0 {
		return "pkg"
	}
	return b.String()
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

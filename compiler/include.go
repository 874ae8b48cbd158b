package compiler

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"
)

// FileReader reads the files named by include forms. fstest.MapFS and any
// other fs.ReadFileFS satisfy it.
type FileReader interface {
	ReadFile(name string) ([]byte, error)
}

// DirReader reads files from the operating system, resolving relative
// paths against the directory it names.
type DirReader string

// ReadFile reads the named file.
func (d DirReader) ReadFile(name string) ([]byte, error) {
	if d != "" && !filepath.IsAbs(name) {
		name = filepath.Join(string(d), name)
	}
	return os.ReadFile(name)
}

// includePath extracts the single string-literal argument of an include
// form.
func (r *Resolver) includePath(name Token, body *Cursor) (Token, string, *ParseError) {
	tok := body.Peek()
	if tok.Type != TokenString || body.PeekAt(1).Type != TokenEOF {
		return Token{}, "", errorf(tok.Span, KindSyntax, "%s expects a single string literal path", name.Literal)
	}
	path, err := unquote(tok)
	if err != nil {
		return Token{}, "", err
	}
	return tok, path, nil
}

func (r *Resolver) read(pathTok Token, path string) ([]byte, *ParseError) {
	data, err := r.files.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Span: pathTok.Span, Kind: KindIO, Msg: "cannot read " + path, Err: err}
	}
	return data, nil
}

// includeBytes implements include_bytes and include_str. Text mode only
// differs in requiring the contents to be valid UTF-8.
func (r *Resolver) includeBytes(name Token, body *Cursor, text bool) (Resolved, *ParseError) {
	pathTok, path, err := r.includePath(name, body)
	if err != nil {
		return Resolved{}, err
	}
	data, err := r.read(pathTok, path)
	if err != nil {
		return Resolved{}, err
	}
	if text && !utf8.Valid(data) {
		return Resolved{}, errorf(pathTok.Span, KindDecode, "%s is not valid UTF-8 text", path)
	}
	log.Debugf("%s %s: %d bytes", name.Literal, path, len(data))
	return Resolved{Bytes: data, Span: pathTok.Span}, nil
}

// includeSource implements include: the file is parsed as a complete
// literal expression of its own and contributes only its bytes. The span
// stays on the path literal of the including invocation.
func (r *Resolver) includeSource(name Token, body *Cursor) (Resolved, *ParseError) {
	pathTok, path, err := r.includePath(name, body)
	if err != nil {
		return Resolved{}, err
	}

	key := filepath.Clean(path)
	for i, inc := range r.includes {
		if inc == key {
			chain := append(append([]string{}, r.includes[i:]...), key)
			return Resolved{}, errorf(pathTok.Span, KindRecursion, "include cycle: %s", strings.Join(chain, " -> "))
		}
	}

	data, err := r.read(pathTok, path)
	if err != nil {
		return Resolved{}, err
	}
	if !utf8.Valid(data) {
		return Resolved{}, errorf(pathTok.Span, KindDecode, "%s is not valid UTF-8 text", path)
	}

	toks, err := scan(path, string(data), Position{Line: 1, Column: 1})
	if err != nil {
		return Resolved{}, err
	}

	r.includes = append(r.includes, key)
	defer func() { r.includes = r.includes[:len(r.includes)-1] }()

	lit, err := r.parseHashLiteral(NewCursor(toks))
	if err != nil {
		return Resolved{}, err
	}
	log.Debugf("include %s: %d bytes", path, len(lit.Lit.Bytes))
	return Resolved{Bytes: lit.Lit.Bytes, Span: pathTok.Span}, nil
}

func unquote(tok Token) (string, *ParseError) {
	s, err := strconv.Unquote(tok.Literal)
	if err != nil {
		return "", &ParseError{Span: tok.Span, Kind: KindSyntax, Msg: "invalid string literal", Err: err}
	}
	return s, nil
}

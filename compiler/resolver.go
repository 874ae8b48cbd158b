package compiler

import (
	"strconv"
	"strings"

	"github.com/tliron/commonlog"
)

// ---------------------------------------------------------------------------
// Resolver: speculative recursive descent from literal syntax to bytes
// ---------------------------------------------------------------------------

var log = commonlog.GetLogger("hashlit.compiler")

// DefaultMaxDepth bounds how deeply arrays, nested invocations and
// includes may nest before resolution fails.
const DefaultMaxDepth = 64

// Resolved is the result of resolving a literal expression: its bytes and
// the span they are attributed to.
type Resolved struct {
	Bytes []byte
	Span  Span
}

// Options configures a Resolver.
type Options struct {
	// Files reads include targets. Defaults to DirReader("") which reads
	// relative to the process working directory.
	Files FileReader

	// MaxDepth is the nesting ceiling. Zero means DefaultMaxDepth.
	MaxDepth int
}

// Resolver reduces literal expressions to bytes. A Resolver carries the
// recursion state of a single top-level resolution and must not be shared
// between goroutines.
type Resolver struct {
	registry Registry
	files    FileReader
	maxDepth int

	depth    int
	includes []string // include stack, outermost first
}

// NewResolver creates a resolver that dispatches nested invocations
// through reg.
func NewResolver(reg Registry, opts Options) *Resolver {
	r := &Resolver{
		registry: reg,
		files:    opts.Files,
		maxDepth: opts.MaxDepth,
	}
	if r.files == nil {
		r.files = DirReader("")
	}
	if r.maxDepth <= 0 {
		r.maxDepth = DefaultMaxDepth
	}
	return r
}

// Resolve resolves a single literal expression from c with a fresh
// resolver using default options.
func Resolve(c *Cursor, reg Registry) (Resolved, error) {
	return NewResolver(reg, Options{}).Resolve(c)
}

// Resolve consumes one literal expression from c. Alternatives are tried
// in a fixed order, each against a fork of c; c only advances past the
// alternative that succeeds. On error c is left where it was.
func (r *Resolver) Resolve(c *Cursor) (Resolved, error) {
	v, err := r.resolve(c)
	if err != nil {
		return Resolved{}, err
	}
	return v, nil
}

func (r *Resolver) resolve(c *Cursor) (Resolved, *ParseError) {
	at := c.Peek()
	if r.depth >= r.maxDepth {
		return Resolved{}, errorf(at.Span, KindRecursion, "recursion too deep (limit %d)", r.maxDepth)
	}
	r.depth++
	defer func() { r.depth-- }()

	for _, alt := range []func(*Cursor) (Resolved, bool){
		r.stringLiteral,
		r.byteStringLiteral,
		r.byteLiteral,
		r.integerLiteral,
	} {
		fork := c.Fork()
		if v, ok := alt(fork); ok {
			c.AdvanceTo(fork)
			return v, nil
		}
	}

	// An array whose elements do not all resolve is not an array literal,
	// so its failure falls through. A hard failure inside it is kept for
	// the report in case nothing else matches either.
	var arrayErr *ParseError
	fork := c.Fork()
	v, err := r.array(fork)
	if err == nil {
		c.AdvanceTo(fork)
		return v, nil
	}
	if err.hard() {
		arrayErr = err
	}

	fork = c.Fork()
	v, ok, err := r.invocation(fork)
	if err != nil {
		return Resolved{}, err
	}
	if ok {
		c.AdvanceTo(fork)
		return v, nil
	}

	if arrayErr != nil {
		return Resolved{}, arrayErr
	}
	return Resolved{}, errorf(at.Span, KindMismatch, "expected a hashable literal form")
}

// resolveAll resolves one expression that must span all of c.
func (r *Resolver) resolveAll(c *Cursor) (Resolved, *ParseError) {
	v, err := r.resolve(c)
	if err != nil {
		return Resolved{}, err
	}
	if !c.AtEnd() {
		tok := c.Peek()
		return Resolved{}, errorf(tok.Span, KindSyntax, "unexpected %s", tok.describe())
	}
	return v, nil
}

func (r *Resolver) stringLiteral(c *Cursor) (Resolved, bool) {
	tok := c.Peek()
	if tok.Type != TokenString {
		return Resolved{}, false
	}
	s, err := strconv.Unquote(tok.Literal)
	if err != nil {
		return Resolved{}, false
	}
	c.Next()
	return Resolved{Bytes: []byte(s), Span: tok.Span}, true
}

func (r *Resolver) byteStringLiteral(c *Cursor) (Resolved, bool) {
	tok := c.Peek()
	if tok.Type != TokenByteString {
		return Resolved{}, false
	}
	s, err := strconv.Unquote(strings.TrimPrefix(tok.Literal, "b"))
	if err != nil {
		return Resolved{}, false
	}
	c.Next()
	return Resolved{Bytes: []byte(s), Span: tok.Span}, true
}

// byteLiteral accepts a char that denotes exactly one byte: an ASCII
// character or a \x or octal escape. 'é' is rejected since "é" would
// contribute two bytes.
func (r *Resolver) byteLiteral(c *Cursor) (Resolved, bool) {
	tok := c.Peek()
	if tok.Type != TokenChar {
		return Resolved{}, false
	}
	if len(tok.Literal) < 3 {
		return Resolved{}, false
	}
	ch, multibyte, tail, err := strconv.UnquoteChar(tok.Literal[1:], '\'')
	if err != nil || multibyte || tail != "'" {
		return Resolved{}, false
	}
	c.Next()
	return Resolved{Bytes: []byte{byte(ch)}, Span: tok.Span}, true
}

// integerLiteral accepts a Go integer literal that fits in one byte. An
// out-of-range value rejects the alternative rather than failing.
func (r *Resolver) integerLiteral(c *Cursor) (Resolved, bool) {
	tok := c.Peek()
	if tok.Type != TokenInteger {
		return Resolved{}, false
	}
	n, err := strconv.ParseUint(tok.Literal, 0, 8)
	if err != nil {
		return Resolved{}, false
	}
	c.Next()
	return Resolved{Bytes: []byte{byte(n)}, Span: tok.Span}, true
}

// array resolves [e1, e2, ...] to the concatenation of its elements.
func (r *Resolver) array(c *Cursor) (Resolved, *ParseError) {
	open, body, ok := c.Group(TokenLBracket)
	if !ok {
		return Resolved{}, errorf(c.Peek().Span, KindMismatch, "expected array literal")
	}

	var (
		data  []byte
		spans []Span
	)
	for _, elem := range body.Split() {
		if elem.AtEnd() {
			return Resolved{}, errorf(elem.Peek().Span, KindMismatch, "empty array element")
		}
		v, err := r.resolve(elem)
		if err != nil {
			return Resolved{}, err
		}
		if !elem.AtEnd() {
			tok := elem.Peek()
			return Resolved{}, errorf(tok.Span, KindMismatch, "unexpected %s in array element", tok.describe())
		}
		data = append(data, v.Bytes...)
		spans = append(spans, v.Span)
	}
	log.Debugf("array at %s: %d elements, %d bytes", open.Span, len(spans), len(data))
	return Resolved{Bytes: data, Span: MergeAll(spans)}, nil
}

// invocation resolves name(body) forms: the built-in include forms first,
// then registry handlers. It reports false with a nil error when the
// syntax is not an invocation this resolver knows; any error it returns
// is final.
func (r *Resolver) invocation(c *Cursor) (Resolved, bool, *ParseError) {
	name := c.Peek()
	if name.Type != TokenIdentifier || c.PeekAt(1).Type != TokenLParen {
		return Resolved{}, false, nil
	}
	c.Next()
	_, body, ok := c.Group(TokenLParen)
	if !ok {
		return Resolved{}, true, errorf(name.Span, KindSyntax, "unbalanced parentheses after %s", name.Literal)
	}

	switch name.Literal {
	case "include_bytes":
		v, err := r.includeBytes(name, body, false)
		return v, true, err
	case "include_str":
		v, err := r.includeBytes(name, body, true)
		return v, true, err
	case "include":
		v, err := r.includeSource(name, body)
		return v, true, err
	}

	t, ok := r.registry.Lookup(name.Literal)
	if !ok {
		return Resolved{}, false, nil
	}
	v, err := r.resolveAll(body)
	if err != nil {
		return Resolved{}, true, err
	}
	log.Debugf("handler %s at %s: %d bytes in", name.Literal, name.Span, len(v.Bytes))
	data, span := t.Apply(v.Bytes, v.Span)
	return Resolved{Bytes: data, Span: span}, true, nil
}

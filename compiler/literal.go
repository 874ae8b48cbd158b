package compiler

import "strings"

// Continuation is a trailing call written after => in an invocation. The
// computed literal becomes its first argument.
type Continuation struct {
	Path []string // callee, e.g. ["verify", "Pin"]
	Args []Token  // the argument tokens as written, commas included
	Span Span
}

// Name returns the dotted callee name.
func (c *Continuation) Name() string {
	return strings.Join(c.Path, ".")
}

// HashLiteral is a parsed invocation: the resolved literal and an optional
// continuation.
type HashLiteral struct {
	Lit          Resolved
	Continuation *Continuation
}

// Parse scans src, located at start in file, and parses it as a complete
// invocation.
func Parse(file, src string, start Position, reg Registry, opts Options) (*HashLiteral, error) {
	toks, err := scan(file, src, start)
	if err != nil {
		return nil, err
	}
	return NewResolver(reg, opts).ParseHashLiteral(NewCursor(toks))
}

// ParseHashLiteral parses a literal expression, an optional
// "=> path(args...)" continuation, and then requires the end of input.
func (r *Resolver) ParseHashLiteral(c *Cursor) (*HashLiteral, error) {
	lit, err := r.parseHashLiteral(c)
	if err != nil {
		return nil, err
	}
	return lit, nil
}

func (r *Resolver) parseHashLiteral(c *Cursor) (*HashLiteral, *ParseError) {
	v, err := r.resolve(c)
	if err != nil {
		return nil, err
	}
	lit := &HashLiteral{Lit: v}

	if c.Peek().Type == TokenArrow {
		arrow := c.Next()
		lit.Continuation, err = parseContinuation(c, arrow)
		if err != nil {
			return nil, err
		}
	}

	if !c.AtEnd() {
		tok := c.Peek()
		return nil, errorf(tok.Span, KindSyntax, "unexpected %s after literal", tok.describe())
	}
	return lit, nil
}

// parseContinuation parses ident(.ident)* followed by a parenthesized
// argument list whose tokens are kept verbatim.
func parseContinuation(c *Cursor, arrow Token) (*Continuation, *ParseError) {
	first := c.Peek()
	if first.Type != TokenIdentifier {
		return nil, errorf(first.Span, KindSyntax, "expected continuation call after %s, found %s", arrow.describe(), first.describe())
	}

	var path []string
	for {
		tok := c.Next()
		path = append(path, tok.Literal)
		if c.Peek().Type != TokenPeriod {
			break
		}
		c.Next()
		if next := c.Peek(); next.Type != TokenIdentifier {
			return nil, errorf(next.Span, KindSyntax, "expected identifier after '.', found %s", next.describe())
		}
	}

	_, args, ok := c.Group(TokenLParen)
	if !ok {
		tok := c.Peek()
		return nil, errorf(tok.Span, KindSyntax, "expected ( after continuation %s, found %s", strings.Join(path, "."), tok.describe())
	}

	return &Continuation{
		Path: path,
		Args: args.Remaining(),
		Span: Merge(first.Span, args.boundary().Span),
	}, nil
}

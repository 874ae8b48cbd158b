package compiler

// ---------------------------------------------------------------------------
// Cursor: a forkable view over a balanced token slice
// ---------------------------------------------------------------------------

// Cursor walks a token slice produced by Scan. A cursor may be bounded to
// the inside of a delimited group; at its bound it reports EOF.
//
// Speculative parsing works by forking: an alternative runs against a
// Fork, and only if it succeeds does the caller AdvanceTo the fork. A
// failed alternative leaves the original cursor untouched.
type Cursor struct {
	toks []Token
	pos  int
	end  int // index of the bounding token (closer or EOF)
}

// NewCursor creates a cursor over toks, which must end with an EOF token
// and have balanced delimiters (see Scan).
func NewCursor(toks []Token) *Cursor {
	if len(toks) == 0 || toks[len(toks)-1].Type != TokenEOF {
		toks = append(toks, Token{Type: TokenEOF})
	}
	return &Cursor{toks: toks, end: len(toks) - 1}
}

// Peek returns the current token without consuming it.
func (c *Cursor) Peek() Token {
	if c.pos >= c.end {
		return c.boundary()
	}
	return c.toks[c.pos]
}

// PeekAt returns the token n positions ahead of the current one.
func (c *Cursor) PeekAt(n int) Token {
	if c.pos+n >= c.end {
		return c.boundary()
	}
	return c.toks[c.pos+n]
}

// boundary returns an EOF token located where the cursor's range ends.
func (c *Cursor) boundary() Token {
	b := c.toks[c.end]
	return Token{Type: TokenEOF, Span: MakeSpan(b.Span.File, b.Span.Start, b.Span.Start)}
}

// Next consumes and returns the current token.
func (c *Cursor) Next() Token {
	tok := c.Peek()
	if c.pos < c.end {
		c.pos++
	}
	return tok
}

// AtEnd reports whether every token in range has been consumed.
func (c *Cursor) AtEnd() bool {
	return c.pos >= c.end
}

// Fork returns an independent copy of the cursor.
func (c *Cursor) Fork() *Cursor {
	f := *c
	return &f
}

// AdvanceTo commits a successful fork by moving c to the fork's position.
func (c *Cursor) AdvanceTo(fork *Cursor) {
	c.pos = fork.pos
}

// Group consumes a delimited group starting at the current token and
// returns its opening token and a cursor bounded to its contents. It
// reports false, consuming nothing, if the current token does not open a
// group of the wanted kind.
func (c *Cursor) Group(open TokenType) (Token, *Cursor, bool) {
	tok := c.Peek()
	if tok.Type != open || closers[open] == 0 {
		return Token{}, nil, false
	}
	closeAt := c.matching(c.pos)
	if closeAt < 0 || closeAt > c.end {
		return Token{}, nil, false
	}
	body := &Cursor{toks: c.toks, pos: c.pos + 1, end: closeAt}
	c.pos = closeAt + 1
	return tok, body, true
}

// matching returns the index of the delimiter closing the one at i.
func (c *Cursor) matching(i int) int {
	depth := 0
	for j := i; j < len(c.toks); j++ {
		switch t := c.toks[j].Type; {
		case closers[t] != 0:
			depth++
		case isCloser(t):
			depth--
			if depth == 0 {
				return j
			}
		case t == TokenEOF:
			return -1
		}
	}
	return -1
}

// Split divides the remaining tokens at top-level commas, consuming them.
// A trailing comma does not produce an empty final part.
func (c *Cursor) Split() []*Cursor {
	var parts []*Cursor
	start := c.pos
	for c.pos < c.end {
		tok := c.toks[c.pos]
		switch {
		case closers[tok.Type] != 0:
			closeAt := c.matching(c.pos)
			if closeAt < 0 || closeAt >= c.end {
				c.pos = c.end
				continue
			}
			c.pos = closeAt + 1
			continue
		case tok.Type == TokenComma:
			parts = append(parts, &Cursor{toks: c.toks, pos: start, end: c.pos})
			start = c.pos + 1
		}
		c.pos++
	}
	if start < c.end {
		parts = append(parts, &Cursor{toks: c.toks, pos: start, end: c.end})
	}
	return parts
}

// Remaining returns the unconsumed tokens in range.
func (c *Cursor) Remaining() []Token {
	if c.pos >= c.end {
		return nil
	}
	return c.toks[c.pos:c.end]
}

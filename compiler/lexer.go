package compiler

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ---------------------------------------------------------------------------
// Lexer: Tokenizer for literal expressions
// ---------------------------------------------------------------------------

const eof rune = -1

// Lexer tokenizes a literal expression.
type Lexer struct {
	file    string
	input   string
	base    Position // position of input[0]
	pos     int      // current position in input
	readPos int      // reading position (after current char)
	ch      rune     // current character
	line    int      // line of ch (1-based)
	col     int      // column of ch (1-based, in bytes)
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return NewLexerAt("", input, Position{Line: 1, Column: 1})
}

// NewLexerAt creates a lexer whose positions are reported relative to
// start in file. Use it when the input is a fragment of a larger source,
// such as the tail of a directive comment.
func NewLexerAt(file, input string, start Position) *Lexer {
	if !start.IsValid() {
		start = Position{Offset: start.Offset, Line: 1, Column: 1}
	}
	if start.Column < 1 {
		start.Column = 1
	}
	l := &Lexer{
		file:  file,
		input: input,
		base:  start,
		line:  start.Line,
		col:   start.Column,
	}
	l.readChar()
	return l
}

// readChar reads the next character.
func (l *Lexer) readChar() {
	if l.readPos > 0 {
		if l.ch == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col += l.readPos - l.pos
		}
	}
	l.pos = l.readPos
	if l.readPos >= len(l.input) {
		l.ch = eof
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.readPos += size
}

// peekChar returns the next character without consuming it.
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

// position returns the current position.
func (l *Lexer) position() Position {
	return Position{
		Offset: l.base.Offset + l.pos,
		Line:   l.line,
		Column: l.col,
	}
}

func (l *Lexer) token(t TokenType, start Position, startOff int) Token {
	return Token{
		Type:    t,
		Literal: l.input[startOff:l.pos],
		Span:    MakeSpan(l.file, start, l.position()),
	}
}

func (l *Lexer) errorToken(start Position, format string, args ...interface{}) Token {
	return Token{
		Type:    TokenError,
		Literal: fmt.Sprintf(format, args...),
		Span:    MakeSpan(l.file, start, l.position()),
	}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() Token {
	if tok, ok := l.skipWhitespaceAndComments(); !ok {
		return tok
	}

	pos := l.position()
	start := l.pos

	switch {
	case l.ch == eof:
		return Token{Type: TokenEOF, Span: MakeSpan(l.file, pos, pos)}

	case l.ch == '(':
		l.readChar()
		return l.token(TokenLParen, pos, start)

	case l.ch == ')':
		l.readChar()
		return l.token(TokenRParen, pos, start)

	case l.ch == '[':
		l.readChar()
		return l.token(TokenLBracket, pos, start)

	case l.ch == ']':
		l.readChar()
		return l.token(TokenRBracket, pos, start)

	case l.ch == '{':
		l.readChar()
		return l.token(TokenLBrace, pos, start)

	case l.ch == '}':
		l.readChar()
		return l.token(TokenRBrace, pos, start)

	case l.ch == ',':
		l.readChar()
		return l.token(TokenComma, pos, start)

	case l.ch == '.' && !isDigit(l.peekChar()):
		l.readChar()
		return l.token(TokenPeriod, pos, start)

	case l.ch == '=' && l.peekChar() == '>':
		l.readChar()
		l.readChar()
		return l.token(TokenArrow, pos, start)

	case l.ch == '"' || l.ch == '`':
		return l.readString(TokenString, pos, start)

	case l.ch == 'b' && (l.peekChar() == '"' || l.peekChar() == '`'):
		l.readChar() // consume b
		return l.readString(TokenByteString, pos, start)

	case l.ch == '\'':
		return l.readCharLiteral(pos, start)

	case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())):
		return l.readNumber(pos, start)

	case isLetter(l.ch) || l.ch == '_':
		for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
		return l.token(TokenIdentifier, pos, start)

	case isOperatorChar(l.ch):
		for isOperatorChar(l.ch) {
			l.readChar()
		}
		return l.token(TokenOperator, pos, start)

	default:
		ch := l.ch
		l.readChar()
		return l.errorToken(pos, "unexpected character %q", ch)
	}
}

// skipWhitespaceAndComments skips whitespace and Go-style comments. It
// returns an error token and false for an unterminated block comment.
func (l *Lexer) skipWhitespaceAndComments() (Token, bool) {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}

		if l.ch == '/' && l.peekChar() == '/' {
			for l.ch != '\n' && l.ch != eof {
				l.readChar()
			}
			continue
		}

		if l.ch == '/' && l.peekChar() == '*' {
			pos := l.position()
			l.readChar()
			l.readChar()
			for !(l.ch == '*' && l.peekChar() == '/') {
				if l.ch == eof {
					return l.errorToken(pos, "unterminated comment"), false
				}
				l.readChar()
			}
			l.readChar()
			l.readChar()
			continue
		}

		return Token{}, true
	}
}

// readString reads an interpreted or raw string literal. The opening quote
// is the current character; a byte-string prefix has already been consumed.
func (l *Lexer) readString(t TokenType, pos Position, start int) Token {
	quote := l.ch
	l.readChar() // consume opening quote

	for l.ch != quote {
		switch {
		case l.ch == eof:
			return l.errorToken(pos, "unterminated string literal")
		case l.ch == '\n' && quote == '"':
			return l.errorToken(pos, "newline in string literal")
		case l.ch == '\\' && quote == '"':
			l.readChar()
			if l.ch == eof {
				return l.errorToken(pos, "unterminated string literal")
			}
		}
		l.readChar()
	}
	l.readChar() // consume closing quote

	tok := l.token(t, pos, start)
	if _, err := strconv.Unquote(strings.TrimPrefix(tok.Literal, "b")); err != nil {
		return l.errorToken(pos, "invalid string literal %s", tok.Literal)
	}
	return tok
}

// readCharLiteral reads a character literal such as 'a' or '\x7f'.
func (l *Lexer) readCharLiteral(pos Position, start int) Token {
	l.readChar() // consume opening '

	for l.ch != '\'' {
		switch l.ch {
		case eof, '\n':
			return l.errorToken(pos, "unterminated character literal")
		case '\\':
			l.readChar()
			if l.ch == eof {
				return l.errorToken(pos, "unterminated character literal")
			}
		}
		l.readChar()
	}
	l.readChar() // consume closing '

	tok := l.token(TokenChar, pos, start)
	if _, err := strconv.Unquote(tok.Literal); err != nil {
		return l.errorToken(pos, "invalid character literal %s", tok.Literal)
	}
	return tok
}

// readNumber reads an integer or float literal using Go's number syntax.
// Validation beyond the token shape is left to the resolver, which treats
// an unparsable integer as a soft mismatch.
func (l *Lexer) readNumber(pos Position, start int) Token {
	hex := l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X')
	isFloat := false
	prev := rune(0)

	for {
		switch {
		case isDigit(l.ch) || isLetter(l.ch) || l.ch == '_':
			if !hex && (l.ch == 'e' || l.ch == 'E') {
				isFloat = true
			}
			if hex && (l.ch == 'p' || l.ch == 'P') {
				isFloat = true
			}
		case l.ch == '.':
			isFloat = true
		case (l.ch == '+' || l.ch == '-') && isExponent(prev, hex):
		default:
			return l.numberToken(isFloat, pos, start)
		}
		prev = l.ch
		l.readChar()
	}
}

func (l *Lexer) numberToken(isFloat bool, pos Position, start int) Token {
	if isFloat {
		return l.token(TokenFloat, pos, start)
	}
	return l.token(TokenInteger, pos, start)
}

func isExponent(r rune, hex bool) bool {
	if hex {
		return r == 'p' || r == 'P'
	}
	return r == 'e' || r == 'E'
}

// Helper functions

func isLetter(r rune) bool {
	return r >= 0 && unicode.IsLetter(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isOperatorChar(r rune) bool {
	return r >= 0 && strings.ContainsRune("+-*/%&|^<>=!:;~?@#$", r)
}

// tokenize returns all tokens from the input, ending with an EOF token.
func tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF || tok.Type == TokenError {
			break
		}
	}
	return tokens
}

// Scan tokenizes input located at start in file and checks that its
// delimiters balance. The returned slice always ends with an EOF token.
func Scan(file, input string, start Position) ([]Token, error) {
	toks, err := scan(file, input, start)
	if err != nil {
		return nil, err
	}
	return toks, nil
}

func scan(file, input string, start Position) ([]Token, *ParseError) {
	l := NewLexerAt(file, input, start)
	var (
		tokens []Token
		open   []Token
	)
	for {
		tok := l.NextToken()
		switch {
		case tok.Type == TokenError:
			return nil, &ParseError{Span: tok.Span, Kind: KindSyntax, Msg: tok.Literal}

		case closers[tok.Type] != 0:
			open = append(open, tok)

		case isCloser(tok.Type):
			if len(open) == 0 || closers[open[len(open)-1].Type] != tok.Type {
				return nil, &ParseError{Span: tok.Span, Kind: KindSyntax,
					Msg: fmt.Sprintf("unexpected %s", tok.describe())}
			}
			open = open[:len(open)-1]

		case tok.Type == TokenEOF:
			if len(open) > 0 {
				last := open[len(open)-1]
				return nil, &ParseError{Span: last.Span, Kind: KindSyntax,
					Msg: fmt.Sprintf("unclosed %s", last.describe())}
			}
			return append(tokens, tok), nil
		}
		tokens = append(tokens, tok)
	}
}

// JoinTokens renders a token run as source text. Tokens that touched in
// the original source stay adjacent; any gap collapses to one space.
func JoinTokens(toks []Token) string {
	var sb strings.Builder
	for i, tok := range toks {
		if tok.Type == TokenEOF {
			break
		}
		if i > 0 && toks[i-1].Span.End.Offset != tok.Span.Start.Offset {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok.Literal)
	}
	return sb.String()
}

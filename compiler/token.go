package compiler

import "fmt"

// ---------------------------------------------------------------------------
// Token types for the literal-expression lexer
// ---------------------------------------------------------------------------

// TokenType represents the type of a token.
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenError

	// Literals
	TokenString     // "abc", `abc`
	TokenByteString // b"abc", b`abc`
	TokenChar       // 'a', '\x7f'
	TokenInteger    // 42, 0x2a, 0b101
	TokenFloat      // 1.5, 1e3
	TokenIdentifier // include_bytes, verify

	// Delimiters
	TokenLParen   // (
	TokenRParen   // )
	TokenLBracket // [
	TokenRBracket // ]
	TokenLBrace   // {
	TokenRBrace   // }
	TokenComma    // ,
	TokenPeriod   // .
	TokenArrow    // =>

	// Anything else that may legally appear inside continuation arguments
	TokenOperator // + - * / & ! == ...
)

var tokenNames = map[TokenType]string{
	TokenEOF:        "EOF",
	TokenError:      "ERROR",
	TokenString:     "STRING",
	TokenByteString: "BYTES",
	TokenChar:       "CHAR",
	TokenInteger:    "INTEGER",
	TokenFloat:      "FLOAT",
	TokenIdentifier: "IDENTIFIER",
	TokenLParen:     "(",
	TokenRParen:     ")",
	TokenLBracket:   "[",
	TokenRBracket:   "]",
	TokenLBrace:     "{",
	TokenRBrace:     "}",
	TokenComma:      ",",
	TokenPeriod:     ".",
	TokenArrow:      "=>",
	TokenOperator:   "OPERATOR",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Token(%d)", t)
}

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Literal string // the raw source text
	Span    Span
}

func (t Token) String() string {
	if t.Type == TokenEOF {
		return "EOF"
	}
	if t.Type == TokenError {
		return fmt.Sprintf("ERROR(%s)", t.Literal)
	}
	if len(t.Literal) > 20 {
		return fmt.Sprintf("%s(%q...)", t.Type, t.Literal[:20])
	}
	return fmt.Sprintf("%s(%q)", t.Type, t.Literal)
}

// describe renders a token for use in error messages.
func (t Token) describe() string {
	switch t.Type {
	case TokenEOF:
		return "end of input"
	case TokenError:
		return t.Literal
	}
	if len(t.Literal) > 20 {
		return fmt.Sprintf("%q", t.Literal[:20]+"...")
	}
	return fmt.Sprintf("%q", t.Literal)
}

// closers maps each opening delimiter to its closing counterpart.
var closers = map[TokenType]TokenType{
	TokenLParen:   TokenRParen,
	TokenLBracket: TokenRBracket,
	TokenLBrace:   TokenRBrace,
}

func isCloser(t TokenType) bool {
	return t == TokenRParen || t == TokenRBracket || t == TokenRBrace
}

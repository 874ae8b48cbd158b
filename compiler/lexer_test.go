package compiler

import (
	"testing"
)

func TestLexerBasicTokens(t *testing.T) {
	input := `( ) [ ] { } , . =>`
	expected := []struct {
		typ TokenType
		lit string
	}{
		{TokenLParen, "("},
		{TokenRParen, ")"},
		{TokenLBracket, "["},
		{TokenRBracket, "]"},
		{TokenLBrace, "{"},
		{TokenRBrace, "}"},
		{TokenComma, ","},
		{TokenPeriod, "."},
		{TokenArrow, "=>"},
		{TokenEOF, ""},
	}

	l := NewLexer(input)
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Type != exp.typ {
			t.Errorf("token[%d] type = %v, want %v", i, tok.Type, exp.typ)
		}
		if tok.Literal != exp.lit {
			t.Errorf("token[%d] literal = %q, want %q", i, tok.Literal, exp.lit)
		}
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		input string
		typ   TokenType
	}{
		{"42", TokenInteger},
		{"0", TokenInteger},
		{"0x2a", TokenInteger},
		{"0XFF", TokenInteger},
		{"0b1010", TokenInteger},
		{"0o17", TokenInteger},
		{"1_000", TokenInteger},
		{"300", TokenInteger},
		{"3.14", TokenFloat},
		{".5", TokenFloat},
		{"1e10", TokenFloat},
		{"1.5e-3", TokenFloat},
		{"2.0E+5", TokenFloat},
		{"0x1p-2", TokenFloat},
	}

	for _, tc := range tests {
		l := NewLexer(tc.input)
		tok := l.NextToken()
		if tok.Type != tc.typ {
			t.Errorf("Lexer(%q): type = %v, want %v", tc.input, tok.Type, tc.typ)
		}
		if tok.Literal != tc.input {
			t.Errorf("Lexer(%q): literal = %q", tc.input, tok.Literal)
		}
		if next := l.NextToken(); next.Type != TokenEOF {
			t.Errorf("Lexer(%q): trailing token %v", tc.input, next)
		}
	}
}

func TestLexerStrings(t *testing.T) {
	tests := []struct {
		input string
		typ   TokenType
	}{
		{`"abc"`, TokenString},
		{`""`, TokenString},
		{`"a\"b"`, TokenString},
		{`"\x00\xff"`, TokenString},
		{"`raw\\n`", TokenString},
		{`b"abc"`, TokenByteString},
		{"b`raw`", TokenByteString},
		{`'a'`, TokenChar},
		{`'\n'`, TokenChar},
		{`'\xff'`, TokenChar},
		{`'é'`, TokenChar},
	}

	for _, tc := range tests {
		tok := NewLexer(tc.input).NextToken()
		if tok.Type != tc.typ {
			t.Errorf("Lexer(%s): type = %v, want %v", tc.input, tok.Type, tc.typ)
		}
		if tok.Literal != tc.input {
			t.Errorf("Lexer(%s): literal = %q", tc.input, tok.Literal)
		}
	}
}

func TestLexerIdentifierNotByteString(t *testing.T) {
	toks := tokenize(`b bar b2`)
	want := []string{"b", "bar", "b2"}
	for i, w := range want {
		if toks[i].Type != TokenIdentifier || toks[i].Literal != w {
			t.Errorf("token[%d] = %v, want IDENTIFIER(%q)", i, toks[i], w)
		}
	}
}

func TestLexerOperators(t *testing.T) {
	toks := tokenize(`a == b && !c`)
	want := []struct {
		typ TokenType
		lit string
	}{
		{TokenIdentifier, "a"},
		{TokenOperator, "=="},
		{TokenIdentifier, "b"},
		{TokenOperator, "&&"},
		{TokenOperator, "!"},
		{TokenIdentifier, "c"},
		{TokenEOF, ""},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Type != w.typ || toks[i].Literal != w.lit {
			t.Errorf("token[%d] = %v, want %v(%q)", i, toks[i], w.typ, w.lit)
		}
	}
}

func TestLexerComments(t *testing.T) {
	toks := tokenize("a // line comment\n/* block\ncomment */ b")
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3: %v", len(toks), toks)
	}
	if toks[0].Literal != "a" || toks[1].Literal != "b" {
		t.Errorf("got %v", toks)
	}
	if toks[1].Span.Start.Line != 3 {
		t.Errorf("b on line %d, want 3", toks[1].Span.Start.Line)
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"abc`, "unterminated string literal"},
		{"\"a\nb\"", "newline in string literal"},
		{"`abc", "unterminated string literal"},
		{`'a`, "unterminated character literal"},
		{`'ab'`, "invalid character literal 'ab'"},
		{`"\q"`, `invalid string literal "\q"`},
		{"/* open", "unterminated comment"},
		{"\\", `unexpected character '\\'`},
	}

	for _, tc := range tests {
		toks := tokenize(tc.input)
		last := toks[len(toks)-1]
		if last.Type != TokenError {
			t.Errorf("tokenize(%q): last token %v, want ERROR", tc.input, last)
			continue
		}
		if last.Literal != tc.want {
			t.Errorf("tokenize(%q): error %q, want %q", tc.input, last.Literal, tc.want)
		}
	}
}

func TestLexerPositions(t *testing.T) {
	l := NewLexerAt("main.go", "foo(\n  \"x\")", Position{Offset: 100, Line: 7, Column: 12})

	foo := l.NextToken()
	if got := foo.Span.Start; got != (Position{Offset: 100, Line: 7, Column: 12}) {
		t.Errorf("foo start = %+v", got)
	}
	if got := foo.Span.End; got != (Position{Offset: 103, Line: 7, Column: 15}) {
		t.Errorf("foo end = %+v", got)
	}
	if foo.Span.File != "main.go" {
		t.Errorf("file = %q", foo.Span.File)
	}

	l.NextToken() // (
	str := l.NextToken()
	if got := str.Span.Start; got != (Position{Offset: 107, Line: 8, Column: 3}) {
		t.Errorf("string start = %+v", got)
	}
	if got := str.Span.String(); got != "main.go:8:3" {
		t.Errorf("span string = %q", got)
	}
}

func TestLexerMultibyteColumns(t *testing.T) {
	toks := tokenize(`"é" x`)
	// Columns count bytes, as go/token does.
	if got := toks[1].Span.Start.Column; got != 6 {
		t.Errorf("x column = %d, want 6", got)
	}
}

func TestScanBalance(t *testing.T) {
	tests := []struct {
		input string
		want  string // empty means success
	}{
		{`f([1, 2], {3})`, ""},
		{`f(`, `1:2: unclosed "("`},
		{`[1, 2)`, `1:6: unexpected ")"`},
		{`)`, `1:1: unexpected ")"`},
		{`"abc`, "1:1: unterminated string literal"},
	}

	for _, tc := range tests {
		toks, err := Scan("", tc.input, Position{Line: 1, Column: 1})
		if tc.want == "" {
			if err != nil {
				t.Errorf("Scan(%q): unexpected error %v", tc.input, err)
				continue
			}
			if last := toks[len(toks)-1]; last.Type != TokenEOF {
				t.Errorf("Scan(%q): last token %v, want EOF", tc.input, last)
			}
			continue
		}
		if err == nil {
			t.Errorf("Scan(%q): expected error %q", tc.input, tc.want)
			continue
		}
		if err.Error() != tc.want {
			t.Errorf("Scan(%q): error %q, want %q", tc.input, err.Error(), tc.want)
		}
		if pe, ok := err.(*ParseError); !ok || pe.Kind != KindSyntax {
			t.Errorf("Scan(%q): error %#v, want syntax ParseError", tc.input, err)
		}
	}
}

func TestJoinTokens(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`a, b`, `a, b`},
		{`pkg.Name(x)`, `pkg.Name(x)`},
		{`a   +    b`, `a + b`},
		{"x,\n\ty", `x, y`},
		{``, ``},
	}
	for _, tc := range tests {
		toks, err := Scan("", tc.input, Position{Line: 1, Column: 1})
		if err != nil {
			t.Fatalf("Scan(%q): %v", tc.input, err)
		}
		if got := JoinTokens(toks); got != tc.want {
			t.Errorf("JoinTokens(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

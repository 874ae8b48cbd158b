package compiler

import (
	"encoding/hex"
	"testing"
)

func identity(b []byte) []byte { return b }

func sha3Entry(name string, mode Mode) *EntryPoint {
	return &EntryPoint{Name: name, Mode: mode, Digest: sha3Sum, Handlers: testRegistry()}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{EmitRaw(Resolved{Bytes: []byte{1, 2, 0xff}}, identity), "[3]byte{0x01, 0x02, 0xff}"},
		{EmitRaw(Resolved{}, identity), "[0]byte{}"},
		{EmitHex(Resolved{Bytes: []byte{0xab, 0x01}}, identity), `"ab01"`},
		{&Call{Path: []string{"f"}, Args: []Node{&HexString{Text: "00"}}}, `f("00")`},
		{nil, "<nil>"},
	}
	for _, tc := range tests {
		if got := Format(tc.node); got != tc.want {
			t.Errorf("Format = %q, want %q", got, tc.want)
		}
	}
}

func TestExpand(t *testing.T) {
	start := Position{Line: 1, Column: 1}
	tests := []struct {
		entry *EntryPoint
		input string
		want  string
	}{
		{
			sha3Entry("sha3_hex_literal", ModeHex),
			`"abc"`,
			`"3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"`,
		},
		{
			sha3Entry("sha3_literal", ModeRaw),
			`"abc"`,
			"[32]byte{0x3a, 0x98, 0x5d, 0xa7, 0x4f, 0xe2, 0x25, 0xb2, 0x04, 0x5c, 0x17, 0x2d, 0x6b, 0xd3, 0x90, 0xbd, " +
				"0x85, 0x5f, 0x08, 0x6e, 0x3e, 0x9d, 0x52, 0x5b, 0x46, 0xbf, 0xe2, 0x45, 0x11, 0x43, 0x15, 0x32}",
		},
		{
			&EntryPoint{Name: "raw", Mode: ModeRaw, Digest: identity},
			`[1, 2, 3] => f(y, z)`,
			"f([3]byte{0x01, 0x02, 0x03}, y, z)",
		},
		{
			&EntryPoint{Name: "raw", Mode: ModeHex, Digest: identity},
			`"A" => check.Equal()`,
			`check.Equal("41")`,
		},
		{
			// Nesting applies the inner digest first: sha3(sha3("abc")).
			sha3Entry("sha3_hex_literal", ModeHex),
			`sha3_literal("abc")`,
			`"` + hex.EncodeToString(sha3Sum(sha3Sum([]byte("abc")))) + `"`,
		},
	}

	for _, tc := range tests {
		n, err := tc.entry.Expand("", tc.input, start, Options{})
		if err != nil {
			t.Errorf("%s(%s): %v", tc.entry.Name, tc.input, err)
			continue
		}
		if got := Format(n); got != tc.want {
			t.Errorf("%s(%s) =\n  %s\nwant\n  %s", tc.entry.Name, tc.input, got, tc.want)
		}
	}
}

func TestThreadSpans(t *testing.T) {
	lit, err := Parse("", `"x" => f(a, b)`, Position{Line: 1, Column: 1}, nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	n := Thread(EmitHex(lit.Lit, identity), lit.Continuation)
	call, ok := n.(*Call)
	if !ok {
		t.Fatalf("Thread returned %T", n)
	}
	if len(call.Args) != 2 {
		t.Fatalf("got %d args, want 2", len(call.Args))
	}
	if call.Args[0].Span().Start != pos(1, 1) {
		t.Errorf("literal arg span = %v", call.Args[0].Span())
	}
	if s := call.Args[1].Span(); s.Start != pos(1, 10) || s.End != pos(1, 14) {
		t.Errorf("token arg span = %v..%v, want 1:10..1:14", s.Start, s.End)
	}

	if Thread(call.Args[0], nil) != call.Args[0] {
		t.Error("Thread without continuation should return the node unchanged")
	}
}

func TestTableLookup(t *testing.T) {
	table := Table{sha3Entry("sha3_literal", ModeRaw), sha3Entry("sha3_hex_literal", ModeHex)}
	if e, ok := table.Lookup("sha3_hex_literal"); !ok || e.Mode != ModeHex {
		t.Errorf("Lookup(sha3_hex_literal) = %v, %v", e, ok)
	}
	if _, ok := table.Lookup("sha3"); ok {
		t.Error("Lookup should not match prefixes")
	}
	names := table.Names()
	if len(names) != 2 || names[0] != "sha3_literal" || names[1] != "sha3_hex_literal" {
		t.Errorf("Names = %v", names)
	}
}

func TestRegistryFirstMatchWins(t *testing.T) {
	reg := Registry{
		{Name: "h", Transform: TransformFunc(func(b []byte, s Span) ([]byte, Span) { return []byte("first"), s })},
		{Name: "h", Transform: TransformFunc(func(b []byte, s Span) ([]byte, Span) { return []byte("second"), s })},
	}
	tr, ok := reg.Lookup("h")
	if !ok {
		t.Fatal("Lookup(h) failed")
	}
	if got, _ := tr.Apply(nil, Span{}); string(got) != "first" {
		t.Errorf("Lookup(h) applied %q, want first", got)
	}
	if _, ok := reg.Lookup("H"); ok {
		t.Error("Lookup should be case-sensitive")
	}
}

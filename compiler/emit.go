package compiler

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Output nodes: the syntax an invocation expands to
// ---------------------------------------------------------------------------

// DigestFunc is a digest algorithm: a pure function from bytes to bytes.
type DigestFunc func([]byte) []byte

// Node is an output syntax node.
type Node interface {
	Span() Span
	node() // marker method
}

// ByteArray is a fixed-size byte array literal, [N]byte{...}.
type ByteArray struct {
	SpanVal Span
	Bytes   []byte
}

func (n *ByteArray) Span() Span { return n.SpanVal }
func (n *ByteArray) node()      {}

// HexString is a string literal holding lowercase hex digits.
type HexString struct {
	SpanVal Span
	Text    string
}

func (n *HexString) Span() Span { return n.SpanVal }
func (n *HexString) node()      {}

// Tokens is a run of source tokens reproduced verbatim.
type Tokens struct {
	SpanVal Span
	Toks    []Token
}

func (n *Tokens) Span() Span { return n.SpanVal }
func (n *Tokens) node()      {}

// Call is a call of Path with Args.
type Call struct {
	SpanVal Span
	Path    []string
	Args    []Node
}

func (n *Call) Span() Span { return n.SpanVal }
func (n *Call) node()      {}

// EmitRaw digests the resolved bytes and emits them as a byte array
// attributed to the resolved span.
func EmitRaw(r Resolved, digest DigestFunc) Node {
	return &ByteArray{SpanVal: r.Span, Bytes: digest(r.Bytes)}
}

// EmitHex digests the resolved bytes and emits the lowercase hex encoding
// as a string literal attributed to the resolved span.
func EmitHex(r Resolved, digest DigestFunc) Node {
	return &HexString{SpanVal: r.Span, Text: hex.EncodeToString(digest(r.Bytes))}
}

// Thread passes n as the first argument of the continuation c. The
// original argument tokens follow it unchanged. With no continuation n is
// returned as is.
func Thread(n Node, c *Continuation) Node {
	if c == nil {
		return n
	}
	args := []Node{n}
	if len(c.Args) > 0 {
		args = append(args, &Tokens{
			SpanVal: MergeAll([]Span{c.Args[0].Span, c.Args[len(c.Args)-1].Span}),
			Toks:    c.Args,
		})
	}
	return &Call{SpanVal: c.Span, Path: c.Path, Args: args}
}

// Format renders a node as Go source.
func Format(n Node) string {
	var sb strings.Builder
	format(&sb, n)
	return sb.String()
}

func format(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case *ByteArray:
		fmt.Fprintf(sb, "[%d]byte{", len(n.Bytes))
		for i, b := range n.Bytes {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "0x%02x", b)
		}
		sb.WriteByte('}')

	case *HexString:
		sb.WriteString(strconv.Quote(n.Text))

	case *Tokens:
		sb.WriteString(JoinTokens(n.Toks))

	case *Call:
		sb.WriteString(strings.Join(n.Path, "."))
		sb.WriteByte('(')
		for i, arg := range n.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			format(sb, arg)
		}
		sb.WriteByte(')')

	case nil:
		sb.WriteString("<nil>")

	default:
		fmt.Fprintf(sb, "<%T>", n)
	}
}

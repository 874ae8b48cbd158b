package compiler

import "fmt"

// Position represents a source location.
type Position struct {
	Offset int // byte offset
	Line   int // 1-based line number
	Column int // 1-based column number
}

// IsValid reports whether the position refers to a real location.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// before reports whether p comes strictly before q.
func (p Position) before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

// Span represents a range in source code. The zero Span is the call-site
// sentinel: it stands for the whole invocation rather than any fragment
// of it.
type Span struct {
	File  string
	Start Position
	End   Position
}

// MakeSpan creates a span in file from start to end.
func MakeSpan(file string, start, end Position) Span {
	return Span{File: file, Start: start, End: end}
}

// CallSite returns the call-site sentinel span.
func CallSite() Span {
	return Span{}
}

// IsCallSite reports whether s is the call-site sentinel.
func (s Span) IsCallSite() bool {
	return !s.Start.IsValid()
}

func (s Span) String() string {
	if s.IsCallSite() {
		return "<call site>"
	}
	if s.File == "" {
		return fmt.Sprintf("%d:%d", s.Start.Line, s.Start.Column)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Start.Line, s.Start.Column)
}

// Merge returns a span covering both a and b. Spans from different files
// cannot be joined, so the result falls back to the call site, as it does
// when either side already is the call site.
func Merge(a, b Span) Span {
	if a.IsCallSite() || b.IsCallSite() || a.File != b.File {
		return CallSite()
	}
	out := a
	if b.Start.before(out.Start) {
		out.Start = b.Start
	}
	if out.End.before(b.End) {
		out.End = b.End
	}
	return out
}

// MergeAll folds spans left to right with Merge. An empty slice yields the
// call site.
func MergeAll(spans []Span) Span {
	if len(spans) == 0 {
		return CallSite()
	}
	out := spans[0]
	for _, s := range spans[1:] {
		out = Merge(out, s)
	}
	return out
}

package compiler

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	// KindMismatch means no literal form matched at a position.
	KindMismatch ErrorKind = iota
	// KindSyntax covers lexical errors, unbalanced delimiters, malformed
	// include bodies and trailing input.
	KindSyntax
	// KindIO is a failed file read in an include form.
	KindIO
	// KindDecode is an included file that is not valid UTF-8 text.
	KindDecode
	// KindRecursion is a nesting depth overflow or an include cycle.
	KindRecursion
)

var kindNames = map[ErrorKind]string{
	KindMismatch:  "mismatch",
	KindSyntax:    "syntax",
	KindIO:        "io",
	KindDecode:    "decode",
	KindRecursion: "recursion",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", k)
}

// ParseError is a resolution failure attributed to a source span.
type ParseError struct {
	Span Span
	Kind ErrorKind
	Msg  string
	Err  error // underlying cause, if any
}

func (e *ParseError) Error() string {
	msg := e.Msg
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Span.IsCallSite() {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Span, msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// hard reports whether the error must abort resolution instead of letting
// the next alternative run.
func (e *ParseError) hard() bool {
	return e.Kind != KindMismatch
}

// ErrorList collects the errors of several independent resolutions.
type ErrorList []*ParseError

// Add appends err to the list.
func (l *ErrorList) Add(err *ParseError) {
	*l = append(*l, err)
}

// Sort orders the list by file and position.
func (l ErrorList) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		a, b := l[i].Span, l[j].Span
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Start.before(b.Start)
	})
}

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var sb strings.Builder
	for i, e := range l {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(e.Error())
	}
	return sb.String()
}

// Err returns the list as an error, or nil when it is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

func errorf(span Span, kind ErrorKind, format string, args ...interface{}) *ParseError {
	return &ParseError{Span: span, Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

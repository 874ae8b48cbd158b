// Package server is a language server for //hashlit: directives. It
// reports expansion errors as diagnostics while a Go file is edited, shows
// the generated declaration on hover and completes entry point names.
package server

import (
	"fmt"
	"go/parser"
	"go/token"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	"github.com/portal-co/sha3-literal/compiler"
	"github.com/portal-co/sha3-literal/gogen"
	"github.com/portal-co/sha3-literal/manifest"

	_ "github.com/tliron/commonlog/simple"
)

const lspName = "hashlit-lsp"

var log = commonlog.GetLogger("hashlit.server")

// LspServer serves directive diagnostics over LSP.
type LspServer struct {
	config string // explicit hashlit.toml, or "" for walk-up discovery

	mu   sync.Mutex
	docs map[string]string // URI → full document content

	handler protocol.Handler
	server  *glspserver.Server
	version string
}

// NewLSP creates a server. config names a hashlit.toml to use for every
// document; when empty each document uses the nearest one above it.
func NewLSP(config string) *LspServer {
	s := &LspServer{
		config:  config,
		docs:    make(map[string]string),
		version: "0.1.0",
	}

	s.handler = protocol.Handler{
		Initialize:  s.initialize,
		Initialized: s.initialized,
		Shutdown:    s.shutdown,
		SetTrace:    s.setTrace,

		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidSave:   s.textDocumentDidSave,
		TextDocumentDidClose:  s.textDocumentDidClose,

		TextDocumentCompletion: s.textDocumentCompletion,
		TextDocumentHover:      s.textDocumentHover,
	}

	s.server = glspserver.NewServer(&s.handler, lspName, false)

	return s
}

// Run starts the LSP server on stdio. Blocks until the client disconnects.
func (s *LspServer) Run() error {
	return s.server.RunStdio()
}

// --- LSP lifecycle handlers ---

func (s *LspServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	commonlog.NewInfoMessage(0, "hashlit LSP initializing")

	capabilities := s.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    &syncKind,
		Save:      boolPtr(true),
	}

	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{":"},
	}
	capabilities.HoverProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lspName,
			Version: &s.version,
		},
	}, nil
}

func (s *LspServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *LspServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *LspServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// --- Document synchronization ---

func (s *LspServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	text := params.TextDocument.Text

	s.mu.Lock()
	s.docs[string(uri)] = text
	s.mu.Unlock()

	s.publishDiagnostics(ctx, uri, text)
	return nil
}

func (s *LspServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI

	// With Full sync, the last change event contains the full text
	if len(params.ContentChanges) > 0 {
		last := params.ContentChanges[len(params.ContentChanges)-1]
		if whole, ok := last.(protocol.TextDocumentContentChangeEventWhole); ok {
			s.mu.Lock()
			s.docs[string(uri)] = whole.Text
			s.mu.Unlock()

			s.publishDiagnostics(ctx, uri, whole.Text)
		}
	}
	return nil
}

// Included files may have changed on disk, so saving rechecks.
func (s *LspServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := params.TextDocument.URI

	s.mu.Lock()
	text, ok := s.docs[string(uri)]
	s.mu.Unlock()

	if ok {
		s.publishDiagnostics(ctx, uri, text)
	}
	return nil
}

func (s *LspServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI

	s.mu.Lock()
	delete(s.docs, string(uri))
	s.mu.Unlock()

	// Clear diagnostics for the closed document
	go ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

// --- Language features ---

func (s *LspServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	uri := params.TextDocument.URI

	s.mu.Lock()
	text, ok := s.docs[string(uri)]
	s.mu.Unlock()

	if !ok {
		return nil, nil
	}

	prefix, ok := entryPrefix(text, params.Position)
	if !ok {
		return nil, nil
	}
	doc, err := s.open(uri, text)
	if err != nil {
		return nil, nil
	}
	return doc.complete(prefix), nil
}

func (s *LspServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := params.TextDocument.URI

	s.mu.Lock()
	text, ok := s.docs[string(uri)]
	s.mu.Unlock()

	if !ok {
		return nil, nil
	}

	doc, err := s.open(uri, text)
	if err != nil {
		return nil, nil
	}
	return doc.hover(params.Position), nil
}

// --- Diagnostics ---

func (s *LspServer) publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	var diagnostics []protocol.Diagnostic

	doc, err := s.open(uri, text)
	if err != nil {
		diagnostics = append(diagnostics, diagnostic(protocol.Range{}, err.Error()))
	} else {
		diagnostics = doc.diagnostics()
	}

	go ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func diagnostic(r protocol.Range, msg string) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := lspName
	return protocol.Diagnostic{
		Range:    r,
		Severity: &severity,
		Source:   &source,
		Message:  msg,
	}
}

// --- Document analysis ---

// document is one Go source file with its directives and the entry points
// of the manifest that applies to it.
type document struct {
	path      string
	file      *gogen.FileModel
	scanErrs  compiler.ErrorList
	generator *gogen.Generator
	opts      compiler.Options
}

// open analyses text as the Go file at uri. Go syntax errors are left to
// other tools; the comments that did parse are still scanned.
func (s *LspServer) open(uri protocol.DocumentUri, text string) (*document, error) {
	path := uriPath(uri)
	dir := filepath.Dir(path)

	m, err := manifest.Resolve(s.config, dir)
	if err != nil {
		return nil, err
	}
	table, err := m.Table()
	if err != nil {
		return nil, err
	}

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, text, parser.ParseComments)
	if f == nil {
		return nil, err
	}
	fm, errs := gogen.ScanFile(fset, f, nil)
	log.Debugf("%s: %d directives", path, len(fm.Directives))

	return &document{
		path:      path,
		file:      fm,
		scanErrs:  errs,
		generator: &gogen.Generator{Table: table},
		opts:      m.Options(dir),
	}, nil
}

func (d *document) diagnostics() []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	for _, err := range d.scanErrs {
		diagnostics = append(diagnostics, diagnostic(lineRange(err.Span.Start.Line), err.Msg))
	}

	seen := make(map[string]*gogen.Directive)
	for i := range d.file.Directives {
		dir := &d.file.Directives[i]
		if prev, ok := seen[dir.Name]; ok {
			diagnostics = append(diagnostics, diagnostic(spanRange(dir.Span()),
				fmt.Sprintf("%s redeclared; previous directive at line %d", dir.Name, prev.At.Line)))
			continue
		}
		seen[dir.Name] = dir

		if _, err := d.generator.Expand(dir, d.opts); err != nil {
			diagnostics = append(diagnostics, d.errorDiagnostic(dir, err))
		}
	}
	return diagnostics
}

// errorDiagnostic places err on its own span when it lies in this file and
// on the directive's expression otherwise.
func (d *document) errorDiagnostic(dir *gogen.Directive, err *compiler.ParseError) protocol.Diagnostic {
	msg := err.Msg
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	if err.Span.File == d.path {
		return diagnostic(spanRange(err.Span), msg)
	}
	return diagnostic(spanRange(dir.Span()), err.Error())
}

// hover shows the declaration a directive on the hovered line expands to.
func (d *document) hover(pos protocol.Position) *protocol.Hover {
	for i := range d.file.Directives {
		dir := &d.file.Directives[i]
		if dir.At.Line != int(pos.Line)+1 {
			continue
		}

		var b strings.Builder
		fmt.Fprintf(&b, "**%s** (%s)\n\n", dir.Name, dir.Entry)
		decl, err := d.generator.Expand(dir, d.opts)
		if err != nil {
			fmt.Fprintf(&b, "%s\n", err.Msg)
		} else {
			kw := "var"
			if decl.Const() {
				kw = "const"
			}
			fmt.Fprintf(&b, "```go\n%s %s = %s\n```\n", kw, dir.Name, compiler.Format(decl.Node))
		}

		r := spanRange(dir.Span())
		return &protocol.Hover{
			Contents: protocol.MarkupContent{
				Kind:  protocol.MarkupKindMarkdown,
				Value: b.String(),
			},
			Range: &r,
		}
	}
	return nil
}

// complete lists the entry points starting with prefix.
func (d *document) complete(prefix string) []protocol.CompletionItem {
	var items []protocol.CompletionItem
	for _, e := range d.generator.Table {
		if !strings.HasPrefix(e.Name, prefix) {
			continue
		}
		kind := protocol.CompletionItemKindFunction
		detail := e.Mode.String() + " digest"
		name := e.Name
		items = append(items, protocol.CompletionItem{
			Label:      name,
			Kind:       &kind,
			Detail:     &detail,
			InsertText: &name,
		})
	}
	return items
}

// --- Position helpers ---

// spanRange converts a span to an LSP range. Span columns count bytes,
// which matches UTF-16 offsets for ASCII lines.
func spanRange(span compiler.Span) protocol.Range {
	if !span.End.IsValid() {
		span.End = span.Start
	}
	return protocol.Range{
		Start: protocol.Position{Line: uint32(span.Start.Line - 1), Character: uint32(span.Start.Column - 1)},
		End:   protocol.Position{Line: uint32(span.End.Line - 1), Character: uint32(span.End.Column - 1)},
	}
}

func lineRange(line int) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: uint32(line - 1)},
		End:   protocol.Position{Line: uint32(line)},
	}
}

// entryPrefix returns the partial entry point name before the cursor when
// the cursor sits right after a directive prefix.
func entryPrefix(text string, pos protocol.Position) (string, bool) {
	lines := strings.Split(text, "\n")
	if int(pos.Line) >= len(lines) {
		return "", false
	}
	line := lines[pos.Line]
	col := int(pos.Character)
	if col > len(line) {
		col = len(line)
	}

	// Walk backwards from cursor to find the start of the identifier
	start := col
	for start > 0 {
		ch := rune(line[start-1])
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' {
			start--
		} else {
			break
		}
	}

	if strings.TrimLeft(line[:start], " \t") != gogen.Prefix {
		return "", false
	}
	return line[start:col], true
}

func uriPath(uri protocol.DocumentUri) string {
	u, err := url.Parse(string(uri))
	if err != nil || u.Scheme != "file" {
		return string(uri)
	}
	return filepath.FromSlash(u.Path)
}

func boolPtr(b bool) *bool {
	return &b
}

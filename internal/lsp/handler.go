package lsp

import (
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"yulopt/internal/ast"
	"yulopt/internal/dialect"
	"yulopt/internal/parser"
)

var log = commonlog.GetLogger("yulopt.lsp")

// Define the set of supported semantic token types advertised in the legend
var SemanticTokenTypes = []string{
	"function",
	"variable",
	"parameter",
	"keyword",
	"number",
	"string",
	"type",
	"macro",
}

// Define the set of supported semantic token modifiers
var SemanticTokenModifiers = []string{
	"declaration",
	"defaultLibrary",
}

// YulHandler implements the LSP server handlers for textual IR files
type YulHandler struct {
	mu      sync.RWMutex
	content map[string]string
	blocks  map[string]*ast.Block
	dialect dialect.Dialect
}

// NewYulHandler creates a handler that resolves builtins with d
func NewYulHandler(d dialect.Dialect) *YulHandler {
	return &YulHandler{
		content: make(map[string]string),
		blocks:  make(map[string]*ast.Block),
		dialect: d,
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *YulHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
			DocumentFormattingProvider: true,
		},
	}, nil
}

func (h *YulHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("LSP initialized")
	return nil
}

func (h *YulHandler) Shutdown(ctx *glsp.Context) error {
	log.Info("LSP shutdown")
	return nil
}

func (h *YulHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	log.Debugf("trace set to %s", params.Value)
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor
func (h *YulHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Infof("opened file: %s", params.TextDocument.URI)
	return h.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
}

// TextDocumentDidClose handles file close notifications from the editor
func (h *YulHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Infof("closed file: %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, path)
	delete(h.blocks, path)

	return nil
}

// TextDocumentDidChange handles file change notifications. Only full-document sync is
// advertised, so the last change carries the whole text.
func (h *YulHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Debugf("changed file: %s", params.TextDocument.URI)

	for i := len(params.ContentChanges) - 1; i >= 0; i-- {
		switch change := params.ContentChanges[i].(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			return h.update(ctx, params.TextDocument.URI, change.Text)
		case protocol.TextDocumentContentChangeEvent:
			if change.Range == nil {
				return h.update(ctx, params.TextDocument.URI, change.Text)
			}
		}
	}
	return nil
}

// TextDocumentCompletion offers the dialect builtins and the functions of the document
func (h *YulHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	items := []protocol.CompletionItem{}

	if evm, ok := h.dialect.(*dialect.EVMDialect); ok {
		kind := protocol.CompletionItemKindFunction
		for _, name := range dialect.BuiltinNames(evm.Builtins()) {
			builtin := evm.Builtin(name)
			detail := fmt.Sprintf("builtin, %d arguments, %d results", builtin.Parameters, builtin.Returns)
			items = append(items, protocol.CompletionItem{Label: string(name), Kind: &kind, Detail: &detail})
		}
	}

	if path, err := uriToPath(params.TextDocument.URI); err == nil {
		h.mu.RLock()
		block := h.blocks[path]
		h.mu.RUnlock()

		kind := protocol.CompletionItemKindFunction
		ast.Inspect(nodeOrNil(block), func(n ast.Node) bool {
			if fn, ok := n.(*ast.FunctionDefinition); ok {
				detail := fmt.Sprintf("function(%s)", fn.Parameters)
				items = append(items, protocol.CompletionItem{Label: string(fn.Name), Kind: &kind, Detail: &detail})
			}
			return true
		})
	}

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *YulHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	h.mu.RLock()
	content := h.content[path]
	block := h.blocks[path]
	h.mu.RUnlock()

	tokens := collectSemanticTokens(block, content, h.dialect)

	data := []uint32{}
	var prevLine, prevStart uint32

	// Encode tokens into LSP wire format (using delta-line, delta-start compression)
	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		} else {
			deltaStart = token.StartChar
		}

		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}

	return &protocol.SemanticTokens{Data: data}, nil
}

// TextDocumentFormatting replaces the document by its canonical printed form.
// Documents with syntax errors are left alone.
func (h *YulHandler) TextDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	h.mu.RLock()
	content, hasContent := h.content[path]
	block := h.blocks[path]
	h.mu.RUnlock()

	if !hasContent || block == nil {
		return nil, nil
	}

	formatted := block.String() + "\n"
	if formatted == content {
		return []protocol.TextEdit{}, nil
	}

	return []protocol.TextEdit{{
		Range:   wholeDocument(content),
		NewText: formatted,
	}}, nil
}

// update parses content, remembers it and publishes its diagnostics
func (h *YulHandler) update(ctx *glsp.Context, uri protocol.DocumentUri, content string) error {
	path, err := uriToPath(uri)
	if err != nil {
		return err
	}

	block, parseErrors := parser.ParseSource(path, content)

	h.mu.Lock()
	h.content[path] = content
	h.blocks[path] = block
	h.mu.Unlock()

	diagnostics := ConvertParseErrors(parseErrors)
	if block != nil {
		diagnostics = append(diagnostics, UnusedParameterDiagnostics(block)...)
	}
	sendDiagnosticNotification(ctx, uri, diagnostics)
	return nil
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) -> C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func wholeDocument(content string) protocol.Range {
	lines := strings.Split(content, "\n")
	return protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End: protocol.Position{
			Line:      uint32(len(lines) - 1),
			Character: uint32(len(lines[len(lines)-1])),
		},
	}
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	log.Debugf("sending %d diagnostics for %s", len(diagnostics), uri)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// nodeOrNil keeps a nil block from turning into a non-nil interface
func nodeOrNil(block *ast.Block) ast.Node {
	if block == nil {
		return nil
	}
	return block
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}

package lsp_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"yulopt/internal/dialect"
	"yulopt/internal/lsp"
)

const testURI = "file:///workspace/input.yul"

const testSource = `{
    function f(a, b) -> r {
        let t := add(a, 1)
        r := t
    }
    sstore(0, f(1, "x"))
}
`

type published struct {
	method string
	params *protocol.PublishDiagnosticsParams
}

func newContext(notifications *[]published) *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			*notifications = append(*notifications, published{method, params.(*protocol.PublishDiagnosticsParams)})
		},
	}
}

func openDocument(t *testing.T, handler *lsp.YulHandler, ctx *glsp.Context, text string) {
	t.Helper()
	err := handler.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: testURI, LanguageID: "yul", Version: 1, Text: text},
	})
	require.NoError(t, err)
}

func TestInitialize(t *testing.T) {
	handler := lsp.NewYulHandler(dialect.NewEVMDialect(true))

	result, err := handler.Initialize(&glsp.Context{}, &protocol.InitializeParams{})
	require.NoError(t, err)

	initResult, ok := result.(*protocol.InitializeResult)
	require.True(t, ok)
	assert.Equal(t, true, initResult.Capabilities.DocumentFormattingProvider)

	tokens, ok := initResult.Capabilities.SemanticTokensProvider.(*protocol.SemanticTokensOptions)
	require.True(t, ok)
	assert.Equal(t, lsp.SemanticTokenTypes, tokens.Legend.TokenTypes)
}

func TestDidOpenPublishesDiagnostics(t *testing.T) {
	t.Run("UnusedParameter", func(t *testing.T) {
		var notifications []published
		handler := lsp.NewYulHandler(dialect.NewEVMDialect(true))
		openDocument(t, handler, newContext(&notifications), testSource)

		require.Len(t, notifications, 1)
		assert.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, notifications[0].method)

		diagnostics := notifications[0].params.Diagnostics
		require.Len(t, diagnostics, 1)
		assert.Equal(t, protocol.DiagnosticSeverityHint, *diagnostics[0].Severity)
		assert.Equal(t, "parameter 'b' of function 'f' is never used", diagnostics[0].Message)
		assert.Equal(t, protocol.Position{Line: 1, Character: 18}, diagnostics[0].Range.Start)
	})

	t.Run("SyntaxError", func(t *testing.T) {
		var notifications []published
		handler := lsp.NewYulHandler(dialect.NewEVMDialect(true))
		openDocument(t, handler, newContext(&notifications), "{ 1 := 2 }")

		require.Len(t, notifications, 1)
		diagnostics := notifications[0].params.Diagnostics
		require.NotEmpty(t, diagnostics)
		assert.Equal(t, protocol.DiagnosticSeverityError, *diagnostics[0].Severity)
		assert.Equal(t, "yulopt-parser", *diagnostics[0].Source)
	})

	t.Run("ChangeClearsErrors", func(t *testing.T) {
		var notifications []published
		handler := lsp.NewYulHandler(dialect.NewEVMDialect(true))
		ctx := newContext(&notifications)
		openDocument(t, handler, ctx, "{ 1 := 2 }")

		err := handler.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
			TextDocument: protocol.VersionedTextDocumentIdentifier{
				TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
				Version:                2,
			},
			ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "{ let x := 1 }"}},
		})
		require.NoError(t, err)

		require.Len(t, notifications, 2)
		assert.NotNil(t, notifications[1].params.Diagnostics)
		assert.Empty(t, notifications[1].params.Diagnostics)
	})
}

func TestTextDocumentFormatting(t *testing.T) {
	handler := lsp.NewYulHandler(dialect.NewEVMDialect(true))
	openDocument(t, handler, &glsp.Context{}, "{ let x := 1   sstore(0,x) }")

	params := &protocol.DocumentFormattingParams{TextDocument: protocol.TextDocumentIdentifier{URI: testURI}}
	edits, err := handler.TextDocumentFormatting(&glsp.Context{}, params)
	require.NoError(t, err)
	require.Len(t, edits, 1)

	assert.Equal(t, "{\n    let x := 1\n    sstore(0, x)\n}\n", edits[0].NewText)
	assert.Equal(t, protocol.Position{Line: 0, Character: 28}, edits[0].Range.End)

	openDocument(t, handler, &glsp.Context{}, edits[0].NewText)
	edits, err = handler.TextDocumentFormatting(&glsp.Context{}, params)
	require.NoError(t, err)
	assert.Empty(t, edits)
}

func TestTextDocumentCompletion(t *testing.T) {
	handler := lsp.NewYulHandler(dialect.NewEVMDialect(true))
	openDocument(t, handler, &glsp.Context{}, testSource)

	result, err := handler.TextDocumentCompletion(&glsp.Context{}, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		},
	})
	require.NoError(t, err)

	list := result.(*protocol.CompletionList)
	labels := map[string]bool{}
	for _, item := range list.Items {
		labels[item.Label] = true
	}
	assert.True(t, labels["mstore"])
	assert.True(t, labels["memoryinit"])
	assert.True(t, labels["f"])
}

func TestTextDocumentSemanticTokensFull(t *testing.T) {
	handler := lsp.NewYulHandler(dialect.NewEVMDialect(true))
	openDocument(t, handler, &glsp.Context{}, testSource)

	tokens, err := handler.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)
	require.NotNil(t, tokens)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.Len(t, decoded, 17)

	assertToken(t, &decoded[0], 2, 5, 8, "keyword", nil)
	assertToken(t, &decoded[1], 2, 14, 1, "function", []string{"declaration"})
	assertToken(t, &decoded[2], 2, 16, 1, "parameter", []string{"declaration"})
	assertToken(t, &decoded[3], 2, 19, 1, "parameter", []string{"declaration"})
	assertToken(t, &decoded[4], 2, 25, 1, "variable", []string{"declaration"})
	assertToken(t, &decoded[5], 3, 9, 3, "keyword", nil)
	assertToken(t, &decoded[6], 3, 13, 1, "variable", []string{"declaration"})
	assertToken(t, &decoded[7], 3, 18, 3, "function", []string{"defaultLibrary"})
	assertToken(t, &decoded[8], 3, 22, 1, "parameter", nil)
	assertToken(t, &decoded[9], 3, 25, 1, "number", nil)
	assertToken(t, &decoded[10], 4, 9, 1, "variable", nil)
	assertToken(t, &decoded[11], 4, 14, 1, "variable", nil)
	assertToken(t, &decoded[12], 6, 5, 6, "function", []string{"defaultLibrary"})
	assertToken(t, &decoded[13], 6, 12, 1, "number", nil)
	assertToken(t, &decoded[14], 6, 15, 1, "function", nil)
	assertToken(t, &decoded[15], 6, 17, 1, "number", nil)
	assertToken(t, &decoded[16], 6, 20, 3, "string", nil)
}

func TestDidCloseForgetsDocument(t *testing.T) {
	handler := lsp.NewYulHandler(dialect.NewEVMDialect(true))
	openDocument(t, handler, &glsp.Context{}, testSource)

	err := handler.TextDocumentDidClose(&glsp.Context{}, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)

	tokens, err := handler.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)
	assert.Empty(t, tokens.Data)
}

type DecodedToken struct {
	Index     int
	Line      uint32
	Char      uint32
	Length    uint32
	Type      string
	Modifiers []string
}

func decodeSemanticTokens(raw []uint32) ([]DecodedToken, error) {
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("raw token data length %d is not a multiple of 5", len(raw))
	}

	var (
		decoded []DecodedToken
		line    uint32
		char    uint32
	)

	for i := 0; i < len(raw); i += 5 {
		deltaLine := raw[i]
		deltaStart := raw[i+1]
		length := raw[i+2]
		tokenTypeIdx := raw[i+3]
		tokenModMask := raw[i+4]

		if deltaLine == 0 {
			char += deltaStart
		} else {
			line += deltaLine
			char = deltaStart
		}

		var modifiers []string
		for j, name := range lsp.SemanticTokenModifiers {
			if tokenModMask&(1<<j) != 0 {
				modifiers = append(modifiers, name)
			}
		}

		decoded = append(decoded, DecodedToken{
			Index:     i / 5,
			Line:      line + 1, // LSP uses 0-based indexing
			Char:      char + 1, // LSP uses 0-based indexing
			Length:    length,
			Type:      lsp.SemanticTokenTypes[tokenTypeIdx],
			Modifiers: modifiers,
		})
	}

	return decoded, nil
}

func assertToken(t *testing.T, token *DecodedToken, expectedLine, expectedChar, expectedLength uint32, expectedType string, expectedModifiers []string) {
	require.Equal(t, expectedLine, token.Line, "line mismatch (expected line %d)", expectedLine)
	require.Equal(t, expectedChar, token.Char, "char mismatch (expected char %d)", expectedChar)
	require.Equal(t, expectedLength, token.Length, "length mismatch")
	require.Equal(t, expectedType, token.Type, "type mismatch")
	require.ElementsMatch(t, expectedModifiers, token.Modifiers, "modifiers mismatch")
}

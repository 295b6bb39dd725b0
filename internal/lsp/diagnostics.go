package lsp

import (
	"fmt"

	protocol "github.com/tliron/glsp/protocol_3_16"
	"yulopt/internal/ast"
	"yulopt/internal/errors"
	"yulopt/internal/optimizer"
	"yulopt/internal/parser"
)

// ConvertParseErrors transforms parser errors into LSP diagnostics for IDE display.
// The list is never nil so that publishing it clears stale errors.
func ConvertParseErrors(parseErrors []parser.ParseError) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	for _, parseErr := range parseErrors {
		compilerErr := errors.FromParseError(parseErr)
		diagnostic := protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{
					Line:      uint32(parseErr.Position.Line - 1),   // Convert to 0-based indexing
					Character: uint32(parseErr.Position.Column - 1), // Convert to 0-based indexing
				},
				End: protocol.Position{
					Line:      uint32(parseErr.Position.Line - 1),
					Character: uint32(parseErr.Position.Column + 5), // Rough span for visibility
				},
			},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Code:     &protocol.IntegerOrString{Value: compilerErr.Code},
			Source:   ptrString("yulopt-parser"),
			Message:  parseErr.Message,
		}
		diagnostics = append(diagnostics, diagnostic)
	}

	return diagnostics
}

// UnusedParameterDiagnostics hints at every function parameter that is never referenced
// in the function body. These are the parameters the pruner removes from top-level functions.
func UnusedParameterDiagnostics(block *ast.Block) []protocol.Diagnostic {
	var diagnostics []protocol.Diagnostic

	ast.Inspect(block, func(n ast.Node) bool {
		fn, ok := n.(*ast.FunctionDefinition)
		if !ok {
			return true
		}
		refs := optimizer.CountReferences(fn.Body)
		for _, param := range fn.Parameters {
			if refs[param.Name] > 0 {
				continue
			}
			diagnostics = append(diagnostics, protocol.Diagnostic{
				Range: protocol.Range{
					Start: protocol.Position{Line: uint32(param.Pos.Line - 1), Character: uint32(param.Pos.Column - 1)},
					End:   protocol.Position{Line: uint32(param.Pos.Line - 1), Character: uint32(param.Pos.Column - 1 + len(param.Name))},
				},
				Severity: ptrSeverity(protocol.DiagnosticSeverityHint),
				Source:   ptrString("yulopt"),
				Message:  fmt.Sprintf("parameter '%s' of function '%s' is never used", param.Name, fn.Name),
				Tags:     []protocol.DiagnosticTag{protocol.DiagnosticTagUnnecessary},
			})
		}
		return true
	})

	return diagnostics
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}

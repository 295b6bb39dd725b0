package errors

import (
	"fmt"
	"strings"

	"yulopt/internal/ast"
	"yulopt/internal/parser"
)

// ErrorBuilder provides a fluent interface for creating diagnostics
type ErrorBuilder struct {
	err CompilerError
}

// NewError creates a new error builder
func NewError(code, message string, pos ast.Position) *ErrorBuilder {
	return &ErrorBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the error span
func (b *ErrorBuilder) WithLength(length int) *ErrorBuilder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *ErrorBuilder) WithSuggestion(message string) *ErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, message)
	return b
}

// WithNote adds a note to the error
func (b *ErrorBuilder) WithNote(note string) *ErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *ErrorBuilder) WithHelp(help string) *ErrorBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed compiler error
func (b *ErrorBuilder) Build() CompilerError {
	return b.err
}

// FromParseError wraps a parser error into a diagnostic
func FromParseError(pe parser.ParseError) CompilerError {
	code := ErrorSyntax
	if strings.HasPrefix(pe.Message, "reserved keyword") {
		code = ErrorReservedKeyword
	}
	return NewError(code, pe.Message, pe.Position).Build()
}

// UnknownStep creates an error for a step name that is not registered
func UnknownStep(name string, available []string) CompilerError {
	builder := NewError(ErrorUnknownStep, fmt.Sprintf("unknown optimizer step '%s'", name), ast.Position{})

	if similar := findSimilarNames(name, available); len(similar) == 1 {
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
	} else if len(similar) > 1 {
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similar, "', '")))
	}

	return builder.WithNote("available steps: " + strings.Join(available, ", ")).Build()
}

// UnknownDialect creates an error for a dialect name that is not known
func UnknownDialect(name string, available []string) CompilerError {
	builder := NewError(ErrorUnknownDialect, fmt.Sprintf("unknown dialect '%s'", name), ast.Position{})
	for _, candidate := range findSimilarNames(name, available) {
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", candidate))
	}
	return builder.WithNote("available dialects: " + strings.Join(available, ", ")).Build()
}

// InvalidConfig creates an error for a configuration source that cannot be used
func InvalidConfig(source string, cause error) CompilerError {
	return NewError(ErrorInvalidConfig, fmt.Sprintf("invalid configuration in %s: %v", source, cause), ast.Position{}).
		Build()
}

// InternalError reports a failed assertion
func InternalError(ae *AssertionError) CompilerError {
	return NewError(ErrorInternalAssertion, ae.Message, ast.Position{}).
		WithHelp("this indicates a bug in an earlier pipeline stage").
		Build()
}

func findSimilarNames(target string, candidates []string) []string {
	var similar []string

	for _, candidate := range candidates {
		if levenshteinDistance(target, candidate) <= 2 && len(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}

	return similar
}

// Simple Levenshtein distance implementation for finding similar names
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

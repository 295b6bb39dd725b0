package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"yulopt/internal/ast"
	"yulopt/internal/parser"
)

func TestErrorReporter(t *testing.T) {
	source := "{\n    let x := \n}"
	reporter := NewErrorReporter("test.yul", source)

	err := NewError(ErrorSyntax, "unexpected token \"}\"", ast.Position{Filename: "test.yul", Line: 3, Column: 1}).
		WithSuggestion("add an initial value").
		Build()
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "error["+ErrorSyntax+"]")
	assert.Contains(t, formatted, "unexpected token")
	assert.Contains(t, formatted, "test.yul:3:1")
	assert.Contains(t, formatted, "add an initial value")
}

func TestErrorWithoutPosition(t *testing.T) {
	reporter := NewErrorReporter("config.toml", "")
	err := UnknownStep("unused-parameter-prunr", []string{"unused-parameter-pruner", "stack-to-memory"})

	formatted := reporter.FormatError(err)
	assert.NotContains(t, formatted, "-->")
	assert.Contains(t, formatted, "did you mean 'unused-parameter-pruner'?")
	assert.Equal(t, "error[E0301]: unknown optimizer step 'unused-parameter-prunr'", err.Error())
}

func TestFromParseError(t *testing.T) {
	_, errs := parser.ParseSource("kw.yul", "{ let leave := 1 }")
	require.Len(t, errs, 1)

	err := FromParseError(errs[0])
	assert.Equal(t, ErrorReservedKeyword, err.Code)
	assert.Equal(t, 1, err.Position.Line)
	assert.True(t, strings.HasPrefix(err.Error(), "kw.yul:1:"))

	_, errs = parser.ParseSource("syntax.yul", "{ let x := }")
	require.NotEmpty(t, errs)
	assert.Equal(t, ErrorSyntax, FromParseError(errs[0]).Code)
}

func TestUnknownDialect(t *testing.T) {
	err := UnknownDialect("evn", []string{"evm", "evm-object", "plain"})
	assert.Equal(t, ErrorUnknownDialect, err.Code)
	assert.Contains(t, err.Suggestions, "did you mean 'evm'?")
	assert.Contains(t, err.Notes[0], "evm-object")
}

func TestAssert(t *testing.T) {
	assert.NotPanics(t, func() { Assert(true, "fine") })

	defer func() {
		r := recover()
		ae, ok := r.(*AssertionError)
		require.True(t, ok)
		assert.Equal(t, "broken", ae.Message)
		assert.Equal(t, ErrorInternalAssertion, InternalError(ae).Code)
	}()
	Assert(false, "broken")
}

func TestRecover(t *testing.T) {
	run := func(f func()) (err error) {
		defer func() { err = Recover(recover(), err) }()
		f()
		return nil
	}

	assert.NoError(t, run(func() {}))

	err := run(func() { Assert(false, "no memory access") })
	assert.EqualError(t, err, "internal assertion failed: no memory access")

	assert.Panics(t, func() { _ = run(func() { panic("other") }) })
}

func TestErrorMarkerCreation(t *testing.T) {
	reporter := NewErrorReporter("test.yul", "let variable := value")

	marker := reporter.createMarker(5, 8, Error)
	assert.Equal(t, 4, strings.Count(marker, " "))
	assert.Equal(t, 8, strings.Count(marker, "^"))
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("hello", "hello"))
	assert.Equal(t, 1, levenshteinDistance("hello", "hallo"))
	assert.Equal(t, 1, levenshteinDistance("hello", "helo"))
	assert.Equal(t, 5, levenshteinDistance("hello", ""))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
}

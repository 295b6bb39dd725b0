package optimizer

import (
	"testing"

	"github.com/stretchr/testify/require"
	"yulopt/internal/ast"
	"yulopt/internal/dialect"
	"yulopt/internal/parser"
)

func parse(t *testing.T, source string) *ast.Block {
	t.Helper()
	block, errs := parser.ParseSource("test.yul", source)
	require.Empty(t, errs)
	require.NotNil(t, block)
	return block
}

// format returns the canonical text of source
func format(t *testing.T, source string) string {
	t.Helper()
	return parse(t, source).String()
}

// runStep parses source, runs step on it and returns the printed result
func runStep(t *testing.T, d dialect.Dialect, step Step, source string) string {
	t.Helper()
	block := parse(t, source)
	step.Run(NewContext(d, block), block)
	return block.String()
}

func objectDialect() dialect.Dialect {
	return dialect.NewEVMDialect(true)
}

func countCalls(block *ast.Block, name ast.Symbol) int {
	return len(FindFunctionCalls(block, name))
}

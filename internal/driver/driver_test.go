package driver

import (
	"testing"

	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"yulopt/internal/config"
	"yulopt/internal/dialect"
	"yulopt/internal/errors"
	"yulopt/internal/parser"
)

func canonical(t *testing.T, source string) string {
	t.Helper()
	block, errs := parser.ParseSource("expected.yul", source)
	require.Empty(t, errs)
	return block.String()
}

func TestOptimize(t *testing.T) {
	cfg := config.Default()
	cfg.Slots = map[string]map[string]uint64{"f": {"t": 0}}

	opt, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"unused-parameter-pruner", "memory-escalation"}, opt.Steps())
	assert.Equal(t, "evm-object", opt.Dialect().Name())

	block, err := opt.Optimize("input.yul", `{
		memoryinit(0x80)
		function f(x, y) -> z {
			let t := x
			z := t
		}
		sstore(0, f(1, 2))
	}`)
	require.NoError(t, err)

	assert.Equal(t, canonical(t, `{
		memoryinit(0xa0)
		function f(x) -> z {
			mstore(0x80, x)
			z := mload(0x80)
		}
		function f_1(x, y) -> z { z := f(x) }
		sstore(0, f_1(1, 2))
	}`), block.String())
}

func TestOptimizeSyntaxErrors(t *testing.T) {
	opt, err := New(config.Default())
	require.NoError(t, err)

	_, err = opt.Optimize("broken.yul", "{ 1 := 2 }")
	require.Error(t, err)

	syntaxErrors, ok := err.(SyntaxErrors)
	require.True(t, ok)
	require.NotEmpty(t, syntaxErrors)
	assert.Equal(t, errors.ErrorSyntax, syntaxErrors[0].Code)
	assert.Contains(t, err.Error(), "broken.yul:1:")
}

func TestOptimizeReportsAssertions(t *testing.T) {
	cfg := config.Default()
	cfg.Dialect = "plain"
	cfg.Steps = []string{"stack-to-memory"}

	opt, err := New(cfg)
	require.NoError(t, err)

	_, err = opt.Optimize("input.yul", "{ function f() { } }")
	require.Error(t, err)
	_, ok := err.(*errors.AssertionError)
	assert.True(t, ok)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Steps = []string{"unknown-step"}

	_, err := New(cfg)
	assert.Error(t, err)
}

func TestInjector(t *testing.T) {
	cfg := config.Default()
	cfg.Dialect = "evm"
	injector := NewInjector(cfg)

	d, err := do.Invoke[dialect.Dialect](injector)
	require.NoError(t, err)
	assert.Equal(t, "evm", d.Name())

	first := do.MustInvoke[*Optimizer](injector)
	second := do.MustInvoke[*Optimizer](injector)
	assert.Same(t, first, second)
}

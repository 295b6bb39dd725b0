package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"yulopt/internal/ast"
)

func TestByName(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			d, ok := ByName(name)
			require.True(t, ok)
			assert.Equal(t, name, d.Name())
		})
	}

	_, ok := ByName("wasm")
	assert.False(t, ok)
}

func TestEVMDialect(t *testing.T) {
	t.Run("Builtins", func(t *testing.T) {
		d := NewEVMDialect(false)

		add := d.Builtin("add")
		require.NotNil(t, add)
		assert.Equal(t, 2, add.Parameters)
		assert.Equal(t, 1, add.Returns)
		assert.Equal(t, EffectPure, add.Effects)

		store := d.Builtin(d.MemoryStore())
		require.NotNil(t, store)
		assert.True(t, store.Effects.Has(EffectMemoryWrite))
		assert.False(t, store.Effects.Has(EffectMemoryRead))

		assert.NotNil(t, d.Builtin(d.MemoryLoad()))
		assert.Nil(t, d.Builtin("f"))
	})

	t.Run("ObjectAccess", func(t *testing.T) {
		assert.False(t, NewEVMDialect(false).ProvidesObjectAccess())
		assert.Nil(t, NewEVMDialect(false).Builtin("memoryinit"))

		d := NewEVMDialect(true)
		assert.True(t, d.ProvidesObjectAccess())
		require.NotNil(t, d.Builtin(d.MemoryInit()))
		assert.Equal(t, 1, d.Builtin(d.MemoryInit()).Parameters)
	})

	t.Run("Reserved", func(t *testing.T) {
		d := NewEVMDialect(true)
		assert.True(t, d.IsReserved("mstore"))
		assert.True(t, d.IsReserved("function"))
		assert.False(t, d.IsReserved("x"))
	})

	t.Run("SortedNames", func(t *testing.T) {
		names := BuiltinNames(NewEVMDialect(false).Builtins())
		require.NotEmpty(t, names)
		for i := 1; i < len(names); i++ {
			assert.Less(t, string(names[i-1]), string(names[i]))
		}
		assert.Contains(t, names, ast.Symbol("sstore"))
	})
}

func TestPlain(t *testing.T) {
	d := NewPlain()
	assert.Equal(t, "plain", d.Name())
	assert.Nil(t, d.Builtin("mstore"))
	assert.True(t, d.IsReserved("let"))
	assert.False(t, d.IsReserved("mstore"))
}

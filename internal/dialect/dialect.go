// Package dialect describes the builtin functions and capabilities of a target machine.
package dialect

import (
	"sort"

	"yulopt/internal/ast"
)

// Effect describes what a builtin may observe or change
type Effect uint8

// EffectPure marks builtins without side effects
const EffectPure Effect = 0

const (
	EffectMemoryRead Effect = 1 << iota
	EffectMemoryWrite
	EffectStorageRead
	EffectStorageWrite
	EffectTerminates
	EffectOther
)

// Has reports whether all bits of other are set in e
func (e Effect) Has(other Effect) bool {
	return e&other == other
}

// BuiltinFunction is a function provided by the target rather than defined in the program
type BuiltinFunction struct {
	Name       ast.Symbol
	Parameters int
	Returns    int
	Effects    Effect
}

// Dialect is the capability descriptor consulted by the optimizer passes
type Dialect interface {
	Name() string
	Builtin(name ast.Symbol) *BuiltinFunction
	// IsReserved reports names that a dispenser must never hand out
	IsReserved(name ast.Symbol) bool
}

// Names lists every dialect known to ByName
func Names() []string {
	return []string{"evm", "evm-object", "plain"}
}

// ByName returns the dialect registered under name
func ByName(name string) (Dialect, bool) {
	switch name {
	case "evm":
		return NewEVMDialect(false), true
	case "evm-object":
		return NewEVMDialect(true), true
	case "plain":
		return NewPlain(), true
	default:
		return nil, false
	}
}

// BuiltinNames returns the sorted builtin names of a table
func BuiltinNames(builtins map[ast.Symbol]*BuiltinFunction) []ast.Symbol {
	names := make([]ast.Symbol, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Plain is a dialect without builtins or memory access
type Plain struct{}

func NewPlain() *Plain {
	return &Plain{}
}

func (*Plain) Name() string                        { return "plain" }
func (*Plain) Builtin(ast.Symbol) *BuiltinFunction { return nil }
func (*Plain) IsReserved(name ast.Symbol) bool     { return ast.IsKeyword(name) }

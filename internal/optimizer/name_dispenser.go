package optimizer

import (
	"fmt"

	"yulopt/internal/ast"
	"yulopt/internal/dialect"
)

// NameDispenser hands out names that are not used anywhere in the program, not
// reserved by the dialect and not dispensed before during the same run.
type NameDispenser struct {
	dialect dialect.Dialect
	used    map[ast.Symbol]bool
	counter uint64
}

// NewNameDispenser creates a dispenser that treats used as already taken
func NewNameDispenser(d dialect.Dialect, used map[ast.Symbol]bool) *NameDispenser {
	taken := make(map[ast.Symbol]bool, len(used))
	for name := range used {
		taken[name] = true
	}
	return &NameDispenser{dialect: d, used: taken}
}

// NewName returns hint if it is still free, otherwise hint with a numeric suffix.
// The counter is shared by all hints so suffixes grow over the run.
func (n *NameDispenser) NewName(hint ast.Symbol) ast.Symbol {
	name := hint
	for n.illegal(name) {
		n.counter++
		name = ast.Symbol(fmt.Sprintf("%s_%d", hint, n.counter))
	}
	n.used[name] = true
	return name
}

// MarkUsed reserves name so that it is never dispensed
func (n *NameDispenser) MarkUsed(name ast.Symbol) {
	n.used[name] = true
}

func (n *NameDispenser) illegal(name ast.Symbol) bool {
	if name == "" || n.used[name] {
		return true
	}
	return n.dialect != nil && n.dialect.IsReserved(name)
}

// CollectNames returns every name that occurs in the tree: function names, binding sites,
// identifier references and call targets.
func CollectNames(node ast.Node) map[ast.Symbol]bool {
	names := make(map[ast.Symbol]bool)
	if node == nil {
		return names
	}

	ast.Inspect(node, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.FunctionDefinition:
			names[x.Name] = true
			for _, name := range x.Parameters.Names() {
				names[name] = true
			}
			for _, name := range x.ReturnVariables.Names() {
				names[name] = true
			}
		case *ast.VariableDeclaration:
			for _, name := range x.Variables.Names() {
				names[name] = true
			}
		case *ast.Identifier:
			names[x.Name] = true
		}
		return true
	})
	return names
}

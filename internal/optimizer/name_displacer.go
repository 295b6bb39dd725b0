package optimizer

import "yulopt/internal/ast"

// DisplaceNames renames every occurrence of the given names below node to fresh names from
// dispenser: function definitions, binding sites, call targets and identifier references,
// nested functions included. Each displaced name receives exactly one replacement, chosen
// when it is first met in source order. The returned map holds old -> new.
func DisplaceNames(node ast.Node, names map[ast.Symbol]bool, dispenser *NameDispenser) map[ast.Symbol]ast.Symbol {
	d := &nameDisplacer{
		names:        names,
		dispenser:    dispenser,
		translations: make(map[ast.Symbol]ast.Symbol),
	}
	// the displaced names stay taken even once no occurrence is left
	for name := range names {
		dispenser.MarkUsed(name)
	}

	ast.Inspect(node, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.FunctionDefinition:
			x.Name = d.replace(x.Name)
			d.replaceAll(x.Parameters)
			d.replaceAll(x.ReturnVariables)
		case *ast.VariableDeclaration:
			d.replaceAll(x.Variables)
		case *ast.Identifier:
			x.Name = d.replace(x.Name)
		}
		return true
	})
	return d.translations
}

type nameDisplacer struct {
	names        map[ast.Symbol]bool
	dispenser    *NameDispenser
	translations map[ast.Symbol]ast.Symbol
}

func (d *nameDisplacer) replace(name ast.Symbol) ast.Symbol {
	if !d.names[name] {
		return name
	}
	if fresh, ok := d.translations[name]; ok {
		return fresh
	}
	fresh := d.dispenser.NewName(name)
	d.translations[name] = fresh
	return fresh
}

func (d *nameDisplacer) replaceAll(list ast.TypedNameList) {
	for i := range list {
		list[i].Name = d.replace(list[i].Name)
	}
}

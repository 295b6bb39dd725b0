package optimizer

import "yulopt/internal/ast"

// CountReferences counts how often each name is referenced below node. Identifier reads,
// call targets and assignment targets count; declarations do not.
func CountReferences(node ast.Node) map[ast.Symbol]int {
	counts := make(map[ast.Symbol]int)
	if node == nil {
		return counts
	}

	ast.Inspect(node, func(n ast.Node) bool {
		if id, ok := n.(*ast.Identifier); ok {
			counts[id.Name]++
		}
		return true
	})
	return counts
}

package ast

// Inspect traverses the tree rooted at node in depth-first, source order. It calls fn for
// every node; if fn returns false the children of that node are skipped.
// Assignment targets and call targets are visited as *Identifier nodes. Binding sites
// (TypedName) are not nodes and are only reachable through their parent.
func Inspect(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Block:
		for _, stmt := range n.Statements {
			Inspect(stmt, fn)
		}
	case *FunctionDefinition:
		inspectBlock(n.Body, fn)
	case *VariableDeclaration:
		if n.Value != nil {
			Inspect(n.Value, fn)
		}
	case *Assignment:
		for _, id := range n.VariableNames {
			Inspect(id, fn)
		}
		Inspect(n.Value, fn)
	case *ExpressionStatement:
		Inspect(n.Expression, fn)
	case *If:
		Inspect(n.Condition, fn)
		inspectBlock(n.Body, fn)
	case *Switch:
		Inspect(n.Expression, fn)
		for _, c := range n.Cases {
			Inspect(c, fn)
		}
	case *Case:
		if n.Value != nil {
			Inspect(n.Value, fn)
		}
		inspectBlock(n.Body, fn)
	case *ForLoop:
		inspectBlock(n.Pre, fn)
		Inspect(n.Condition, fn)
		inspectBlock(n.Post, fn)
		inspectBlock(n.Body, fn)
	case *FunctionCall:
		Inspect(n.FunctionName, fn)
		for _, arg := range n.Arguments {
			Inspect(arg, fn)
		}
	}
}

func inspectBlock(b *Block, fn func(Node) bool) {
	if b != nil {
		Inspect(b, fn)
	}
}

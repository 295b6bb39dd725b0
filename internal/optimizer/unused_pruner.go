package optimizer

import "yulopt/internal/ast"

// UnusedFunctionArgumentPruner removes parameters that a top-level function never
// references. A function f with unused parameters is split into
//
//	function f(<used parameters>) -> <returns> { <original body> }
//	function f_1(<all parameters>) -> <returns> { <returns> := f(<used parameters>) }
//
// and every existing call of f is redirected to f_1, so call sites keep their arity.
type UnusedFunctionArgumentPruner struct{}

func (*UnusedFunctionArgumentPruner) Name() string {
	return "unused-parameter-pruner"
}

func (*UnusedFunctionArgumentPruner) Description() string {
	return "Split off reduced-arity versions of functions with unused parameters"
}

func (p *UnusedFunctionArgumentPruner) Run(ctx *Context, block *ast.Block) {
	reduced := findUnusedParameters(block)
	if len(reduced) == 0 {
		return
	}

	prunable := make(map[ast.Symbol]bool, len(reduced))
	for name := range reduced {
		prunable[name] = true
	}
	translations := DisplaceNames(block, prunable, ctx.Dispenser)

	original := make(map[ast.Symbol]ast.Symbol, len(translations))
	for from, to := range translations {
		original[to] = from
	}

	var statements []ast.Statement
	for _, stmt := range block.Statements {
		fn, ok := stmt.(*ast.FunctionDefinition)
		if !ok {
			statements = append(statements, stmt)
			continue
		}
		name, ok := original[fn.Name]
		if !ok {
			statements = append(statements, stmt)
			continue
		}
		trimmed := splitFunction(fn, name, reduced[name])
		log.Debugf("pruned %s to %d of %d parameters, wrapper %s",
			name, len(trimmed.Parameters), len(fn.Parameters), fn.Name)
		statements = append(statements, trimmed, fn)
	}
	block.Statements = statements
}

// findUnusedParameters maps each top-level function that leaves at least one parameter
// unreferenced to its list of referenced parameters.
func findUnusedParameters(block *ast.Block) map[ast.Symbol]ast.TypedNameList {
	reduced := make(map[ast.Symbol]ast.TypedNameList)
	for _, stmt := range block.Statements {
		fn, ok := stmt.(*ast.FunctionDefinition)
		if !ok {
			continue
		}

		references := CountReferences(fn.Body)
		used := ast.TypedNameList{}
		for _, param := range fn.Parameters {
			if references[param.Name] > 0 {
				used = append(used, param)
			}
		}
		if len(used) < len(fn.Parameters) {
			reduced[fn.Name] = used
		}
	}
	return reduced
}

// splitFunction moves the body of wrapper into a new definition called name with the
// given parameters and makes wrapper forward to it.
func splitFunction(wrapper *ast.FunctionDefinition, name ast.Symbol, params ast.TypedNameList) *ast.FunctionDefinition {
	pos := wrapper.Pos
	trimmed := &ast.FunctionDefinition{
		Pos:             pos,
		Name:            name,
		Parameters:      params.Clone(),
		ReturnVariables: wrapper.ReturnVariables.Clone(),
		Body:            wrapper.Body,
	}

	args := make([]ast.Expression, 0, len(params))
	for _, param := range params {
		args = append(args, ast.NewIdentifier(pos, param.Name))
	}
	call := ast.NewCall(pos, name, args...)

	var forward ast.Statement
	if len(wrapper.ReturnVariables) == 0 {
		forward = &ast.ExpressionStatement{Pos: pos, Expression: call}
	} else {
		assign := &ast.Assignment{Pos: pos, Value: call}
		for _, ret := range wrapper.ReturnVariables {
			assign.VariableNames = append(assign.VariableNames, ast.NewIdentifier(pos, ret.Name))
		}
		forward = assign
	}
	wrapper.Body = &ast.Block{Pos: pos, Statements: []ast.Statement{forward}}

	return trimmed
}

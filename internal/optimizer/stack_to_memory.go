package optimizer

import (
	"github.com/holiman/uint256"
	"yulopt/internal/ast"
	"yulopt/internal/dialect"
	"yulopt/internal/errors"
)

// wordSize is the stride between two memory slots
const wordSize = 32

// SlotMap assigns memory slots to variables, per function
type SlotMap map[ast.Symbol]map[ast.Symbol]uint64

// StackToMemoryMover rewrites every read of a variable that has a memory slot into a
// memory load and every write into a memory store. Slots are taken from the SlotMap entry
// of the enclosing function; code outside any function is left alone.
//
// A function whose parameters or return variables have slots is not rewritten.
type StackToMemoryMover struct {
	dispenser *NameDispenser
	evm       *dialect.EVMDialect
	reserved  *uint256.Int
	slots     SlotMap
}

// NewStackToMemoryMover creates a mover placing slot i at reserved + 32*i, where a nil
// reserved counts as zero. The context dialect must be the EVM dialect with object access;
// anything else is a fatal error.
func NewStackToMemoryMover(ctx *Context, reserved *uint256.Int, slots SlotMap) *StackToMemoryMover {
	evm, ok := ctx.Dialect.(*dialect.EVMDialect)
	errors.Assert(
		ok && evm.ProvidesObjectAccess(),
		"StackToMemoryMover can only be run on objects using the EVM dialect with object access",
	)

	base := new(uint256.Int)
	if reserved != nil {
		base.Set(reserved)
	}
	return &StackToMemoryMover{
		dispenser: ctx.Dispenser,
		evm:       evm,
		reserved:  base,
		slots:     slots,
	}
}

// Run rewrites block in place
func (m *StackToMemoryMover) Run(block *ast.Block) {
	m.block(block, nil)
}

func (m *StackToMemoryMover) function(fn *ast.FunctionDefinition) {
	current, ok := m.slots[fn.Name]
	if ok {
		for _, name := range append(fn.Parameters.Names(), fn.ReturnVariables.Names()...) {
			if _, escalated := current[name]; escalated {
				log.Debugf("not moving variables of %s: %s is a parameter or return variable", fn.Name, name)
				current = nil
				break
			}
		}
	}
	m.block(fn.Body, current)
}

// block processes the statements of b with current as the active slot assignment. A nil
// current means no variable is moved in this scope.
func (m *StackToMemoryMover) block(b *ast.Block, current map[ast.Symbol]uint64) {
	if b == nil {
		return
	}

	statements := make([]ast.Statement, 0, len(b.Statements))
	for _, stmt := range b.Statements {
		statements = append(statements, m.statement(stmt, current)...)
	}
	b.Statements = statements
}

func (m *StackToMemoryMover) statement(stmt ast.Statement, current map[ast.Symbol]uint64) []ast.Statement {
	switch s := stmt.(type) {
	case *ast.FunctionDefinition:
		m.function(s)
	case *ast.Block:
		m.block(s, current)
	case *ast.VariableDeclaration:
		if s.Value != nil {
			s.Value = m.expression(s.Value, current)
		}
		if !escalatesAny(current, s.Variables.Names()) {
			break
		}
		targets := make([]bindingTarget, len(s.Variables))
		for i, v := range s.Variables {
			targets[i] = bindingTarget{name: v.Name, declared: &s.Variables[i]}
		}
		return m.rewriteBinding(s.Pos, targets, s.Value, current)
	case *ast.Assignment:
		s.Value = m.expression(s.Value, current)
		names := make([]ast.Symbol, len(s.VariableNames))
		for i, id := range s.VariableNames {
			names[i] = id.Name
		}
		if !escalatesAny(current, names) {
			break
		}
		targets := make([]bindingTarget, len(s.VariableNames))
		for i, id := range s.VariableNames {
			targets[i] = bindingTarget{name: id.Name, assigned: id}
		}
		return m.rewriteBinding(s.Pos, targets, s.Value, current)
	case *ast.ExpressionStatement:
		s.Expression = m.expression(s.Expression, current)
	case *ast.If:
		s.Condition = m.expression(s.Condition, current)
		m.block(s.Body, current)
	case *ast.Switch:
		s.Expression = m.expression(s.Expression, current)
		for _, c := range s.Cases {
			m.block(c.Body, current)
		}
	case *ast.ForLoop:
		m.block(s.Pre, current)
		s.Condition = m.expression(s.Condition, current)
		m.block(s.Post, current)
		m.block(s.Body, current)
	}
	return []ast.Statement{stmt}
}

// bindingTarget is one target of a declaration or an assignment
type bindingTarget struct {
	name     ast.Symbol
	declared *ast.TypedName
	assigned *ast.Identifier
}

// rewriteBinding replaces a declaration or assignment with at least one moved target.
// value has already been rewritten and may be nil for declarations without initializer.
func (m *StackToMemoryMover) rewriteBinding(pos ast.Position, targets []bindingTarget, value ast.Expression, current map[ast.Symbol]uint64) []ast.Statement {
	if len(targets) == 1 {
		if value == nil {
			value = ast.NewNumber(pos, "0")
		}
		return []ast.Statement{m.store(pos, current[targets[0].name], value)}
	}

	// Evaluate the value once into temporaries, then distribute them.
	temporaries := &ast.VariableDeclaration{Pos: pos, Value: value}
	var stores, rebinds []ast.Statement
	for _, target := range targets {
		temp := m.dispenser.NewName(target.name)
		temporaries.Variables = append(temporaries.Variables, ast.TypedName{Pos: target.pos(pos), Name: temp})

		tempRef := ast.NewIdentifier(pos, temp)
		if slot, ok := current[target.name]; ok {
			stores = append(stores, m.store(pos, slot, tempRef))
		} else if target.assigned != nil {
			rebinds = append(rebinds, &ast.Assignment{
				Pos:           pos,
				VariableNames: []*ast.Identifier{ast.NewIdentifier(target.assigned.Pos, target.name)},
				Value:         tempRef,
			})
		} else {
			rebinds = append(rebinds, &ast.VariableDeclaration{
				Pos:       pos,
				Variables: ast.TypedNameList{*target.declared},
				Value:     tempRef,
			})
		}
	}

	result := []ast.Statement{temporaries}
	result = append(result, reversed(stores)...)
	return append(result, reversed(rebinds)...)
}

func (t bindingTarget) pos(fallback ast.Position) ast.Position {
	switch {
	case t.declared != nil:
		return t.declared.Pos
	case t.assigned != nil:
		return t.assigned.Pos
	}
	return fallback
}

// expression replaces reads of moved variables inside e with memory loads
func (m *StackToMemoryMover) expression(e ast.Expression, current map[ast.Symbol]uint64) ast.Expression {
	if current == nil {
		return e
	}

	switch x := e.(type) {
	case *ast.Identifier:
		if slot, ok := current[x.Name]; ok {
			return ast.NewCall(x.Pos, m.evm.MemoryLoad(), m.address(x.Pos, slot))
		}
	case *ast.FunctionCall:
		for i, arg := range x.Arguments {
			x.Arguments[i] = m.expression(arg, current)
		}
	}
	return e
}

func (m *StackToMemoryMover) store(pos ast.Position, slot uint64, value ast.Expression) ast.Statement {
	return &ast.ExpressionStatement{
		Pos:        pos,
		Expression: ast.NewCall(pos, m.evm.MemoryStore(), m.address(pos, slot), value),
	}
}

// address renders reserved + 32*slot as a hex literal
func (m *StackToMemoryMover) address(pos ast.Position, slot uint64) *ast.Literal {
	return ast.NewNumber(pos, slotAddress(m.reserved, slot).Hex())
}

func slotAddress(reserved *uint256.Int, slot uint64) *uint256.Int {
	offset := new(uint256.Int).Mul(uint256.NewInt(slot), uint256.NewInt(wordSize))
	return offset.Add(offset, reserved)
}

func escalatesAny(current map[ast.Symbol]uint64, names []ast.Symbol) bool {
	for _, name := range names {
		if _, ok := current[name]; ok {
			return true
		}
	}
	return false
}

func reversed(statements []ast.Statement) []ast.Statement {
	for i, j := 0, len(statements)-1; i < j; i, j = i+1, j-1 {
		statements[i], statements[j] = statements[j], statements[i]
	}
	return statements
}

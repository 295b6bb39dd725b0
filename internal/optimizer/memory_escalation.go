package optimizer

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"yulopt/internal/ast"
	"yulopt/internal/dialect"
	"yulopt/internal/errors"
)

// MemoryEscalation moves the variables of Slots to memory. The slots start at Reserved; when
// Reserved is nil the argument of the program's only memoryinit call is used instead. That
// argument is afterwards raised past the last slot so that the moved variables stay out of
// the way of regular memory use.
type MemoryEscalation struct {
	Reserved *uint256.Int
	Slots    SlotMap
}

func (*MemoryEscalation) Name() string {
	return "memory-escalation"
}

func (*MemoryEscalation) Description() string {
	return "Move variables with assigned slots to memory above memoryinit"
}

func (e *MemoryEscalation) Run(ctx *Context, block *ast.Block) {
	if len(e.Slots) == 0 {
		return
	}

	evm, ok := ctx.Dialect.(*dialect.EVMDialect)
	errors.Assert(
		ok && evm.ProvidesObjectAccess(),
		"memory escalation can only be run on objects using the EVM dialect with object access",
	)

	var initLiteral *ast.Literal
	if calls := FindFunctionCalls(block, evm.MemoryInit()); len(calls) == 1 && len(calls[0].Arguments) > 0 {
		initLiteral, _ = calls[0].Arguments[len(calls[0].Arguments)-1].(*ast.Literal)
	}

	reserved := e.Reserved
	if reserved == nil {
		if initLiteral == nil {
			log.Warningf("no unique %s call with a literal argument, skipping memory escalation", evm.MemoryInit())
			return
		}
		value, err := LiteralValue(initLiteral)
		if err != nil {
			log.Warningf("cannot use %s argument: %s", evm.MemoryInit(), err.Error())
			return
		}
		reserved = value
	}

	NewStackToMemoryMover(ctx, reserved, e.Slots).Run(block)

	if initLiteral != nil {
		initLiteral.Value = slotAddress(reserved, RequiredSlots(e.Slots)).Hex()
		initLiteral.Kind = ast.NumberLiteral
		log.Debugf("%s raised to %s", evm.MemoryInit(), initLiteral.Value)
	}
}

// StackToMemory runs the StackToMemoryMover with a fixed reserved base and no memoryinit
// handling.
type StackToMemory struct {
	Reserved *uint256.Int
	Slots    SlotMap
}

func (*StackToMemory) Name() string {
	return "stack-to-memory"
}

func (*StackToMemory) Description() string {
	return "Replace variables with assigned slots by memory loads and stores"
}

func (s *StackToMemory) Run(ctx *Context, block *ast.Block) {
	NewStackToMemoryMover(ctx, s.Reserved, s.Slots).Run(block)
}

// RequiredSlots returns the number of memory slots used by slots
func RequiredSlots(slots SlotMap) uint64 {
	var required uint64
	for _, variables := range slots {
		for _, slot := range variables {
			if slot+1 > required {
				required = slot + 1
			}
		}
	}
	return required
}

// FindFunctionCalls returns every call of name below node in source order
func FindFunctionCalls(node ast.Node, name ast.Symbol) []*ast.FunctionCall {
	var calls []*ast.FunctionCall
	ast.Inspect(node, func(n ast.Node) bool {
		if call, ok := n.(*ast.FunctionCall); ok && call.FunctionName.Name == name {
			calls = append(calls, call)
		}
		return true
	})
	return calls
}

// LiteralValue returns the 256-bit value of a literal. Strings are left-aligned in the word.
func LiteralValue(lit *ast.Literal) (*uint256.Int, error) {
	switch lit.Kind {
	case ast.BooleanLiteral:
		if lit.Value == "true" {
			return uint256.NewInt(1), nil
		}
		return uint256.NewInt(0), nil
	case ast.StringLiteral:
		if len(lit.Value) > 32 {
			return nil, fmt.Errorf("string literal %q is longer than 32 bytes", lit.Value)
		}
		word := make([]byte, 32)
		copy(word, lit.Value)
		return new(uint256.Int).SetBytes(word), nil
	}

	if digits, ok := strings.CutPrefix(lit.Value, "0x"); ok {
		digits = strings.TrimLeft(digits, "0")
		if digits == "" {
			digits = "0"
		}
		return uint256.FromHex("0x" + digits)
	}
	return uint256.FromDecimal(lit.Value)
}

package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockString(t *testing.T) {
	block := &Block{
		Statements: []Statement{
			&FunctionDefinition{
				Name:            "f",
				Parameters:      TypedNameList{{Name: "x"}, {Name: "y", Type: "u256"}},
				ReturnVariables: TypedNameList{{Name: "z"}},
				Body: &Block{Statements: []Statement{
					&Assignment{
						VariableNames: []*Identifier{{Name: "z"}},
						Value:         &Identifier{Name: "x"},
					},
				}},
			},
			&VariableDeclaration{
				Variables: TypedNameList{{Name: "a"}},
				Value:     NewCall(Position{}, "f", NewNumber(Position{}, "1"), NewNumber(Position{}, "0x20")),
			},
		},
	}

	expected := "{\n" +
		"    function f(x, y:u256) -> z {\n" +
		"        z := x\n" +
		"    }\n" +
		"    let a := f(1, 0x20)\n" +
		"}"
	assert.Equal(t, expected, block.String())
}

func TestEmptyBlockString(t *testing.T) {
	assert.Equal(t, "{ }", (&Block{}).String())

	fn := &FunctionDefinition{Name: "g", Body: &Block{}}
	assert.Equal(t, "function g() { }", fn.String())
}

func TestVariableDeclarationWithoutValue(t *testing.T) {
	decl := &VariableDeclaration{Variables: TypedNameList{{Name: "a"}, {Name: "b"}}}
	assert.Equal(t, "let a, b", decl.String())
}

func TestLiteralString(t *testing.T) {
	t.Run("Number", func(t *testing.T) {
		assert.Equal(t, "42", NewNumber(Position{}, "42").String())
	})

	t.Run("TypedNumber", func(t *testing.T) {
		lit := &Literal{Kind: NumberLiteral, Value: "1", Type: "u32"}
		assert.Equal(t, "1:u32", lit.String())
	})

	t.Run("String", func(t *testing.T) {
		lit := &Literal{Kind: StringLiteral, Value: "a\"b"}
		assert.Equal(t, `"a\"b"`, lit.String())
	})

	t.Run("Bool", func(t *testing.T) {
		lit := &Literal{Kind: BooleanLiteral, Value: "true"}
		assert.Equal(t, "true", lit.String())
	})
}

func TestControlFlowString(t *testing.T) {
	sw := &Switch{
		Expression: &Identifier{Name: "x"},
		Cases: []*Case{
			{Value: NewNumber(Position{}, "0"), Body: &Block{Statements: []Statement{&Leave{}}}},
			{Body: &Block{}},
		},
	}
	expected := "switch x\n" +
		"case 0 {\n" +
		"    leave\n" +
		"}\n" +
		"default { }"
	assert.Equal(t, expected, sw.String())

	loop := &ForLoop{
		Pre:       &Block{},
		Condition: NewCall(Position{}, "lt", &Identifier{Name: "i"}, NewNumber(Position{}, "10")),
		Post:      &Block{},
		Body:      &Block{Statements: []Statement{&Break{}}},
	}
	assert.Equal(t, "for { } lt(i, 10) { } {\n    break\n}", loop.String())
}

func TestInspectVisitsInSourceOrder(t *testing.T) {
	block := &Block{
		Statements: []Statement{
			&Assignment{
				VariableNames: []*Identifier{{Name: "a"}},
				Value:         NewCall(Position{}, "add", &Identifier{Name: "b"}, NewNumber(Position{}, "1")),
			},
			&If{
				Condition: &Identifier{Name: "c"},
				Body:      &Block{},
			},
		},
	}

	var names []Symbol
	Inspect(block, func(n Node) bool {
		if id, ok := n.(*Identifier); ok {
			names = append(names, id.Name)
		}
		return true
	})

	assert.Equal(t, []Symbol{"a", "add", "b", "c"}, names)
}

func TestInspectCanSkipChildren(t *testing.T) {
	block := &Block{
		Statements: []Statement{
			&FunctionDefinition{
				Name: "f",
				Body: &Block{Statements: []Statement{
					&ExpressionStatement{Expression: NewCall(Position{}, "g")},
				}},
			},
		},
	}

	visited := 0
	Inspect(block, func(n Node) bool {
		visited++
		_, isFunction := n.(*FunctionDefinition)
		return !isFunction
	})

	assert.Equal(t, 2, visited)
}

func TestTypedNameListClone(t *testing.T) {
	original := TypedNameList{{Name: "a"}, {Name: "b"}}
	clone := original.Clone()
	clone[0].Name = "c"

	assert.Equal(t, Symbol("a"), original[0].Name)
	assert.Equal(t, []Symbol{"a", "b"}, original.Names())
	assert.Nil(t, TypedNameList(nil).Clone())
}

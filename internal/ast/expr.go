package ast

type Expression interface {
	Node
	isExpression()
}

func (*Identifier) isExpression() {}

func (*Literal) isExpression() {}

func (*FunctionCall) isExpression() {}

// Identifier is a reference to a variable or, as a call target, to a function.
type Identifier struct {
	Pos  Position
	Name Symbol
}

// Literal is a number, string or boolean constant. Value holds the raw text
// (strings without their quotes).
type Literal struct {
	Pos   Position
	Kind  LiteralKind
	Value string
	Type  Symbol
}

// FunctionCall calls a user-defined function or a dialect builtin.
// Example: mstore(0x20, x)
type FunctionCall struct {
	Pos          Position
	FunctionName *Identifier
	Arguments    []Expression
}

// NewIdentifier creates an identifier expression at pos
func NewIdentifier(pos Position, name Symbol) *Identifier {
	return &Identifier{Pos: pos, Name: name}
}

// NewNumber creates a number literal at pos
func NewNumber(pos Position, value string) *Literal {
	return &Literal{Pos: pos, Kind: NumberLiteral, Value: value}
}

// NewCall creates a call of name with the given arguments
func NewCall(pos Position, name Symbol, args ...Expression) *FunctionCall {
	return &FunctionCall{
		Pos:          pos,
		FunctionName: NewIdentifier(pos, name),
		Arguments:    args,
	}
}

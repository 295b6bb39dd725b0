package ast

// Statement is any member of a Block. The set is closed; passes that do not care about a
// particular kind must pass it through unchanged.
type Statement interface {
	Node
	isStatement()
}

func (*Block) isStatement()               {}
func (*FunctionDefinition) isStatement()  {}
func (*VariableDeclaration) isStatement() {}
func (*Assignment) isStatement()          {}
func (*ExpressionStatement) isStatement() {}
func (*If) isStatement()                  {}
func (*Switch) isStatement()              {}
func (*ForLoop) isStatement()             {}
func (*Break) isStatement()               {}
func (*Continue) isStatement()            {}
func (*Leave) isStatement()               {}

// Block is an ordered sequence of statements. Order is execution order.
type Block struct {
	Pos        Position
	Statements []Statement
}

// TypedName is a name bound by a declaration, optionally annotated with a type.
// Example: "x", "x:u256"
type TypedName struct {
	Pos  Position
	Name Symbol
	Type Symbol
}

type TypedNameList []TypedName

// Names returns the bound symbols in declaration order
func (l TypedNameList) Names() []Symbol {
	names := make([]Symbol, len(l))
	for i, tn := range l {
		names[i] = tn.Name
	}
	return names
}

// Clone returns a copy that shares no backing array with l
func (l TypedNameList) Clone() TypedNameList {
	if l == nil {
		return nil
	}
	out := make(TypedNameList, len(l))
	copy(out, l)
	return out
}

// FunctionDefinition introduces a new lexical scope.
// Example: function f(a, b) -> r { r := add(a, b) }
type FunctionDefinition struct {
	Pos             Position
	Name            Symbol
	Parameters      TypedNameList
	ReturnVariables TypedNameList
	Body            *Block
}

// VariableDeclaration introduces new symbols. Value is nil when there is no initializer.
// Example: let a, b := f()
type VariableDeclaration struct {
	Pos       Position
	Variables TypedNameList
	Value     Expression
}

// Assignment writes to already declared variables.
// Example: a, b := f()
type Assignment struct {
	Pos           Position
	VariableNames []*Identifier
	Value         Expression
}

type ExpressionStatement struct {
	Pos        Position
	Expression Expression
}

type If struct {
	Pos       Position
	Condition Expression
	Body      *Block
}

// Switch selects one of its cases. A case with a nil Value is the default case.
type Switch struct {
	Pos        Position
	Expression Expression
	Cases      []*Case
}

type Case struct {
	Pos   Position
	Value *Literal
	Body  *Block
}

// ForLoop is for { pre } condition { post } { body }
type ForLoop struct {
	Pos       Position
	Pre       *Block
	Condition Expression
	Post      *Block
	Body      *Block
}

type Break struct{ Pos Position }

type Continue struct{ Pos Position }

type Leave struct{ Pos Position }

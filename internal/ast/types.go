package ast

// Symbol is an interned identifier name. Two symbols are the same name iff their text is equal.
type Symbol string

func (s Symbol) String() string { return string(s) }

// Position is a location in the source text
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

type NodeType int

const (
	// Special / error
	ILLEGAL NodeType = iota

	// Structure
	BLOCK

	// Statements
	FUNCTION_DEFINITION
	VARIABLE_DECLARATION
	ASSIGNMENT
	EXPRESSION_STATEMENT
	IF_STMT
	SWITCH_STMT
	CASE
	FOR_LOOP
	BREAK_STMT
	CONTINUE_STMT
	LEAVE_STMT

	// Expressions
	IDENTIFIER
	LITERAL
	FUNCTION_CALL
)

// LiteralKind distinguishes the textual forms a literal can take
type LiteralKind int

const (
	NumberLiteral LiteralKind = iota
	StringLiteral
	BooleanLiteral
)

func (k LiteralKind) String() string {
	switch k {
	case NumberLiteral:
		return "number"
	case StringLiteral:
		return "string"
	case BooleanLiteral:
		return "bool"
	default:
		return "unknown"
	}
}

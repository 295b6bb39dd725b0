package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Program is the outermost block of a source file
type Program struct {
	Pos  lexer.Position
	Code *Block `parser:"@@"`
}

type Block struct {
	Pos        lexer.Position
	EndPos     lexer.Position
	Statements []*Statement `parser:"\"{\" @@* \"}\""`
}

type Statement struct {
	Pos        lexer.Position
	Function   *FunctionDefinition  `parser:"  @@"`
	Let        *VariableDeclaration `parser:"| @@"`
	If         *If                  `parser:"| @@"`
	Switch     *Switch              `parser:"| @@"`
	For        *ForLoop             `parser:"| @@"`
	Break      bool                 `parser:"| @\"break\""`
	Continue   bool                 `parser:"| @\"continue\""`
	Leave      bool                 `parser:"| @\"leave\""`
	Block      *Block               `parser:"| @@"`
	Assignment *Assignment          `parser:"| @@"`
	Expression *Expression          `parser:"| @@"`
}

type FunctionDefinition struct {
	Pos     lexer.Position
	Name    string       `parser:"\"function\" @Ident"`
	Params  []*TypedName `parser:"\"(\" [ @@ { \",\" @@ } ] \")\""`
	Returns []*TypedName `parser:"[ \"->\" @@ { \",\" @@ } ]"`
	Body    *Block       `parser:"@@"`
}

type TypedName struct {
	Pos  lexer.Position
	Name string `parser:"@Ident"`
	Type string `parser:"[ \":\" @Ident ]"`
}

type VariableDeclaration struct {
	Pos   lexer.Position
	Names []*TypedName `parser:"\"let\" @@ { \",\" @@ }"`
	Value *Expression  `parser:"[ \":=\" @@ ]"`
}

type Assignment struct {
	Pos     lexer.Position
	Targets []*IdentRef `parser:"@@ { \",\" @@ } \":=\""`
	Value   *Expression `parser:"@@"`
}

type IdentRef struct {
	Pos  lexer.Position
	Name string `parser:"@Ident"`
}

type If struct {
	Pos       lexer.Position
	Condition *Expression `parser:"\"if\" @@"`
	Body      *Block      `parser:"@@"`
}

type Switch struct {
	Pos        lexer.Position
	Expression *Expression `parser:"\"switch\" @@"`
	Cases      []*Case     `parser:"@@*"`
	Default    *Default    `parser:"[ @@ ]"`
}

type Case struct {
	Pos   lexer.Position
	Value *Literal `parser:"\"case\" @@"`
	Body  *Block   `parser:"@@"`
}

type Default struct {
	Pos  lexer.Position
	Body *Block `parser:"\"default\" @@"`
}

type ForLoop struct {
	Pos       lexer.Position
	Pre       *Block      `parser:"\"for\" @@"`
	Condition *Expression `parser:"@@"`
	Post      *Block      `parser:"@@"`
	Body      *Block      `parser:"@@"`
}

type Expression struct {
	Pos        lexer.Position
	Call       *FunctionCall `parser:"  @@"`
	Literal    *Literal      `parser:"| @@"`
	Identifier *IdentRef     `parser:"| @@"`
}

type FunctionCall struct {
	Pos       lexer.Position
	Name      string        `parser:"@Ident \"(\""`
	Arguments []*Expression `parser:"[ @@ { \",\" @@ } ] \")\""`
}

type Literal struct {
	Pos   lexer.Position
	Value *LiteralValue `parser:"@@"`
	Type  string        `parser:"[ \":\" @Ident ]"`
}

type LiteralValue struct {
	Number *string `parser:"  @Number"`
	String *string `parser:"| @String"`
	Bool   *string `parser:"| @( \"true\" | \"false\" )"`
}

package lsp

import (
	"sort"

	"yulopt/internal/ast"
	"yulopt/internal/dialect"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into the semanticTokenTypes array
// TokenModifiers is a bitmask based on semanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into semanticTokenTypes
	TokenModifiers int // bitmask
}

const (
	modDeclaration = 1 << iota
	modDefaultLibrary
)

type tokenCollector struct {
	content string
	dialect dialect.Dialect
	params  map[ast.Symbol]bool
	tokens  []SemanticToken
}

// collectSemanticTokens returns the tokens of block ordered by position. content is the
// text block was parsed from; it is needed to locate function names.
func collectSemanticTokens(block *ast.Block, content string, d dialect.Dialect) []SemanticToken {
	if block == nil {
		return nil
	}

	c := &tokenCollector{content: content, dialect: d, params: map[ast.Symbol]bool{}}
	c.block(block)

	sort.SliceStable(c.tokens, func(i, j int) bool {
		if c.tokens[i].Line != c.tokens[j].Line {
			return c.tokens[i].Line < c.tokens[j].Line
		}
		return c.tokens[i].StartChar < c.tokens[j].StartChar
	})
	return c.tokens
}

func (c *tokenCollector) block(b *ast.Block) {
	if b == nil {
		return
	}
	for _, stmt := range b.Statements {
		c.statement(stmt)
	}
}

func (c *tokenCollector) statement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Block:
		c.block(s)
	case *ast.FunctionDefinition:
		c.function(s)
	case *ast.VariableDeclaration:
		c.keyword(s.Pos, "let")
		for _, v := range s.Variables {
			c.add(v.Pos, len(v.Name), "variable", modDeclaration)
		}
		if s.Value != nil {
			c.expression(s.Value)
		}
	case *ast.Assignment:
		for _, id := range s.VariableNames {
			c.expression(id)
		}
		c.expression(s.Value)
	case *ast.ExpressionStatement:
		c.expression(s.Expression)
	case *ast.If:
		c.keyword(s.Pos, "if")
		c.expression(s.Condition)
		c.block(s.Body)
	case *ast.Switch:
		c.keyword(s.Pos, "switch")
		c.expression(s.Expression)
		for _, cs := range s.Cases {
			if cs.Value == nil {
				c.keyword(cs.Pos, "default")
			} else {
				c.keyword(cs.Pos, "case")
				c.expression(cs.Value)
			}
			c.block(cs.Body)
		}
	case *ast.ForLoop:
		c.keyword(s.Pos, "for")
		c.block(s.Pre)
		c.expression(s.Condition)
		c.block(s.Post)
		c.block(s.Body)
	case *ast.Break:
		c.keyword(s.Pos, "break")
	case *ast.Continue:
		c.keyword(s.Pos, "continue")
	case *ast.Leave:
		c.keyword(s.Pos, "leave")
	}
}

func (c *tokenCollector) function(fn *ast.FunctionDefinition) {
	c.keyword(fn.Pos, "function")
	if namePos, ok := locateAfter(c.content, fn.Pos, len("function")); ok {
		c.add(namePos, len(fn.Name), "function", modDeclaration)
	}

	// Functions cannot see the variables of the enclosing scope.
	outer := c.params
	c.params = map[ast.Symbol]bool{}
	for _, p := range fn.Parameters {
		c.params[p.Name] = true
		c.add(p.Pos, len(p.Name), "parameter", modDeclaration)
	}
	for _, r := range fn.ReturnVariables {
		c.add(r.Pos, len(r.Name), "variable", modDeclaration)
	}
	c.block(fn.Body)
	c.params = outer
}

func (c *tokenCollector) expression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Identifier:
		if c.params[e.Name] {
			c.add(e.Pos, len(e.Name), "parameter", 0)
		} else {
			c.add(e.Pos, len(e.Name), "variable", 0)
		}
	case *ast.Literal:
		switch e.Kind {
		case ast.NumberLiteral:
			c.add(e.Pos, len(e.Value), "number", 0)
		case ast.StringLiteral:
			c.add(e.Pos, len(e.Value)+2, "string", 0)
		case ast.BooleanLiteral:
			c.add(e.Pos, len(e.Value), "keyword", 0)
		}
	case *ast.FunctionCall:
		name := e.FunctionName
		if c.dialect != nil && c.dialect.Builtin(name.Name) != nil {
			c.add(name.Pos, len(name.Name), "function", modDefaultLibrary)
		} else {
			c.add(name.Pos, len(name.Name), "function", 0)
		}
		for _, arg := range e.Arguments {
			c.expression(arg)
		}
	}
}

func (c *tokenCollector) keyword(pos ast.Position, word string) {
	c.add(pos, len(word), "keyword", 0)
}

func (c *tokenCollector) add(pos ast.Position, length int, tokenType string, modifiers int) {
	if length == 0 || pos.Line == 0 {
		return
	}
	c.tokens = append(c.tokens, SemanticToken{
		Line:           uint32(pos.Line - 1),   // LSP uses 0-based line numbers
		StartChar:      uint32(pos.Column - 1), // LSP uses 0-based column numbers
		Length:         uint32(length),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: modifiers,
	})
}

// locateAfter returns the position of the first non-blank character that follows the
// skip bytes at pos
func locateAfter(content string, pos ast.Position, skip int) (ast.Position, bool) {
	offset := pos.Offset + skip
	if offset > len(content) {
		return ast.Position{}, false
	}
	line, column := pos.Line, pos.Column+skip
	for ; offset < len(content); offset++ {
		switch content[offset] {
		case ' ', '\t', '\r':
			column++
		case '\n':
			line++
			column = 1
		default:
			return ast.Position{Filename: pos.Filename, Offset: offset, Line: line, Column: column}, true
		}
	}
	return ast.Position{}, false
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}

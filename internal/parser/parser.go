package parser

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"yulopt/grammar"
	"yulopt/internal/ast"
)

// ParseError is a syntax error with the position it was detected at
type ParseError struct {
	Message  string
	Position ast.Position
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Position.Filename, e.Position.Line, e.Position.Column, e.Message)
}

// ParseFile reads path and parses its contents. The returned error is only set when the
// file cannot be read; syntax problems are reported as ParseErrors.
func ParseFile(path string) (*ast.Block, []ParseError, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}

	block, parseErrors := ParseSource(path, string(source))
	return block, parseErrors, nil
}

// ParseSource parses a textual block into an AST. The block is nil whenever errors are reported.
func ParseSource(sourceName string, source string) (*ast.Block, []ParseError) {
	program, err := grammar.ParseString(sourceName, source)
	if err != nil {
		return nil, convertError(sourceName, err)
	}

	c := &converter{}
	block := c.block(program.Code)
	if len(c.errors) > 0 {
		return nil, c.errors
	}
	return block, nil
}

// IsIncomplete reports whether parsing failed only because the input ended early, i.e.
// more lines could still make it valid.
func IsIncomplete(source string, parseErrors []ParseError) bool {
	if len(parseErrors) == 0 {
		return false
	}
	end := len(strings.TrimRight(source, " \t\r\n"))
	for _, e := range parseErrors {
		if strings.Contains(e.Message, "<EOF>") || e.Position.Offset >= end {
			return true
		}
	}
	return false
}

func convertError(sourceName string, err error) []ParseError {
	var pe participle.Error
	if errors.As(err, &pe) {
		return []ParseError{{
			Message:  pe.Message(),
			Position: makePos(pe.Position()),
		}}
	}
	return []ParseError{{
		Message:  err.Error(),
		Position: ast.Position{Filename: sourceName, Line: 1, Column: 1},
	}}
}

func makePos(pos lexer.Position) ast.Position {
	return ast.Position{
		Filename: pos.Filename,
		Offset:   pos.Offset,
		Line:     pos.Line,
		Column:   pos.Column,
	}
}

// converter turns the grammar's parse tree into the AST, rejecting keywords used as names
type converter struct {
	errors []ParseError
}

func (c *converter) name(pos lexer.Position, name string) ast.Symbol {
	sym := ast.Symbol(name)
	if ast.IsKeyword(sym) {
		c.errors = append(c.errors, ParseError{
			Message:  fmt.Sprintf("reserved keyword %q cannot be used as an identifier", name),
			Position: makePos(pos),
		})
	}
	return sym
}

func (c *converter) block(b *grammar.Block) *ast.Block {
	block := &ast.Block{Pos: makePos(b.Pos)}
	for _, stmt := range b.Statements {
		block.Statements = append(block.Statements, c.statement(stmt))
	}
	return block
}

func (c *converter) statement(s *grammar.Statement) ast.Statement {
	pos := makePos(s.Pos)

	switch {
	case s.Function != nil:
		return &ast.FunctionDefinition{
			Pos:             pos,
			Name:            c.name(s.Function.Pos, s.Function.Name),
			Parameters:      c.typedNames(s.Function.Params),
			ReturnVariables: c.typedNames(s.Function.Returns),
			Body:            c.block(s.Function.Body),
		}
	case s.Let != nil:
		decl := &ast.VariableDeclaration{
			Pos:       pos,
			Variables: c.typedNames(s.Let.Names),
		}
		if s.Let.Value != nil {
			decl.Value = c.expression(s.Let.Value)
		}
		return decl
	case s.If != nil:
		return &ast.If{
			Pos:       pos,
			Condition: c.expression(s.If.Condition),
			Body:      c.block(s.If.Body),
		}
	case s.Switch != nil:
		sw := &ast.Switch{Pos: pos, Expression: c.expression(s.Switch.Expression)}
		for _, cs := range s.Switch.Cases {
			sw.Cases = append(sw.Cases, &ast.Case{
				Pos:   makePos(cs.Pos),
				Value: c.literal(cs.Value),
				Body:  c.block(cs.Body),
			})
		}
		if s.Switch.Default != nil {
			sw.Cases = append(sw.Cases, &ast.Case{
				Pos:  makePos(s.Switch.Default.Pos),
				Body: c.block(s.Switch.Default.Body),
			})
		}
		return sw
	case s.For != nil:
		return &ast.ForLoop{
			Pos:       pos,
			Pre:       c.block(s.For.Pre),
			Condition: c.expression(s.For.Condition),
			Post:      c.block(s.For.Post),
			Body:      c.block(s.For.Body),
		}
	case s.Break:
		return &ast.Break{Pos: pos}
	case s.Continue:
		return &ast.Continue{Pos: pos}
	case s.Leave:
		return &ast.Leave{Pos: pos}
	case s.Block != nil:
		return c.block(s.Block)
	case s.Assignment != nil:
		assign := &ast.Assignment{Pos: pos, Value: c.expression(s.Assignment.Value)}
		for _, target := range s.Assignment.Targets {
			assign.VariableNames = append(assign.VariableNames, c.identifier(target))
		}
		return assign
	default:
		return &ast.ExpressionStatement{Pos: pos, Expression: c.expression(s.Expression)}
	}
}

func (c *converter) typedNames(names []*grammar.TypedName) ast.TypedNameList {
	var list ast.TypedNameList
	for _, tn := range names {
		list = append(list, ast.TypedName{
			Pos:  makePos(tn.Pos),
			Name: c.name(tn.Pos, tn.Name),
			Type: ast.Symbol(tn.Type),
		})
	}
	return list
}

func (c *converter) identifier(id *grammar.IdentRef) *ast.Identifier {
	return &ast.Identifier{Pos: makePos(id.Pos), Name: c.name(id.Pos, id.Name)}
}

func (c *converter) expression(e *grammar.Expression) ast.Expression {
	switch {
	case e.Call != nil:
		call := &ast.FunctionCall{
			Pos:          makePos(e.Call.Pos),
			FunctionName: &ast.Identifier{Pos: makePos(e.Call.Pos), Name: c.name(e.Call.Pos, e.Call.Name)},
		}
		for _, arg := range e.Call.Arguments {
			call.Arguments = append(call.Arguments, c.expression(arg))
		}
		return call
	case e.Literal != nil:
		return c.literal(e.Literal)
	default:
		return c.identifier(e.Identifier)
	}
}

func (c *converter) literal(l *grammar.Literal) *ast.Literal {
	lit := &ast.Literal{Pos: makePos(l.Pos), Type: ast.Symbol(l.Type)}
	switch {
	case l.Value.Number != nil:
		lit.Kind = ast.NumberLiteral
		lit.Value = *l.Value.Number
	case l.Value.String != nil:
		lit.Kind = ast.StringLiteral
		lit.Value = *l.Value.String
	default:
		lit.Kind = ast.BooleanLiteral
		lit.Value = *l.Value.Bool
	}
	return lit
}

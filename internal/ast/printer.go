package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Printer renders nodes in the canonical textual form accepted by the parser
type Printer struct {
	indent int
	output strings.Builder
}

// NewPrinter creates a new printer
func NewPrinter() *Printer {
	return &Printer{indent: 0}
}

// Print returns the canonical text of any node
func Print(node Node) string {
	p := NewPrinter()
	p.printNode(node)
	return p.output.String()
}

func (b *Block) String() string               { return Print(b) }
func (f *FunctionDefinition) String() string  { return Print(f) }
func (v *VariableDeclaration) String() string { return Print(v) }
func (a *Assignment) String() string          { return Print(a) }
func (e *ExpressionStatement) String() string { return Print(e) }
func (i *If) String() string                  { return Print(i) }
func (s *Switch) String() string              { return Print(s) }
func (c *Case) String() string                { return Print(c) }
func (f *ForLoop) String() string             { return Print(f) }
func (*Break) String() string                 { return "break" }
func (*Continue) String() string              { return "continue" }
func (*Leave) String() string                 { return "leave" }
func (i *Identifier) String() string          { return string(i.Name) }
func (l *Literal) String() string             { return Print(l) }
func (c *FunctionCall) String() string        { return Print(c) }

func (tn TypedName) String() string {
	if tn.Type == "" {
		return string(tn.Name)
	}
	return fmt.Sprintf("%s:%s", tn.Name, tn.Type)
}

func (l TypedNameList) String() string {
	parts := make([]string, len(l))
	for i, tn := range l {
		parts[i] = tn.String()
	}
	return strings.Join(parts, ", ")
}

// Helper methods

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.output.WriteString("    ")
	}
}

func (p *Printer) write(format string, args ...interface{}) {
	p.output.WriteString(fmt.Sprintf(format, args...))
}

func (p *Printer) printNode(node Node) {
	switch n := node.(type) {
	case Statement:
		p.printStatement(n)
	case Expression:
		p.printExpression(n)
	case *Case:
		p.printCase(n)
	default:
		p.write("<%T>", node)
	}
}

func (p *Printer) printBlock(b *Block) {
	if b == nil || len(b.Statements) == 0 {
		p.write("{ }")
		return
	}

	p.write("{\n")
	p.indent++
	for _, stmt := range b.Statements {
		p.writeIndent()
		p.printStatement(stmt)
		p.write("\n")
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *Printer) printStatement(stmt Statement) {
	switch s := stmt.(type) {
	case *Block:
		p.printBlock(s)
	case *FunctionDefinition:
		p.write("function %s(%s)", s.Name, s.Parameters)
		if len(s.ReturnVariables) > 0 {
			p.write(" -> %s", s.ReturnVariables)
		}
		p.write(" ")
		p.printBlock(s.Body)
	case *VariableDeclaration:
		p.write("let %s", s.Variables)
		if s.Value != nil {
			p.write(" := ")
			p.printExpression(s.Value)
		}
	case *Assignment:
		names := make([]string, len(s.VariableNames))
		for i, id := range s.VariableNames {
			names[i] = string(id.Name)
		}
		p.write("%s := ", strings.Join(names, ", "))
		p.printExpression(s.Value)
	case *ExpressionStatement:
		p.printExpression(s.Expression)
	case *If:
		p.write("if ")
		p.printExpression(s.Condition)
		p.write(" ")
		p.printBlock(s.Body)
	case *Switch:
		p.write("switch ")
		p.printExpression(s.Expression)
		for _, c := range s.Cases {
			p.write("\n")
			p.writeIndent()
			p.printCase(c)
		}
	case *ForLoop:
		p.write("for ")
		p.printBlock(s.Pre)
		p.write(" ")
		p.printExpression(s.Condition)
		p.write(" ")
		p.printBlock(s.Post)
		p.write(" ")
		p.printBlock(s.Body)
	case *Break, *Continue, *Leave:
		p.write("%s", s.String())
	default:
		p.write("<%T>", stmt)
	}
}

func (p *Printer) printCase(c *Case) {
	if c.Value == nil {
		p.write("default ")
	} else {
		p.write("case ")
		p.printExpression(c.Value)
		p.write(" ")
	}
	p.printBlock(c.Body)
}

func (p *Printer) printExpression(expr Expression) {
	switch e := expr.(type) {
	case *Identifier:
		p.write("%s", e.Name)
	case *Literal:
		switch e.Kind {
		case StringLiteral:
			p.write("%s", strconv.Quote(e.Value))
		default:
			p.write("%s", e.Value)
		}
		if e.Type != "" {
			p.write(":%s", e.Type)
		}
	case *FunctionCall:
		p.write("%s(", e.FunctionName.Name)
		for i, arg := range e.Arguments {
			if i > 0 {
				p.write(", ")
			}
			p.printExpression(arg)
		}
		p.write(")")
	case nil:
		p.write("<nil>")
	default:
		p.write("<%T>", expr)
	}
}

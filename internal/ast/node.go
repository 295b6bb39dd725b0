package ast

type Node interface {
	NodePos() Position
	NodeType() NodeType
	String() string
}

func (b *Block) NodePos() Position { return b.Pos }
func (*Block) NodeType() NodeType  { return BLOCK }

func (f *FunctionDefinition) NodePos() Position { return f.Pos }
func (*FunctionDefinition) NodeType() NodeType  { return FUNCTION_DEFINITION }

func (v *VariableDeclaration) NodePos() Position { return v.Pos }
func (*VariableDeclaration) NodeType() NodeType  { return VARIABLE_DECLARATION }

func (a *Assignment) NodePos() Position { return a.Pos }
func (*Assignment) NodeType() NodeType  { return ASSIGNMENT }

func (e *ExpressionStatement) NodePos() Position { return e.Pos }
func (*ExpressionStatement) NodeType() NodeType  { return EXPRESSION_STATEMENT }

func (i *If) NodePos() Position { return i.Pos }
func (*If) NodeType() NodeType  { return IF_STMT }

func (s *Switch) NodePos() Position { return s.Pos }
func (*Switch) NodeType() NodeType  { return SWITCH_STMT }

func (c *Case) NodePos() Position { return c.Pos }
func (*Case) NodeType() NodeType  { return CASE }

func (f *ForLoop) NodePos() Position { return f.Pos }
func (*ForLoop) NodeType() NodeType  { return FOR_LOOP }

func (b *Break) NodePos() Position { return b.Pos }
func (*Break) NodeType() NodeType  { return BREAK_STMT }

func (c *Continue) NodePos() Position { return c.Pos }
func (*Continue) NodeType() NodeType  { return CONTINUE_STMT }

func (l *Leave) NodePos() Position { return l.Pos }
func (*Leave) NodeType() NodeType  { return LEAVE_STMT }

func (i *Identifier) NodePos() Position { return i.Pos }
func (*Identifier) NodeType() NodeType  { return IDENTIFIER }

func (l *Literal) NodePos() Position { return l.Pos }
func (*Literal) NodeType() NodeType  { return LITERAL }

func (c *FunctionCall) NodePos() Position { return c.Pos }
func (*FunctionCall) NodeType() NodeType  { return FUNCTION_CALL }

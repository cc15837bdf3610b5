package ast

import "github.com/lhaig/calcc/internal/diagnostic"

// Node is the base interface for all AST nodes
type Node interface {
	Pos() (line, col int)
}

// Statement nodes
type Statement interface {
	Node
	stmtNode()
}

// Expression nodes
type Expression interface {
	Node
	exprNode()
}

// Span records where a node starts in the source text.
type Span struct {
	Offset int
	Line   int
	Column int
}

func (s Span) Pos() (int, int) { return s.Line, s.Column }

// Location converts the span for error reporting.
func (s Span) Location() diagnostic.Location {
	return diagnostic.Location{Offset: s.Offset, Line: s.Line, Column: s.Column}
}

// Operator is a binary arithmetic operator.
type Operator int

const (
	OpAdd Operator = iota + 1
	OpSub
	OpMul
	OpDiv
)

// String returns the operator's source symbol
func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "?"
	}
}

// Valid reports whether o is one of + - * /.
func (o Operator) Valid() bool {
	return o >= OpAdd && o <= OpDiv
}

// Program is the ordered list of statements. Execution and code
// generation follow list order.
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() (int, int) {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return 0, 0
}

// Assignment represents: name = expr
type Assignment struct {
	Span
	Name  string
	Value Expression
}

func (a *Assignment) stmtNode() {}

// Print represents: print name
type Print struct {
	Span
	Name string
}

func (p *Print) stmtNode() {}

// NumberLit represents an integer literal
type NumberLit struct {
	Span
	Value int64
}

func (n *NumberLit) exprNode() {}

// VariableRef represents a read of a variable
type VariableRef struct {
	Span
	Name string
}

func (v *VariableRef) exprNode() {}

// BinaryOp represents left op right. Its span is the operator's position.
type BinaryOp struct {
	Span
	Op    Operator
	Left  Expression
	Right Expression
}

func (b *BinaryOp) exprNode() {}

package ast

import (
	"fmt"

	"github.com/lhaig/calcc/internal/diagnostic"
)

// ExprVisitor has one method per expression kind. Every consumer of the
// tree implements it, so a new node kind fails to compile until each
// consumer handles it.
type ExprVisitor[T any] interface {
	VisitNumber(n *NumberLit) (T, error)
	VisitVariable(v *VariableRef) (T, error)
	VisitBinary(b *BinaryOp) (T, error)
}

// StmtVisitor has one method per statement kind.
type StmtVisitor interface {
	VisitAssignment(a *Assignment) error
	VisitPrint(p *Print) error
}

// VisitExpr dispatches e to the matching visitor method. Binary nodes with
// an operator outside + - * / are rejected before reaching the visitor.
func VisitExpr[T any](e Expression, v ExprVisitor[T]) (T, error) {
	var zero T
	switch n := e.(type) {
	case *NumberLit:
		return v.VisitNumber(n)
	case *VariableRef:
		return v.VisitVariable(n)
	case *BinaryOp:
		if !n.Op.Valid() {
			return zero, &diagnostic.UnsupportedOperationError{
				Location: n.Location(),
				Op:       fmt.Sprintf("Operator(%d)", int(n.Op)),
			}
		}
		return v.VisitBinary(n)
	default:
		return zero, &diagnostic.UnsupportedOperationError{Op: fmt.Sprintf("%T", e)}
	}
}

// VisitStmt dispatches s to the matching visitor method.
func VisitStmt(s Statement, v StmtVisitor) error {
	switch n := s.(type) {
	case *Assignment:
		return v.VisitAssignment(n)
	case *Print:
		return v.VisitPrint(n)
	default:
		return &diagnostic.UnsupportedOperationError{Op: fmt.Sprintf("%T", s)}
	}
}

// VisitProgram visits every statement in order and stops at the first error.
func VisitProgram(prog *Program, v StmtVisitor) error {
	for _, stmt := range prog.Statements {
		if err := VisitStmt(stmt, v); err != nil {
			return err
		}
	}
	return nil
}

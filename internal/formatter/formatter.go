package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lhaig/calcc/internal/ast"
	"github.com/lhaig/calcc/internal/parser"
)

// Format takes an AST Program and returns canonical source code: one
// statement per line and only the parentheses the tree needs.
func Format(prog *ast.Program) string {
	f := &formatter{}
	f.formatProgram(prog)
	return f.sb.String()
}

// FormatSource parses source and formats it.
func FormatSource(source string) (string, error) {
	prog, err := parser.ParseSource(source)
	if err != nil {
		return "", err
	}
	return Format(prog), nil
}

type formatter struct {
	sb strings.Builder
}

// --- helpers ---

func (f *formatter) emitLinef(format string, args ...any) {
	f.sb.WriteString(fmt.Sprintf(format, args...))
	f.sb.WriteString("\n")
}

// --- program-level ---

func (f *formatter) formatProgram(prog *ast.Program) {
	for _, stmt := range prog.Statements {
		f.formatStmt(stmt)
	}
}

func (f *formatter) formatStmt(s ast.Statement) {
	switch stmt := s.(type) {
	case *ast.Assignment:
		f.emitLinef("%s = %s", stmt.Name, f.formatExpr(stmt.Value))
	case *ast.Print:
		f.emitLinef("print %s", stmt.Name)
	}
}

// --- expressions ---

func (f *formatter) formatExpr(e ast.Expression) string {
	return f.formatExprPrec(e, 0)
}

// formatExprPrec formats an expression, wrapping in parens if needed based on parent precedence.
func (f *formatter) formatExprPrec(e ast.Expression, parentPrec int) string {
	switch expr := e.(type) {
	case *ast.BinaryOp:
		prec := precedence(expr.Op)
		left := f.formatExprPrec(expr.Left, prec)
		right := f.formatExprPrec(expr.Right, prec+1) // +1 for left-associativity
		result := fmt.Sprintf("%s %s %s", left, expr.Op, right)
		if prec < parentPrec {
			return "(" + result + ")"
		}
		return result

	case *ast.NumberLit:
		return strconv.FormatInt(expr.Value, 10)

	case *ast.VariableRef:
		return expr.Name

	default:
		return "?"
	}
}

// precedence returns the binding strength of a binary operator:
//
//	1: + -
//	2: * /
func precedence(op ast.Operator) int {
	switch op {
	case ast.OpAdd, ast.OpSub:
		return 1
	case ast.OpMul, ast.OpDiv:
		return 2
	default:
		return 0
	}
}

// Package checker performs definite-assignment analysis. Unlike the code
// generators, which stop at the first undefined read, it walks the whole
// program and reports every problem it finds.
package checker

import (
	"github.com/lhaig/calcc/internal/ast"
	"github.com/lhaig/calcc/internal/diagnostic"
)

// Checker performs semantic analysis on the AST
type Checker struct {
	prog  *ast.Program
	diag  *diagnostic.Diagnostics
	scope *Scope
}

// CheckResult holds the results of checking for use by later stages
type CheckResult struct {
	Diagnostics *diagnostic.Diagnostics
	Scope       *Scope
}

// CheckWithResult performs semantic analysis and returns the symbol table
// alongside the diagnostics.
func CheckWithResult(prog *ast.Program) *CheckResult {
	c := &Checker{
		prog:  prog,
		diag:  diagnostic.New(),
		scope: NewScope(),
	}
	for _, stmt := range prog.Statements {
		c.checkStatement(stmt)
	}
	return &CheckResult{Diagnostics: c.diag, Scope: c.scope}
}

// Check performs semantic analysis on an AST program
func Check(prog *ast.Program) *diagnostic.Diagnostics {
	return CheckWithResult(prog).Diagnostics
}

func (c *Checker) checkStatement(stmt ast.Statement) {
	if err := ast.VisitStmt(stmt, c); err != nil {
		c.diag.Add(diagnostic.FromError(err))
	}
}

// VisitAssignment checks the right-hand side before defining the name, so
// "x = x + 1" reads an undefined x.
func (c *Checker) VisitAssignment(a *ast.Assignment) error {
	c.checkExpr(a.Value)
	c.scope.Define(a)
	return nil
}

func (c *Checker) VisitPrint(p *ast.Print) error {
	c.read(p.Name, p.Span)
	return nil
}

func (c *Checker) checkExpr(e ast.Expression) {
	if _, err := ast.VisitExpr[struct{}](e, c); err != nil {
		c.diag.Add(diagnostic.FromError(err))
	}
}

func (c *Checker) VisitNumber(*ast.NumberLit) (struct{}, error) {
	return struct{}{}, nil
}

func (c *Checker) VisitVariable(v *ast.VariableRef) (struct{}, error) {
	c.read(v.Name, v.Span)
	return struct{}{}, nil
}

// VisitBinary checks both operands even if the left one has problems.
func (c *Checker) VisitBinary(b *ast.BinaryOp) (struct{}, error) {
	c.checkExpr(b.Left)
	c.checkExpr(b.Right)
	return struct{}{}, nil
}

func (c *Checker) read(name string, at ast.Span) {
	sym := c.scope.Resolve(name)
	if sym == nil {
		c.diag.Add(diagnostic.FromError(&diagnostic.UndefinedVariableError{
			Location: at.Location(),
			Name:     name,
		}))
		return
	}
	sym.Reads++
}

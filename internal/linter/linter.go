package linter

import (
	"unicode"

	"github.com/lhaig/calcc/internal/ast"
	"github.com/lhaig/calcc/internal/checker"
	"github.com/lhaig/calcc/internal/diagnostic"
)

// Linter performs style and best-practice checks on an AST program.
// It reports warnings (never errors) using the diagnostic system.
type Linter struct {
	prog  *ast.Program
	diag  *diagnostic.Diagnostics
	scope *checker.Scope
}

// Lint runs all lint rules on the given program and returns diagnostics.
// Undefined reads are the checker's concern and are not reported here.
func Lint(prog *ast.Program) *diagnostic.Diagnostics {
	l := &Linter{
		prog:  prog,
		diag:  diagnostic.New(),
		scope: checker.CheckWithResult(prog).Scope,
	}

	l.lintAssignments()
	l.lintDeadStores()
	l.lintUnusedVariables()

	return l.diag
}

// lintAssignments runs the per-statement rules.
func (l *Linter) lintAssignments() {
	for _, stmt := range l.prog.Statements {
		a, ok := stmt.(*ast.Assignment)
		if !ok {
			continue
		}
		l.checkVariableNaming(a)
		l.checkSelfAssignment(a)
		l.checkDivisionByZero(a.Value)
	}
}

// --- Lint rules ---

// checkVariableNaming warns if a variable name is not snake_case.
// Only the first assignment is reported.
func (l *Linter) checkVariableNaming(a *ast.Assignment) {
	sym := l.scope.Resolve(a.Name)
	if sym == nil || sym.Assignments[0] != a {
		return
	}
	if !isSnakeCase(a.Name) {
		l.diag.Warningf(a.Line, a.Column,
			"variable '%s' should use snake_case naming", a.Name)
	}
}

// checkSelfAssignment warns about "a = a".
func (l *Linter) checkSelfAssignment(a *ast.Assignment) {
	if ref, ok := a.Value.(*ast.VariableRef); ok && ref.Name == a.Name {
		l.diag.WarningWithHint(a.Line, a.Column,
			"self-assignment of '"+a.Name+"' has no effect", "remove the statement")
	}
}

// checkDivisionByZero warns about any "/ 0" with a literal zero divisor.
func (l *Linter) checkDivisionByZero(e ast.Expression) {
	b, ok := e.(*ast.BinaryOp)
	if !ok {
		return
	}
	if lit, ok := b.Right.(*ast.NumberLit); ok && b.Op == ast.OpDiv && lit.Value == 0 {
		l.diag.Warningf(b.Line, b.Column, "division by literal zero")
	}
	l.checkDivisionByZero(b.Left)
	l.checkDivisionByZero(b.Right)
}

// lintUnusedVariables warns about variables that are assigned but never
// read or printed.
func (l *Linter) lintUnusedVariables() {
	for _, sym := range l.scope.Symbols() {
		if sym.Reads == 0 {
			first := sym.Assignments[0]
			l.diag.Warningf(first.Line, first.Column,
				"variable '%s' is assigned but never used", sym.Name)
		}
	}
}

// lintDeadStores warns when a value is overwritten before anything reads
// it. Variables that are never read at all are left to
// lintUnusedVariables.
func (l *Linter) lintDeadStores() {
	pending := make(map[string]*ast.Assignment)
	for _, stmt := range l.prog.Statements {
		switch s := stmt.(type) {
		case *ast.Assignment:
			for name := range collectUsedNames(s.Value) {
				delete(pending, name)
			}
			if prev, ok := pending[s.Name]; ok && l.scope.Resolve(s.Name).Reads > 0 {
				l.diag.WarningWithHint(prev.Line, prev.Column,
					"value assigned to '"+s.Name+"' is overwritten before it is read",
					"remove the earlier assignment")
			}
			pending[s.Name] = s
		case *ast.Print:
			delete(pending, s.Name)
		}
	}
}

// --- Name collection helpers ---

// collectUsedNames returns every variable name an expression reads.
func collectUsedNames(e ast.Expression) map[string]bool {
	c := &nameCollector{used: make(map[string]bool)}
	// Invalid operators are reported by the checker.
	_, _ = ast.VisitExpr[struct{}](e, c)
	return c.used
}

type nameCollector struct {
	used map[string]bool
}

func (c *nameCollector) VisitNumber(*ast.NumberLit) (struct{}, error) {
	return struct{}{}, nil
}

func (c *nameCollector) VisitVariable(v *ast.VariableRef) (struct{}, error) {
	c.used[v.Name] = true
	return struct{}{}, nil
}

func (c *nameCollector) VisitBinary(b *ast.BinaryOp) (struct{}, error) {
	if _, err := ast.VisitExpr[struct{}](b.Left, c); err != nil {
		return struct{}{}, err
	}
	return ast.VisitExpr[struct{}](b.Right, c)
}

// --- Naming convention helpers ---

// isSnakeCase returns true if the name follows snake_case conventions:
// lowercase letters, digits, and underscores only, not starting with a digit.
func isSnakeCase(name string) bool {
	if len(name) == 0 {
		return false
	}
	for _, r := range name {
		if !unicode.IsLower(r) && r != '_' && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Package eval interprets the AST directly. Its results are the reference
// semantics the backends are tested against.
package eval

import (
	"github.com/lhaig/calcc/internal/ast"
	"github.com/lhaig/calcc/internal/diagnostic"
)

// Division selects how '/' combines its operands.
type Division int

const (
	// DivReal keeps the fractional part: 7 / 2 = 3.5.
	DivReal Division = iota
	// DivTruncate rounds toward zero like a machine idiv: 7 / 2 = 3.
	DivTruncate
)

// String returns the configuration name of the division mode
func (d Division) String() string {
	switch d {
	case DivReal:
		return "real"
	case DivTruncate:
		return "truncate"
	default:
		return "unknown"
	}
}

// ParseDivision maps a configuration name to a Division.
func ParseDivision(s string) (Division, bool) {
	switch s {
	case "real":
		return DivReal, true
	case "truncate":
		return DivTruncate, true
	default:
		return 0, false
	}
}

// Options configures evaluation. The zero value uses real division.
type Options struct {
	Division Division
}

// Env maps variable names to their current values.
type Env map[string]Value

// PrintEvent is the observable effect of one print statement.
type PrintEvent struct {
	Name  string `yaml:"name"`
	Value Value  `yaml:"value"`
}

// Evaluate computes expr against env with real division.
func Evaluate(expr ast.Expression, env Env) (Value, error) {
	return EvaluateWith(expr, env, Options{})
}

// EvaluateWith computes expr against env using opts.
func EvaluateWith(expr ast.Expression, env Env, opts Options) (Value, error) {
	return ast.VisitExpr[Value](expr, &evaluator{env: env, opts: opts})
}

// EvaluateProgram runs prog in statement order and returns its print events.
func EvaluateProgram(prog *ast.Program) ([]PrintEvent, error) {
	return EvaluateProgramWith(prog, Options{})
}

// EvaluateProgramWith runs prog with opts. A fresh environment is created
// for every call.
func EvaluateProgramWith(prog *ast.Program, opts Options) ([]PrintEvent, error) {
	ev := &evaluator{env: make(Env), opts: opts}
	if err := ast.VisitProgram(prog, ev); err != nil {
		return nil, err
	}
	return ev.events, nil
}

type evaluator struct {
	env    Env
	opts   Options
	events []PrintEvent
}

func (e *evaluator) VisitAssignment(a *ast.Assignment) error {
	v, err := ast.VisitExpr[Value](a.Value, e)
	if err != nil {
		return err
	}
	e.env[a.Name] = v
	return nil
}

func (e *evaluator) VisitPrint(p *ast.Print) error {
	v, ok := e.env[p.Name]
	if !ok {
		return &diagnostic.UndefinedVariableError{Location: p.Location(), Name: p.Name}
	}
	e.events = append(e.events, PrintEvent{Name: p.Name, Value: v})
	return nil
}

func (e *evaluator) VisitNumber(n *ast.NumberLit) (Value, error) {
	return Int(n.Value), nil
}

func (e *evaluator) VisitVariable(v *ast.VariableRef) (Value, error) {
	val, ok := e.env[v.Name]
	if !ok {
		return Value{}, &diagnostic.UndefinedVariableError{Location: v.Location(), Name: v.Name}
	}
	return val, nil
}

func (e *evaluator) VisitBinary(b *ast.BinaryOp) (Value, error) {
	left, err := ast.VisitExpr[Value](b.Left, e)
	if err != nil {
		return Value{}, err
	}
	right, err := ast.VisitExpr[Value](b.Right, e)
	if err != nil {
		return Value{}, err
	}
	return Apply(b.Op, left, right, e.opts.Division, b.Location())
}

// Apply combines two operands. loc is reported on division by zero.
func Apply(op ast.Operator, left, right Value, div Division, loc diagnostic.Location) (Value, error) {
	switch op {
	case ast.OpAdd:
		return left.Add(right), nil
	case ast.OpSub:
		return left.Sub(right), nil
	case ast.OpMul:
		return left.Mul(right), nil
	case ast.OpDiv:
		if right.IsZero() {
			return Value{}, &diagnostic.DivisionByZeroError{Location: loc}
		}
		return left.Quo(right, div), nil
	default:
		return Value{}, &diagnostic.UnsupportedOperationError{Location: loc, Op: op.String()}
	}
}

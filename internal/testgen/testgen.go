// Package testgen builds random, well-formed ASTs for property tests of the
// backends. Output is fully determined by the seed.
package testgen

import (
	"fmt"

	"github.com/lhaig/calcc/internal/ast"
	"github.com/lhaig/calcc/internal/eval"
)

// DefaultMaxDepth bounds expression nesting. With DefaultMaxLiteral it keeps
// every intermediate value well inside int64, so the asm target never
// overflows.
const DefaultMaxDepth = 4

// DefaultMaxLiteral is the largest literal or variable value generated.
const DefaultMaxLiteral = 9

// Generator produces random expressions and programs.
type Generator struct {
	state      uint64
	MaxDepth   int
	MaxLiteral int64
	Vars       []string
}

// New creates a generator for seed. A zero seed is replaced, since
// xorshift never leaves the zero state.
func New(seed uint64) *Generator {
	if seed == 0 {
		seed = 0x9E3779B97F4A7C15
	}
	return &Generator{
		state:      seed,
		MaxDepth:   DefaultMaxDepth,
		MaxLiteral: DefaultMaxLiteral,
	}
}

func (g *Generator) next() uint64 {
	x := g.state
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.state = x
	return x
}

// intn returns a value in [0, n).
func (g *Generator) intn(n int) int {
	return int(g.next() % uint64(n))
}

// literal returns a value in [1, MaxLiteral].
func (g *Generator) literal() int64 {
	return 1 + int64(g.next()%uint64(g.MaxLiteral))
}

// Env returns values for every name in Vars.
func (g *Generator) Env() eval.Env {
	env := make(eval.Env, len(g.Vars))
	for _, name := range g.Vars {
		env[name] = eval.Int(g.literal())
	}
	return env
}

// Expr returns a random expression of at most MaxDepth levels. The right
// operand of '/' is always a non-zero literal, so evaluation never divides
// by zero.
func (g *Generator) Expr() ast.Expression {
	return g.expr(g.MaxDepth)
}

func (g *Generator) expr(depth int) ast.Expression {
	if depth <= 1 || g.intn(4) == 0 {
		return g.leaf()
	}
	op := ast.Operator(1 + g.intn(4))
	left := g.expr(depth - 1)
	var right ast.Expression
	if op == ast.OpDiv {
		right = &ast.NumberLit{Value: g.literal()}
	} else {
		right = g.expr(depth - 1)
	}
	return &ast.BinaryOp{Op: op, Left: left, Right: right}
}

func (g *Generator) leaf() ast.Expression {
	if len(g.Vars) > 0 && g.intn(2) == 0 {
		return &ast.VariableRef{Name: g.Vars[g.intn(len(g.Vars))]}
	}
	return &ast.NumberLit{Value: g.literal()}
}

// Program returns n assignments to v0..v(n-1) with a print after each.
// Assigned expressions are built from literals; from v1 on, each variable
// is then combined with an earlier one, so every read is of a name already
// assigned and values grow at most linearly in n.
func (g *Generator) Program(n int) *ast.Program {
	saved := g.Vars
	g.Vars = nil
	defer func() { g.Vars = saved }()

	prog := &ast.Program{}
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("v%d", i)
		prog.Statements = append(prog.Statements, &ast.Assignment{Name: name, Value: g.Expr()})
		if i > 0 {
			earlier := fmt.Sprintf("v%d", g.intn(i))
			prog.Statements = append(prog.Statements, &ast.Assignment{
				Name: name,
				Value: &ast.BinaryOp{
					Op:    ast.Operator(1 + g.intn(2)),
					Left:  &ast.VariableRef{Name: name},
					Right: &ast.VariableRef{Name: earlier},
				},
			})
		}
		prog.Statements = append(prog.Statements, &ast.Print{Name: name})
	}
	return prog
}

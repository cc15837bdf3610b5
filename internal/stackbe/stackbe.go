// Package stackbe lowers the AST to a linear stack-machine instruction
// sequence.
package stackbe

import (
	"fmt"
	"strconv"

	"github.com/lhaig/calcc/internal/ast"
	"github.com/lhaig/calcc/internal/diagnostic"
)

// Opcode identifies a stack-machine instruction.
type Opcode int

const (
	PUSH Opcode = iota + 1
	LOAD
	STORE
	PRINT
	ADD
	SUB
	MUL
	DIV
)

// String returns the opcode mnemonic
func (o Opcode) String() string {
	switch o {
	case PUSH:
		return "PUSH"
	case LOAD:
		return "LOAD"
	case STORE:
		return "STORE"
	case PRINT:
		return "PRINT"
	case ADD:
		return "ADD"
	case SUB:
		return "SUB"
	case MUL:
		return "MUL"
	case DIV:
		return "DIV"
	default:
		return fmt.Sprintf("Opcode(%d)", int(o))
	}
}

// Instruction is one stack-machine instruction. Value is set for PUSH and
// Name for LOAD and STORE.
type Instruction struct {
	Op    Opcode
	Value int64
	Name  string
}

// String renders the textual form, e.g. "PUSH 10" or "STORE c".
func (i Instruction) String() string {
	switch i.Op {
	case PUSH:
		return "PUSH " + strconv.FormatInt(i.Value, 10)
	case LOAD, STORE:
		return i.Op.String() + " " + i.Name
	default:
		return i.Op.String()
	}
}

// Lines renders code one instruction per element.
func Lines(code []Instruction) []string {
	lines := make([]string, len(code))
	for i, inst := range code {
		lines[i] = inst.String()
	}
	return lines
}

// Generate lowers prog. A name read before any STORE to it fails with
// *diagnostic.UndefinedVariableError; no partial code is returned.
func Generate(prog *ast.Program) ([]Instruction, error) {
	g := newGenerator(nil)
	if err := ast.VisitProgram(prog, g); err != nil {
		return nil, err
	}
	return g.code, nil
}

// GenerateExpr lowers a single expression. defined lists the names that
// may be loaded.
func GenerateExpr(expr ast.Expression, defined []string) ([]Instruction, error) {
	g := newGenerator(defined)
	if _, err := ast.VisitExpr[struct{}](expr, g); err != nil {
		return nil, err
	}
	return g.code, nil
}

// generator holds the state of one compilation unit
type generator struct {
	code    []Instruction
	defined map[string]bool
}

func newGenerator(defined []string) *generator {
	g := &generator{defined: make(map[string]bool, len(defined))}
	for _, name := range defined {
		g.defined[name] = true
	}
	return g
}

func (g *generator) emit(inst Instruction) {
	g.code = append(g.code, inst)
}

func (g *generator) VisitAssignment(a *ast.Assignment) error {
	if _, err := ast.VisitExpr[struct{}](a.Value, g); err != nil {
		return err
	}
	g.emit(Instruction{Op: STORE, Name: a.Name})
	g.defined[a.Name] = true
	return nil
}

func (g *generator) VisitPrint(p *ast.Print) error {
	if !g.defined[p.Name] {
		return &diagnostic.UndefinedVariableError{Location: p.Location(), Name: p.Name}
	}
	g.emit(Instruction{Op: LOAD, Name: p.Name})
	g.emit(Instruction{Op: PRINT})
	return nil
}

func (g *generator) VisitNumber(n *ast.NumberLit) (struct{}, error) {
	g.emit(Instruction{Op: PUSH, Value: n.Value})
	return struct{}{}, nil
}

func (g *generator) VisitVariable(v *ast.VariableRef) (struct{}, error) {
	if !g.defined[v.Name] {
		return struct{}{}, &diagnostic.UndefinedVariableError{Location: v.Location(), Name: v.Name}
	}
	g.emit(Instruction{Op: LOAD, Name: v.Name})
	return struct{}{}, nil
}

// VisitBinary emits both operands before the operator that consumes them.
func (g *generator) VisitBinary(b *ast.BinaryOp) (struct{}, error) {
	if _, err := ast.VisitExpr[struct{}](b.Left, g); err != nil {
		return struct{}{}, err
	}
	if _, err := ast.VisitExpr[struct{}](b.Right, g); err != nil {
		return struct{}{}, err
	}
	g.emit(Instruction{Op: opcodeFor(b.Op)})
	return struct{}{}, nil
}

func opcodeFor(op ast.Operator) Opcode {
	switch op {
	case ast.OpAdd:
		return ADD
	case ast.OpSub:
		return SUB
	case ast.OpMul:
		return MUL
	default:
		return DIV
	}
}

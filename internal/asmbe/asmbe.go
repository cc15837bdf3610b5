// Package asmbe lowers the AST to an x86-64 style listing that keeps
// values in an accumulator (rax) and a scratch register (rdi), spills
// intermediate results to the machine stack, and stores variables in
// fixed rbp-relative frame slots.
//
// The listing is illustrative. It follows Intel syntax and a Linux exit
// syscall but assumes a print_int routine that prints rdi.
package asmbe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lhaig/calcc/internal/ast"
	"github.com/lhaig/calcc/internal/diagnostic"
	"github.com/lhaig/calcc/internal/eval"
)

// Division is the semantics of the emitted idiv: truncation toward zero.
// It differs from the evaluator's default real division.
const Division = eval.DivTruncate

// Instruction is one assembly instruction.
type Instruction struct {
	Op   string
	Args []string
}

// String renders the instruction in Intel syntax, e.g. "mov rax, 10".
func (i Instruction) String() string {
	if len(i.Args) == 0 {
		return i.Op
	}
	return i.Op + " " + strings.Join(i.Args, ", ")
}

// Output is the result of one generation pass.
type Output struct {
	Instructions []Instruction
	Vars         *VarTable
}

// Lines renders the instructions one per element, without directives.
func (o *Output) Lines() []string {
	lines := make([]string, len(o.Instructions))
	for i, inst := range o.Instructions {
		lines[i] = inst.String()
	}
	return lines
}

// Listing renders a complete assembly file.
func (o *Output) Listing() string {
	var sb strings.Builder
	sb.WriteString(".intel_syntax noprefix\n")
	sb.WriteString(".globl _start\n")
	sb.WriteString("_start:\n")
	for _, inst := range o.Instructions {
		sb.WriteString("  ")
		sb.WriteString(inst.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Generate lowers prog. Every call uses a fresh variable table, which is
// returned in the Output.
func Generate(prog *ast.Program) (*Output, error) {
	g := &generator{vars: NewVarTable()}
	if err := ast.VisitProgram(prog, g); err != nil {
		return nil, err
	}

	body := g.code
	g.code = nil
	g.prologue()
	g.code = append(g.code, body...)
	g.epilogue()

	if g.depth != 0 {
		return nil, fmt.Errorf("unbalanced spill stack: depth %d", g.depth)
	}

	return &Output{Instructions: g.code, Vars: g.vars}, nil
}

type generator struct {
	code  []Instruction
	vars  *VarTable
	depth int // values currently spilled with push
}

func (g *generator) emit(op string, args ...string) {
	g.code = append(g.code, Instruction{Op: op, Args: args})
}

func (g *generator) push() {
	g.emit("push", "rax")
	g.depth++
}

func (g *generator) pop(reg string) {
	g.emit("pop", reg)
	g.depth--
}

func (g *generator) prologue() {
	g.emit("push", "rbp")
	g.emit("mov", "rbp", "rsp")
	if size := g.vars.FrameSize(); size > 0 {
		g.emit("sub", "rsp", strconv.Itoa(size))
	}
}

// epilogue tears down the frame and exits with status 0.
func (g *generator) epilogue() {
	g.emit("mov", "rsp", "rbp")
	g.emit("pop", "rbp")
	g.emit("mov", "rax", "60")
	g.emit("xor", "rdi", "rdi")
	g.emit("syscall")
}

func (g *generator) VisitAssignment(a *ast.Assignment) error {
	if _, err := ast.VisitExpr[struct{}](a.Value, g); err != nil {
		return err
	}
	slot := g.vars.Allocate(a.Name)
	g.emit("mov", slot.Operand(), "rax")
	return nil
}

func (g *generator) VisitPrint(p *ast.Print) error {
	slot, ok := g.vars.Lookup(p.Name)
	if !ok {
		return &diagnostic.UndefinedVariableError{Location: p.Location(), Name: p.Name}
	}
	g.emit("mov", "rdi", slot.Operand())
	g.emit("call", "print_int")
	return nil
}

func (g *generator) VisitNumber(n *ast.NumberLit) (struct{}, error) {
	g.emit("mov", "rax", strconv.FormatInt(n.Value, 10))
	return struct{}{}, nil
}

func (g *generator) VisitVariable(v *ast.VariableRef) (struct{}, error) {
	slot, ok := g.vars.Lookup(v.Name)
	if !ok {
		return struct{}{}, &diagnostic.UndefinedVariableError{Location: v.Location(), Name: v.Name}
	}
	g.emit("mov", "rax", slot.Operand())
	return struct{}{}, nil
}

// VisitBinary evaluates the left operand into rax and spills it, evaluates
// the right operand into rax, then combines with the spilled value popped
// back into rax and the right operand in rdi.
func (g *generator) VisitBinary(b *ast.BinaryOp) (struct{}, error) {
	if _, err := ast.VisitExpr[struct{}](b.Left, g); err != nil {
		return struct{}{}, err
	}
	g.push()
	if _, err := ast.VisitExpr[struct{}](b.Right, g); err != nil {
		return struct{}{}, err
	}
	g.emit("mov", "rdi", "rax")
	g.pop("rax")

	switch b.Op {
	case ast.OpAdd:
		g.emit("add", "rax", "rdi")
	case ast.OpSub:
		g.emit("sub", "rax", "rdi")
	case ast.OpMul:
		g.emit("imul", "rax", "rdi")
	case ast.OpDiv:
		g.emit("cqo")
		g.emit("idiv", "rdi")
	}
	return struct{}{}, nil
}

package stackbe

import (
	"errors"
	"fmt"

	"github.com/lhaig/calcc/internal/ast"
	"github.com/lhaig/calcc/internal/diagnostic"
	"github.com/lhaig/calcc/internal/eval"
)

// ErrStackUnderflow is returned when an instruction pops an empty stack.
var ErrStackUnderflow = errors.New("stack underflow")

// Machine is an abstract stack machine. Division is real-valued, matching
// the evaluator.
type Machine struct {
	stack  []eval.Value
	vars   eval.Env
	output []eval.Value
}

// NewMachine creates a machine whose variables start as env. env is copied.
func NewMachine(env eval.Env) *Machine {
	m := &Machine{vars: make(eval.Env, len(env))}
	for k, v := range env {
		m.vars[k] = v
	}
	return m
}

// Run executes a whole program on a fresh machine and returns the values
// printed, in order.
func Run(code []Instruction) ([]eval.Value, error) {
	m := NewMachine(nil)
	if err := m.Exec(code); err != nil {
		return nil, err
	}
	return m.output, nil
}

// EvalExpr executes the code of a single expression against env and
// returns the one value it leaves on the stack.
func EvalExpr(code []Instruction, env eval.Env) (eval.Value, error) {
	m := NewMachine(env)
	if err := m.Exec(code); err != nil {
		return eval.Value{}, err
	}
	if len(m.stack) != 1 {
		return eval.Value{}, fmt.Errorf("expression left %d values on the stack, want 1", len(m.stack))
	}
	return m.stack[0], nil
}

// Exec runs code on the machine.
func (m *Machine) Exec(code []Instruction) error {
	for pc, inst := range code {
		if err := m.step(inst); err != nil {
			return fmt.Errorf("%d: %s: %w", pc, inst, err)
		}
	}
	return nil
}

func (m *Machine) push(v eval.Value) {
	m.stack = append(m.stack, v)
}

func (m *Machine) pop() (eval.Value, error) {
	if len(m.stack) == 0 {
		return eval.Value{}, ErrStackUnderflow
	}
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v, nil
}

func (m *Machine) step(inst Instruction) error {
	switch inst.Op {
	case PUSH:
		m.push(eval.Int(inst.Value))
	case LOAD:
		v, ok := m.vars[inst.Name]
		if !ok {
			return &diagnostic.UndefinedVariableError{Name: inst.Name}
		}
		m.push(v)
	case STORE:
		v, err := m.pop()
		if err != nil {
			return err
		}
		m.vars[inst.Name] = v
	case PRINT:
		v, err := m.pop()
		if err != nil {
			return err
		}
		m.output = append(m.output, v)
	case ADD, SUB, MUL, DIV:
		right, err := m.pop()
		if err != nil {
			return err
		}
		left, err := m.pop()
		if err != nil {
			return err
		}
		v, err := eval.Apply(operatorFor(inst.Op), left, right, eval.DivReal, diagnostic.Location{})
		if err != nil {
			return err
		}
		m.push(v)
	default:
		return &diagnostic.UnsupportedOperationError{Op: inst.Op.String()}
	}
	return nil
}

func operatorFor(op Opcode) ast.Operator {
	switch op {
	case ADD:
		return ast.OpAdd
	case SUB:
		return ast.OpSub
	case MUL:
		return ast.OpMul
	default:
		return ast.OpDiv
	}
}

// StackEffect returns the net change in stack depth code causes, without
// running it. It fails if any prefix of code would underflow.
func StackEffect(code []Instruction) (int, error) {
	depth := 0
	for pc, inst := range code {
		switch inst.Op {
		case PUSH, LOAD:
			depth++
		case STORE, PRINT, ADD, SUB, MUL, DIV:
			need := 1
			if inst.Op != STORE && inst.Op != PRINT {
				need = 2
			}
			if depth < need {
				return 0, fmt.Errorf("%d: %s: %w", pc, inst, ErrStackUnderflow)
			}
			depth--
		default:
			return 0, &diagnostic.UnsupportedOperationError{Op: inst.Op.String()}
		}
	}
	return depth, nil
}

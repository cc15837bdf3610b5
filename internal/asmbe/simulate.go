package asmbe

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lhaig/calcc/internal/diagnostic"
)

// stackTop is the initial rsp of a simulated run.
const stackTop int64 = 1 << 20

// ErrUninitialized is returned when a listing reads memory it never wrote.
var ErrUninitialized = errors.New("read of uninitialized memory")

// Simulate executes an Output's instructions and returns the values passed
// to print_int, in order. It understands exactly the instructions this
// package emits.
func Simulate(out *Output) ([]int64, error) {
	s := &simulator{
		regs: map[string]int64{"rsp": stackTop},
		mem:  make(map[int64]int64),
	}
	for pc, inst := range out.Instructions {
		done, err := s.step(inst)
		if err != nil {
			return nil, fmt.Errorf("%d: %s: %w", pc, inst, err)
		}
		if done {
			break
		}
	}
	return s.output, nil
}

type simulator struct {
	regs   map[string]int64
	mem    map[int64]int64
	output []int64
}

var registers = map[string]bool{"rax": true, "rdi": true, "rdx": true, "rbp": true, "rsp": true}

func (s *simulator) step(inst Instruction) (bool, error) {
	switch inst.Op {
	case "mov":
		v, err := s.read(inst.Args[1])
		if err != nil {
			return false, err
		}
		return false, s.write(inst.Args[0], v)
	case "push":
		v, err := s.read(inst.Args[0])
		if err != nil {
			return false, err
		}
		s.regs["rsp"] -= 8
		s.mem[s.regs["rsp"]] = v
	case "pop":
		v, ok := s.mem[s.regs["rsp"]]
		if !ok {
			return false, ErrUninitialized
		}
		s.regs["rsp"] += 8
		return false, s.write(inst.Args[0], v)
	case "add", "sub", "imul", "xor":
		a, err := s.read(inst.Args[0])
		if err != nil {
			return false, err
		}
		b, err := s.read(inst.Args[1])
		if err != nil {
			return false, err
		}
		var r int64
		switch inst.Op {
		case "add":
			r = a + b
		case "sub":
			r = a - b
		case "imul":
			r = a * b
		case "xor":
			r = a ^ b
		}
		return false, s.write(inst.Args[0], r)
	case "cqo":
		if s.regs["rax"] < 0 {
			s.regs["rdx"] = -1
		} else {
			s.regs["rdx"] = 0
		}
	case "idiv":
		d, err := s.read(inst.Args[0])
		if err != nil {
			return false, err
		}
		if d == 0 {
			return false, &diagnostic.DivisionByZeroError{}
		}
		n := s.regs["rax"]
		s.regs["rax"], s.regs["rdx"] = n/d, n%d
	case "call":
		if len(inst.Args) != 1 || inst.Args[0] != "print_int" {
			return false, &diagnostic.UnsupportedOperationError{Op: inst.String()}
		}
		s.output = append(s.output, s.regs["rdi"])
	case "syscall":
		if s.regs["rax"] == 60 {
			return true, nil
		}
		return false, &diagnostic.UnsupportedOperationError{Op: fmt.Sprintf("syscall %d", s.regs["rax"])}
	default:
		return false, &diagnostic.UnsupportedOperationError{Op: inst.Op}
	}
	return false, nil
}

// read resolves a register, immediate, or "qword [rbp-N]" operand.
func (s *simulator) read(operand string) (int64, error) {
	if registers[operand] {
		return s.regs[operand], nil
	}
	if addr, ok, err := s.address(operand); ok || err != nil {
		if err != nil {
			return 0, err
		}
		v, written := s.mem[addr]
		if !written {
			return 0, ErrUninitialized
		}
		return v, nil
	}
	return strconv.ParseInt(operand, 10, 64)
}

func (s *simulator) write(operand string, v int64) error {
	if registers[operand] {
		s.regs[operand] = v
		return nil
	}
	addr, ok, err := s.address(operand)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("cannot write to %q", operand)
	}
	s.mem[addr] = v
	return nil
}

func (s *simulator) address(operand string) (int64, bool, error) {
	inner, found := strings.CutPrefix(operand, "qword [rbp-")
	if !found {
		return 0, false, nil
	}
	inner, found = strings.CutSuffix(inner, "]")
	if !found {
		return 0, false, fmt.Errorf("malformed memory operand %q", operand)
	}
	off, err := strconv.ParseInt(inner, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("malformed memory operand %q", operand)
	}
	return s.regs["rbp"] - off, true, nil
}

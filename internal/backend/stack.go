package backend

import (
	"github.com/lhaig/calcc/internal/ast"
	"github.com/lhaig/calcc/internal/eval"
	"github.com/lhaig/calcc/internal/stackbe"
)

// StackBackend wraps stackbe as a Backend implementation.
type StackBackend struct{}

// Name returns the backend name.
func (b *StackBackend) Name() string {
	return "stack"
}

// Division returns the machine's division semantics.
func (b *StackBackend) Division() eval.Division {
	return eval.DivReal
}

// Generate produces stack bytecode. The variable table lists names in
// first-store order.
func (b *StackBackend) Generate(prog *ast.Program) (*Artifact, error) {
	code, err := stackbe.Generate(prog)
	if err != nil {
		return nil, err
	}

	var vars []VarSlot
	seen := make(map[string]bool)
	for _, inst := range code {
		if inst.Op == stackbe.STORE && !seen[inst.Name] {
			seen[inst.Name] = true
			vars = append(vars, VarSlot{Name: inst.Name, Index: len(vars)})
		}
	}

	return &Artifact{
		Target:   b.Name(),
		Division: b.Division().String(),
		Lines:    stackbe.Lines(code),
		Vars:     vars,
		run:      func() ([]eval.Value, error) { return stackbe.Run(code) },
	}, nil
}

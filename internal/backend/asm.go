package backend

import (
	"github.com/lhaig/calcc/internal/asmbe"
	"github.com/lhaig/calcc/internal/ast"
	"github.com/lhaig/calcc/internal/eval"
)

// AsmBackend wraps asmbe as a Backend implementation.
type AsmBackend struct{}

// Name returns the backend name.
func (b *AsmBackend) Name() string {
	return "asm"
}

// Division returns the semantics of idiv.
func (b *AsmBackend) Division() eval.Division {
	return asmbe.Division
}

// Generate produces an x86-64 listing. Running the artifact simulates it.
func (b *AsmBackend) Generate(prog *ast.Program) (*Artifact, error) {
	out, err := asmbe.Generate(prog)
	if err != nil {
		return nil, err
	}

	slots := out.Vars.Slots()
	vars := make([]VarSlot, len(slots))
	for i, s := range slots {
		vars[i] = VarSlot{Name: s.Name, Index: s.Index, Offset: s.Offset}
	}

	return &Artifact{
		Target:   b.Name(),
		Division: b.Division().String(),
		Lines:    out.Lines(),
		Vars:     vars,
		listing:  out.Listing(),
		run: func() ([]eval.Value, error) {
			printed, err := asmbe.Simulate(out)
			if err != nil {
				return nil, err
			}
			values := make([]eval.Value, len(printed))
			for i, v := range printed {
				values[i] = eval.Int(v)
			}
			return values, nil
		},
	}, nil
}

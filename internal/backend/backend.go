package backend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lhaig/calcc/internal/ast"
	"github.com/lhaig/calcc/internal/eval"
)

// Backend is the interface that all code generation backends implement.
type Backend interface {
	// Name returns the target name (e.g., "stack", "asm")
	Name() string
	// Division reports how the generated code divides.
	Division() eval.Division
	// Generate lowers a program. Each call starts from empty state.
	Generate(prog *ast.Program) (*Artifact, error)
}

// VarSlot is one entry of a backend's variable table.
type VarSlot struct {
	Name   string `yaml:"name"`
	Index  int    `yaml:"index"`
	Offset int    `yaml:"offset,omitempty"` // bytes below the frame pointer; asm only
}

// Artifact is the output of one Generate call.
type Artifact struct {
	Target   string    `yaml:"target"`
	Division string    `yaml:"division"`
	Lines    []string  `yaml:"lines"`
	Vars     []VarSlot `yaml:"vars,omitempty"`

	listing string
	run     func() ([]eval.Value, error)
}

// Listing returns the artifact as a file body. Backends with directives
// or headers supply their own; otherwise it is Lines, one per line.
func (a *Artifact) Listing() string {
	if a.listing != "" {
		return a.listing
	}
	if len(a.Lines) == 0 {
		return ""
	}
	return strings.Join(a.Lines, "\n") + "\n"
}

// Run executes the artifact on the backend's machine and returns the
// printed values in order.
func (a *Artifact) Run() ([]eval.Value, error) {
	if a.run == nil {
		return nil, fmt.Errorf("target %s cannot be executed", a.Target)
	}
	return a.run()
}

var registry = map[string]func() Backend{
	"stack": func() Backend { return &StackBackend{} },
	"asm":   func() Backend { return &AsmBackend{} },
}

// Lookup returns the backend for the given target
func Lookup(target string) (Backend, error) {
	newBackend, ok := registry[target]
	if !ok {
		return nil, fmt.Errorf("unknown target: %s (available: %s)", target, strings.Join(Names(), ", "))
	}
	return newBackend(), nil
}

// Names returns every registered target, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FileExtension returns the conventional extension for a target's output.
func FileExtension(target string) string {
	switch target {
	case "stack":
		return ".bc"
	case "asm":
		return ".s"
	default:
		return ""
	}
}

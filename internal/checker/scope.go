package checker

import "github.com/lhaig/calcc/internal/ast"

// Symbol is a variable seen by the checker.
type Symbol struct {
	Name        string
	Assignments []*ast.Assignment // in program order
	Reads       int               // reads after the first assignment
}

// Scope is the symbol table of a program. The language has a single
// global scope, so there is no parent chain.
type Scope struct {
	order   []string
	symbols map[string]*Symbol
}

// NewScope creates an empty scope
func NewScope() *Scope {
	return &Scope{symbols: make(map[string]*Symbol)}
}

// Define records an assignment to the symbol's name, creating the symbol
// on first use.
func (s *Scope) Define(a *ast.Assignment) *Symbol {
	sym, ok := s.symbols[a.Name]
	if !ok {
		sym = &Symbol{Name: a.Name}
		s.symbols[a.Name] = sym
		s.order = append(s.order, a.Name)
	}
	sym.Assignments = append(sym.Assignments, a)
	return sym
}

// Resolve looks up a symbol.
// Returns nil if the name was never assigned.
func (s *Scope) Resolve(name string) *Symbol {
	return s.symbols[name]
}

// Symbols returns every symbol in first-assignment order.
func (s *Scope) Symbols() []*Symbol {
	out := make([]*Symbol, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.symbols[name])
	}
	return out
}

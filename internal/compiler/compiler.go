package compiler

import (
	"github.com/google/uuid"

	"github.com/lhaig/calcc/internal/ast"
	"github.com/lhaig/calcc/internal/backend"
	"github.com/lhaig/calcc/internal/checker"
	"github.com/lhaig/calcc/internal/diagnostic"
	"github.com/lhaig/calcc/internal/eval"
	"github.com/lhaig/calcc/internal/lexer"
	"github.com/lhaig/calcc/internal/linter"
	"github.com/lhaig/calcc/internal/parser"
)

// Options configures a compilation.
type Options struct {
	Target string
	// Division is the semantics the author expects. A target that divides
	// differently gets a warning when the program divides at all.
	Division eval.Division
}

// Result holds the output of a compilation. Fields after Diagnostics are
// filled in as far as the pipeline got.
type Result struct {
	ID          uuid.UUID
	Target      string
	Diagnostics *diagnostic.Diagnostics
	Tokens      []lexer.Token
	Program     *ast.Program
	Artifact    *backend.Artifact
}

// Compile runs the full pipeline: tokenize -> parse -> check -> backend,
// expecting real division.
func Compile(source, target string) *Result {
	return CompileWith(source, Options{Target: target, Division: eval.DivReal})
}

// CompileWith runs the full pipeline with explicit options. It never
// writes files.
func CompileWith(source string, opts Options) *Result {
	res := &Result{
		ID:          uuid.New(),
		Target:      opts.Target,
		Diagnostics: diagnostic.New(),
	}

	be, err := backend.Lookup(opts.Target)
	if err != nil {
		res.Diagnostics.Errorf(0, 0, "%s", err)
		return res
	}

	if !res.parse(source) {
		return res
	}

	// Check reports every undefined read; backends would stop at the first.
	checked := checker.Check(res.Program)
	if checked.HasErrors() {
		res.Diagnostics = checked
		return res
	}

	art, err := be.Generate(res.Program)
	if err != nil {
		res.Diagnostics.Add(diagnostic.FromError(err))
		return res
	}
	res.Artifact = art

	if be.Division() != opts.Division {
		if div := firstDivision(res.Program); div != nil {
			res.Diagnostics.WarningWithHint(div.Line, div.Column,
				"target "+be.Name()+" uses "+be.Division().String()+" division, expected "+opts.Division.String(),
				"results of '/' may differ from the evaluator")
		}
	}

	return res
}

// parse fills Tokens and Program, recording the first error.
func (res *Result) parse(source string) bool {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		res.Diagnostics.Add(diagnostic.FromError(err))
		return false
	}
	res.Tokens = tokens

	prog, err := parser.Parse(tokens)
	if err != nil {
		res.Diagnostics.Add(diagnostic.FromError(err))
		return false
	}
	res.Program = prog
	return true
}

// Check runs tokenize + parse + check only (no codegen).
func Check(source string) *diagnostic.Diagnostics {
	res := &Result{Diagnostics: diagnostic.New()}
	if !res.parse(source) {
		return res.Diagnostics
	}
	return checker.Check(res.Program)
}

// Lint runs tokenize + parse + check, then the linter. Check errors come
// first, followed by lint warnings.
func Lint(source string) *diagnostic.Diagnostics {
	res := &Result{Diagnostics: diagnostic.New()}
	if !res.parse(source) {
		return res.Diagnostics
	}
	diag := checker.Check(res.Program)
	for _, d := range linter.Lint(res.Program).All() {
		diag.Add(d)
	}
	return diag
}

// firstDivision returns the first '/' in program order, or nil.
func firstDivision(prog *ast.Program) *ast.BinaryOp {
	var find func(e ast.Expression) *ast.BinaryOp
	find = func(e ast.Expression) *ast.BinaryOp {
		b, ok := e.(*ast.BinaryOp)
		if !ok {
			return nil
		}
		if found := find(b.Left); found != nil {
			return found
		}
		if b.Op == ast.OpDiv {
			return b
		}
		return find(b.Right)
	}
	for _, stmt := range prog.Statements {
		if a, ok := stmt.(*ast.Assignment); ok {
			if div := find(a.Value); div != nil {
				return div
			}
		}
	}
	return nil
}

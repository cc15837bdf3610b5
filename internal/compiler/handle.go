package compiler

import (
	"github.com/lhaig/calcc/internal/ast"
	"github.com/lhaig/calcc/internal/diagnostic"
	"github.com/lhaig/calcc/internal/eval"
	"github.com/lhaig/calcc/internal/lexer"
	"github.com/lhaig/calcc/internal/parser"
)

// Command selects what Handle does with its input.
type Command string

const (
	CmdTokens   Command = "tokens"
	CmdAST      Command = "ast"
	CmdEvaluate Command = "evaluate"
)

// ResponseKind tags which fields of a Response are meaningful.
type ResponseKind string

const (
	KindTokens     ResponseKind = "tokens"
	KindAST        ResponseKind = "ast"
	KindEvaluation ResponseKind = "evaluation"
	KindError      ResponseKind = "error"
)

// Response is the result of one Handle call. A front end renders it and
// owns everything else.
type Response struct {
	Kind ResponseKind `yaml:"kind"`

	Tokens []lexer.Token `yaml:"-"`
	Tree   string        `yaml:"tree,omitempty"`

	// Evaluation of a bare expression sets Value. Evaluation of a program
	// sets Prints.
	Expression bool              `yaml:"expression,omitempty"`
	Value      *eval.Value       `yaml:"value,omitempty"`
	Prints     []eval.PrintEvent `yaml:"prints,omitempty"`

	Err        error                 `yaml:"-"`
	Diagnostic diagnostic.Diagnostic `yaml:"-"`
}

// Handle runs cmd on input with real division.
func Handle(input string, cmd Command) Response {
	return HandleWith(input, cmd, eval.Options{})
}

// HandleWith runs cmd on input. Input that parses as a single expression
// is treated as one; anything else must be a program.
func HandleWith(input string, cmd Command, opts eval.Options) Response {
	switch cmd {
	case CmdTokens, CmdAST, CmdEvaluate:
	default:
		return errorResponse(&diagnostic.UnsupportedOperationError{Op: string(cmd)})
	}

	tokens, err := lexer.Tokenize(input)
	if err != nil {
		return errorResponse(err)
	}
	if cmd == CmdTokens {
		return Response{Kind: KindTokens, Tokens: tokens}
	}

	if expr, err := parser.ParseExpression(tokens); err == nil {
		switch cmd {
		case CmdAST:
			return Response{Kind: KindAST, Tree: ast.Dump(expr), Expression: true}
		case CmdEvaluate:
			v, err := eval.EvaluateWith(expr, eval.Env{}, opts)
			if err != nil {
				return errorResponse(err)
			}
			return Response{Kind: KindEvaluation, Expression: true, Value: &v}
		}
	}

	prog, err := parser.Parse(tokens)
	if err != nil {
		return errorResponse(err)
	}
	if cmd == CmdAST {
		return Response{Kind: KindAST, Tree: ast.Dump(prog)}
	}
	prints, err := eval.EvaluateProgramWith(prog, opts)
	if err != nil {
		return errorResponse(err)
	}
	return Response{Kind: KindEvaluation, Prints: prints}
}

func errorResponse(err error) Response {
	return Response{Kind: KindError, Err: err, Diagnostic: diagnostic.FromError(err)}
}

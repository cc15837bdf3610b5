package compiler

import (
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/lhaig/calcc/internal/diagnostic"
	"github.com/lhaig/calcc/internal/eval"
	"github.com/lhaig/calcc/internal/lexer"
	"github.com/lhaig/calcc/internal/parser"
)

func TestHandleTokens(t *testing.T) {
	resp := Handle("x = 3 * (y)", CmdTokens)
	if resp.Kind != KindTokens {
		t.Fatalf("expected=%q, got=%q", KindTokens, resp.Kind)
	}
	expected := []lexer.TokenType{lexer.IDENT, lexer.ASSIGN, lexer.NUMBER, lexer.STAR, lexer.LPAREN, lexer.IDENT, lexer.RPAREN}
	if len(resp.Tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(resp.Tokens))
	}
	for i, tt := range expected {
		if resp.Tokens[i].Type != tt {
			t.Errorf("token %d: expected=%q, got=%q", i, tt, resp.Tokens[i].Type)
		}
	}
}

func TestHandleAST(t *testing.T) {
	resp := Handle("1 + 2 * 3", CmdAST)
	if resp.Kind != KindAST || !resp.Expression {
		t.Fatalf("expected expression ast response, got %+v", resp)
	}
	if !strings.HasPrefix(resp.Tree, "BinaryOp: +") {
		t.Errorf("unexpected tree:\n%s", resp.Tree)
	}

	resp = Handle("a = 1 print a", CmdAST)
	if resp.Kind != KindAST || resp.Expression {
		t.Fatalf("expected program ast response, got %+v", resp)
	}
	if !strings.HasPrefix(resp.Tree, "Program") || !strings.Contains(resp.Tree, "Print: a") {
		t.Errorf("unexpected tree:\n%s", resp.Tree)
	}
}

func TestHandleEvaluate(t *testing.T) {
	tests := []struct {
		input    string
		opts     eval.Options
		expected string
	}{
		{"10 + 20 * 2", eval.Options{}, "50"},
		{"(8 - 3) - 2", eval.Options{}, "3"},
		{"7 / 2", eval.Options{}, "3.5"},
		{"7 / 2", eval.Options{Division: eval.DivTruncate}, "3"},
		{"2 - 2", eval.Options{}, "0"},
		{"9007199254740993 - 9007199254740992", eval.Options{}, "1"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			resp := HandleWith(tt.input, CmdEvaluate, tt.opts)
			if resp.Kind != KindEvaluation {
				t.Fatalf("expected evaluation, got %q (%v)", resp.Kind, resp.Err)
			}
			if resp.Value == nil {
				t.Fatal("expected a value")
			}
			if got := resp.Value.String(); got != tt.expected {
				t.Errorf("expected=%q, got=%q", tt.expected, got)
			}
		})
	}
}

func TestHandleEvaluateProgram(t *testing.T) {
	resp := Handle("a = 10 b = 20 c = a + b * 2 print c print a", CmdEvaluate)
	if resp.Kind != KindEvaluation || resp.Expression {
		t.Fatalf("expected program evaluation, got %+v", resp)
	}
	expected := []eval.PrintEvent{{Name: "c", Value: eval.Int(50)}, {Name: "a", Value: eval.Int(10)}}
	if len(resp.Prints) != len(expected) {
		t.Fatalf("expected %d prints, got %d", len(expected), len(resp.Prints))
	}
	for i := range expected {
		if resp.Prints[i].Name != expected[i].Name || !resp.Prints[i].Value.Equal(expected[i].Value) {
			t.Errorf("print %d: expected %+v, got %+v", i, expected[i], resp.Prints[i])
		}
	}
}

func TestHandleEvaluateZeroIsEncoded(t *testing.T) {
	resp := Handle("2 - 2", CmdEvaluate)
	out, err := yaml.Marshal(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(out), "value: 0") {
		t.Errorf("expected a zero value in %q", out)
	}

	out, err = yaml.Marshal(Handle("a = 1 print a", CmdEvaluate))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(out), "\nvalue:") {
		t.Errorf("expected no expression value for a program, got %q", out)
	}
}

func TestHandleErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		cmd    Command
		target any
	}{
		{"lex", "1 $ 2", CmdTokens, new(*lexer.LexError)},
		{"syntax", "1 +", CmdAST, new(*parser.SyntaxError)},
		{"undefined", "x * 2", CmdEvaluate, new(*diagnostic.UndefinedVariableError)},
		{"division by zero", "1 / 0", CmdEvaluate, new(*diagnostic.DivisionByZeroError)},
		{"unknown command", "1", Command("compile"), new(*diagnostic.UnsupportedOperationError)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := Handle(tt.input, tt.cmd)
			if resp.Kind != KindError {
				t.Fatalf("expected error response, got %q", resp.Kind)
			}
			if !errors.As(resp.Err, tt.target) {
				t.Errorf("expected %T, got %v", tt.target, resp.Err)
			}
			if resp.Diagnostic.Message == "" {
				t.Error("expected a diagnostic message")
			}
		})
	}
}

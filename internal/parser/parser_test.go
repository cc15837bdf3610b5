package parser

import (
	"errors"
	"testing"

	"github.com/lhaig/calcc/internal/ast"
	"github.com/lhaig/calcc/internal/lexer"
)

func parseExpr(t *testing.T, input string) ast.Expression {
	t.Helper()
	tokens, err := lexer.Tokenize(input)
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	expr, err := ParseExpression(tokens)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return expr
}

func TestParseExpression_PrecedenceAndAssociativity(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2 + 3 * 4", "(2 + (3 * 4))"},
		{"8 - 3 - 2", "((8 - 3) - 2)"},
		{"(2 + 3) * 4", "((2 + 3) * 4)"},
		{"16 / 4 / 2", "((16 / 4) / 2)"},
		{"a * b + c * d", "((a * b) + (c * d))"},
		{"1 - 2 + 3", "((1 - 2) + 3)"},
		{"2 * (3 + 4) / x", "((2 * (3 + 4)) / x)"},
		{"((7))", "7"},
		{"a", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr := parseExpr(t, tt.input)
			if got := ast.String(expr); got != tt.expected {
				t.Errorf("expected=%q, got=%q", tt.expected, got)
			}
		})
	}
}

func TestParseExpression_LeftLeaningChain(t *testing.T) {
	expr := parseExpr(t, "8 - 3 - 2")

	outer, ok := expr.(*ast.BinaryOp)
	if !ok {
		t.Fatalf("expected *ast.BinaryOp, got %T", expr)
	}
	if outer.Op != ast.OpSub {
		t.Errorf("expected outer '-', got %s", outer.Op)
	}
	if _, ok := outer.Left.(*ast.BinaryOp); !ok {
		t.Errorf("expected left child to be a BinaryOp, got %T", outer.Left)
	}
	if lit, ok := outer.Right.(*ast.NumberLit); !ok || lit.Value != 2 {
		t.Errorf("expected right child NumberLit(2), got %#v", outer.Right)
	}
	if outer.Offset != 6 {
		t.Errorf("expected operator span at offset 6, got %d", outer.Offset)
	}
}

func TestParseProgram(t *testing.T) {
	input := `a = 10
b = 20
c = a + b * 2
print c`

	prog, err := ParseSource(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Statements) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(prog.Statements))
	}

	names := []string{"a", "b", "c"}
	for i, name := range names {
		assign, ok := prog.Statements[i].(*ast.Assignment)
		if !ok {
			t.Fatalf("statement[%d]: expected *ast.Assignment, got %T", i, prog.Statements[i])
		}
		if assign.Name != name {
			t.Errorf("statement[%d]: expected name %q, got %q", i, name, assign.Name)
		}
	}

	c := prog.Statements[2].(*ast.Assignment)
	if got := ast.String(c.Value); got != "(a + (b * 2))" {
		t.Errorf("expected (a + (b * 2)), got %q", got)
	}

	pr, ok := prog.Statements[3].(*ast.Print)
	if !ok {
		t.Fatalf("expected *ast.Print, got %T", prog.Statements[3])
	}
	if pr.Name != "c" {
		t.Errorf("expected print of 'c', got %q", pr.Name)
	}
	if line, col := pr.Pos(); line != 4 || col != 1 {
		t.Errorf("expected print at 4:1, got %d:%d", line, col)
	}
}

func TestParseEmptyProgram(t *testing.T) {
	prog, err := ParseSource("  \n ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Statements) != 0 {
		t.Errorf("expected no statements, got %d", len(prog.Statements))
	}
}

func TestParseStatementsOnOneLine(t *testing.T) {
	prog, err := ParseSource("x = 1 y = x print y")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Statements) != 3 {
		t.Errorf("expected 3 statements, got %d", len(prog.Statements))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		production string
		expected   []lexer.TokenType
		found      lexer.TokenType
		offset     int
	}{
		{
			name:       "missing expression",
			input:      "a = ",
			production: "factor",
			expected:   []lexer.TokenType{lexer.NUMBER, lexer.IDENT, lexer.LPAREN},
			found:      lexer.EOF,
			offset:     3,
		},
		{
			name:       "unterminated parenthesis",
			input:      "a = (2 + 3",
			expected:   []lexer.TokenType{lexer.RPAREN},
			found:      lexer.EOF,
			offset:     10,
		},
		{
			name:       "unexpected statement start",
			input:      "= 5",
			production: "statement",
			expected:   []lexer.TokenType{lexer.IDENT, lexer.PRINT},
			found:      lexer.ASSIGN,
			offset:     0,
		},
		{
			name:       "trailing tokens after expression",
			input:      "a = 2 3",
			production: "statement",
			expected:   []lexer.TokenType{lexer.IDENT, lexer.PRINT},
			found:      lexer.NUMBER,
			offset:     6,
		},
		{
			name:     "missing assign",
			input:    "a 5",
			expected: []lexer.TokenType{lexer.ASSIGN},
			found:    lexer.NUMBER,
			offset:   2,
		},
		{
			name:     "print without name",
			input:    "print",
			expected: []lexer.TokenType{lexer.IDENT},
			found:    lexer.EOF,
			offset:   5,
		},
		{
			name:     "print of a number",
			input:    "print 5",
			expected: []lexer.TokenType{lexer.IDENT},
			found:    lexer.NUMBER,
			offset:   6,
		},
		{
			name:       "dangling operator",
			input:      "a = 1 +",
			production: "factor",
			expected:   []lexer.TokenType{lexer.NUMBER, lexer.IDENT, lexer.LPAREN},
			found:      lexer.EOF,
			offset:     7,
		},
		{
			name:       "stray close paren",
			input:      "a = )",
			production: "factor",
			expected:   []lexer.TokenType{lexer.NUMBER, lexer.IDENT, lexer.LPAREN},
			found:      lexer.RPAREN,
			offset:     4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := ParseSource(tt.input)
			if err == nil {
				t.Fatalf("expected error, got program %s", ast.Dump(prog))
			}
			if prog != nil {
				t.Error("expected no partial program")
			}
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
			}
			if syntaxErr.Production != tt.production {
				t.Errorf("wrong production. expected=%q, got=%q", tt.production, syntaxErr.Production)
			}
			if len(syntaxErr.Expected) != len(tt.expected) {
				t.Fatalf("wrong expected kinds. expected=%v, got=%v", tt.expected, syntaxErr.Expected)
			}
			for i := range tt.expected {
				if syntaxErr.Expected[i] != tt.expected[i] {
					t.Errorf("expected[%d]: expected=%q, got=%q", i, tt.expected[i], syntaxErr.Expected[i])
				}
			}
			if syntaxErr.Found.Type != tt.found {
				t.Errorf("wrong found token. expected=%q, got=%q", tt.found, syntaxErr.Found.Type)
			}
			if syntaxErr.Found.Offset != tt.offset {
				t.Errorf("wrong offset. expected=%d, got=%d", tt.offset, syntaxErr.Found.Offset)
			}
		})
	}
}

func TestSyntaxErrorMessage(t *testing.T) {
	_, err := ParseSource("a = ")
	if err == nil {
		t.Fatal("expected error")
	}
	expected := "expected factor (NUMBER, IDENT or LPAREN), found EOF"
	if err.Error() != expected {
		t.Errorf("expected=%q, got=%q", expected, err.Error())
	}
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) && !syntaxErr.AtEOF() {
		t.Error("expected AtEOF")
	}
}

func TestParseSourcePropagatesLexError(t *testing.T) {
	_, err := ParseSource("a = 5 $")
	var lexErr *lexer.LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *lexer.LexError, got %T", err)
	}
}

func TestParseExpressionRejectsTrailingTokens(t *testing.T) {
	tokens, err := lexer.Tokenize("1 + 2 )")
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	_, err = ParseExpression(tokens)
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected *SyntaxError, got %v", err)
	}
	if syntaxErr.Found.Type != lexer.RPAREN {
		t.Errorf("expected RPAREN, got %s", syntaxErr.Found.Type)
	}
}

func TestParseIntegerOverflow(t *testing.T) {
	_, err := ParseSource("a = 99999999999999999999")
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected *SyntaxError, got %v", err)
	}
	if syntaxErr.Found.Type != lexer.NUMBER {
		t.Errorf("expected NUMBER, got %s", syntaxErr.Found.Type)
	}
}

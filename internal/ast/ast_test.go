package ast

import (
	"errors"
	"testing"

	"github.com/lhaig/calcc/internal/diagnostic"
)

func num(v int64) *NumberLit { return &NumberLit{Value: v} }

func bin(op Operator, l, r Expression) *BinaryOp {
	return &BinaryOp{Op: op, Left: l, Right: r}
}

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		expr     Expression
		expected string
	}{
		{"literal", num(7), "7"},
		{"variable", &VariableRef{Name: "a"}, "a"},
		{"nested", bin(OpAdd, num(2), bin(OpMul, num(3), num(4))), "(2 + (3 * 4))"},
		{"left chain", bin(OpSub, bin(OpSub, num(8), num(3)), num(2)), "((8 - 3) - 2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := String(tt.expr); got != tt.expected {
				t.Errorf("expected=%q, got=%q", tt.expected, got)
			}
		})
	}
}

func TestPrintTree(t *testing.T) {
	prog := &Program{Statements: []Statement{
		&Assignment{Name: "c", Value: bin(OpDiv, &VariableRef{Name: "a"}, num(2))},
		&Print{Name: "c"},
	}}

	expected := "Program\n" +
		"  Assign: c\n" +
		"    BinaryOp: /\n" +
		"      Variable: a\n" +
		"      Number: 2\n" +
		"  Print: c\n"
	if got := Dump(prog); got != expected {
		t.Errorf("wrong tree.\nexpected=%q\ngot=%q", expected, got)
	}
}

type countingVisitor struct{ numbers, vars, binaries int }

func (c *countingVisitor) VisitNumber(*NumberLit) (int, error) { c.numbers++; return 1, nil }

func (c *countingVisitor) VisitVariable(*VariableRef) (int, error) { c.vars++; return 1, nil }

func (c *countingVisitor) VisitBinary(b *BinaryOp) (int, error) {
	c.binaries++
	l, err := VisitExpr[int](b.Left, c)
	if err != nil {
		return 0, err
	}
	r, err := VisitExpr[int](b.Right, c)
	if err != nil {
		return 0, err
	}
	return l + r + 1, nil
}

func TestVisitExpr(t *testing.T) {
	v := &countingVisitor{}
	n, err := VisitExpr[int](bin(OpAdd, num(1), bin(OpMul, &VariableRef{Name: "x"}, num(2))), v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 5 || v.numbers != 2 || v.vars != 1 || v.binaries != 2 {
		t.Errorf("unexpected visit counts: n=%d %+v", n, v)
	}
}

func TestVisitExprRejectsUnknownOperator(t *testing.T) {
	bad := &BinaryOp{Span: Span{Offset: 4, Line: 1, Column: 5}, Op: Operator(42), Left: num(1), Right: num(2)}

	_, err := VisitExpr[int](bad, &countingVisitor{})
	var unsupported *diagnostic.UnsupportedOperationError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected *UnsupportedOperationError, got %v", err)
	}
	if unsupported.Offset != 4 {
		t.Errorf("expected offset 4, got %d", unsupported.Offset)
	}
}

func TestOperatorString(t *testing.T) {
	for op, sym := range map[Operator]string{OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/"} {
		if op.String() != sym {
			t.Errorf("expected=%q, got=%q", sym, op.String())
		}
		if !op.Valid() {
			t.Errorf("expected %s to be valid", sym)
		}
	}
	if Operator(0).Valid() {
		t.Error("zero operator must be invalid")
	}
}

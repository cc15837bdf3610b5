package ast

import (
	"fmt"
	"strings"
)

// Dump returns a tree-like string representation of the AST for debugging
func Dump(node Node) string {
	var sb strings.Builder
	printNode(&sb, node, 0)
	return sb.String()
}

func printNode(sb *strings.Builder, node Node, indent int) {
	if node == nil {
		return
	}

	prefix := strings.Repeat("  ", indent)

	switch n := node.(type) {
	case *Program:
		sb.WriteString(prefix + "Program\n")
		for _, stmt := range n.Statements {
			printNode(sb, stmt, indent+1)
		}

	case *Assignment:
		sb.WriteString(fmt.Sprintf("%sAssign: %s\n", prefix, n.Name))
		printNode(sb, n.Value, indent+1)

	case *Print:
		sb.WriteString(fmt.Sprintf("%sPrint: %s\n", prefix, n.Name))

	case *NumberLit:
		sb.WriteString(fmt.Sprintf("%sNumber: %d\n", prefix, n.Value))

	case *VariableRef:
		sb.WriteString(fmt.Sprintf("%sVariable: %s\n", prefix, n.Name))

	case *BinaryOp:
		sb.WriteString(fmt.Sprintf("%sBinaryOp: %s\n", prefix, n.Op))
		printNode(sb, n.Left, indent+1)
		printNode(sb, n.Right, indent+1)

	default:
		sb.WriteString(fmt.Sprintf("%s<unknown %T>\n", prefix, node))
	}
}

// String renders e in fully parenthesized infix form, e.g. (2 + (3 * 4)).
func String(e Expression) string {
	var sb strings.Builder
	writeExpr(&sb, e)
	return sb.String()
}

func writeExpr(sb *strings.Builder, e Expression) {
	switch n := e.(type) {
	case *NumberLit:
		fmt.Fprintf(sb, "%d", n.Value)
	case *VariableRef:
		sb.WriteString(n.Name)
	case *BinaryOp:
		sb.WriteString("(")
		writeExpr(sb, n.Left)
		fmt.Fprintf(sb, " %s ", n.Op)
		writeExpr(sb, n.Right)
		sb.WriteString(")")
	default:
		fmt.Fprintf(sb, "<%T>", e)
	}
}

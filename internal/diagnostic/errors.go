package diagnostic

import "fmt"

// Location is a point in the source text.
type Location struct {
	Offset int
	Line   int
	Column int
}

// Position returns the location as offset, line and column.
func (l Location) Position() (offset, line, col int) {
	return l.Offset, l.Line, l.Column
}

// UndefinedVariableError reports a read of a name that no earlier
// assignment has reached in program order.
type UndefinedVariableError struct {
	Location
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable '%s'", e.Name)
}

// Hint suggests how to fix the read.
func (e *UndefinedVariableError) Hint() string {
	return fmt.Sprintf("assign '%s' before reading it", e.Name)
}

// UnsupportedOperationError reports an operator outside + - * /.
// The grammar cannot produce one; hand-built trees can.
type UnsupportedOperationError struct {
	Location
	Op string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("unsupported operation %q", e.Op)
}

// DivisionByZeroError reports a division whose right operand evaluated to 0.
type DivisionByZeroError struct {
	Location
}

func (e *DivisionByZeroError) Error() string {
	return "division by zero"
}

package parser

import (
	"fmt"
	"strings"

	"github.com/lhaig/calcc/internal/lexer"
)

// SyntaxError reports the first token the grammar could not accept.
// Found has type EOF when input ran out mid-production.
type SyntaxError struct {
	Production string // "statement", "factor", or "" for a single expected token
	Expected   []lexer.TokenType
	Found      lexer.Token
	Index      int // position of Found in the token stream
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expected %s, found %s", e.expectation(), e.Found)
}

// Position returns where the unexpected token starts
func (e *SyntaxError) Position() (offset, line, col int) {
	return e.Found.Offset, e.Found.Line, e.Found.Column
}

// AtEOF reports whether input ended before the production completed.
func (e *SyntaxError) AtEOF() bool {
	return e.Found.Type == lexer.EOF
}

func (e *SyntaxError) expectation() string {
	names := make([]string, len(e.Expected))
	for i, tt := range e.Expected {
		names[i] = tt.String()
	}
	var list string
	switch len(names) {
	case 0:
		list = ""
	case 1:
		list = names[0]
	default:
		list = strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
	}
	if e.Production == "" {
		return list
	}
	if list == "" {
		return e.Production
	}
	return fmt.Sprintf("%s (%s)", e.Production, list)
}

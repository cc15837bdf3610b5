package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF
	WHITESPACE // matched by the rule table, never emitted

	// Literals
	IDENT  // x, total, my_var
	NUMBER // 123

	// Keywords
	PRINT

	// Operators
	PLUS   // +
	MINUS  // -
	STAR   // *
	SLASH  // /
	ASSIGN // =

	// Delimiters
	LPAREN // (
	RPAREN // )
)

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Offset  int // byte offset of the first character
	Line    int
	Column  int
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	switch t {
	case ILLEGAL:
		return "ILLEGAL"
	case EOF:
		return "EOF"
	case WHITESPACE:
		return "WHITESPACE"
	case IDENT:
		return "IDENT"
	case NUMBER:
		return "NUMBER"
	case PRINT:
		return "PRINT"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case STAR:
		return "STAR"
	case SLASH:
		return "SLASH"
	case ASSIGN:
		return "ASSIGN"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	default:
		return fmt.Sprintf("TokenType(%d)", t)
	}
}

// String renders the token as TYPE("literal") for diagnostics and dumps.
func (t Token) String() string {
	if t.Type == EOF {
		return "EOF"
	}
	return fmt.Sprintf("%s(%q)", t.Type, t.Literal)
}

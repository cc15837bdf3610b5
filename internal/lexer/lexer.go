package lexer

import (
	"fmt"
	"unicode/utf8"
)

// Matcher reports how many bytes at the start of input it accepts.
// Zero means no match.
type Matcher func(input string) int

// Rule pairs a token type with the matcher that recognizes it.
type Rule struct {
	Type  TokenType
	Match Matcher
}

// Rules returns the default ordered rule table. The first rule that matches
// a non-empty prefix wins, so the keyword rule must precede IDENT.
func Rules() []Rule {
	return []Rule{
		{NUMBER, digits},
		{PRINT, keyword("print")},
		{IDENT, identifier},
		{ASSIGN, literal("=")},
		{PLUS, literal("+")},
		{MINUS, literal("-")},
		{STAR, literal("*")},
		{SLASH, literal("/")},
		{LPAREN, literal("(")},
		{RPAREN, literal(")")},
		{WHITESPACE, whitespace},
	}
}

// LexError reports the first character no rule accepts.
type LexError struct {
	Offset int
	Line   int
	Column int
	Char   rune
}

func (e *LexError) Error() string {
	return fmt.Sprintf("unexpected character %q at offset %d", e.Char, e.Offset)
}

// Position returns the location of the offending character.
func (e *LexError) Position() (offset, line, col int) {
	return e.Offset, e.Line, e.Column
}

// Lexer scans source text against an ordered rule table
type Lexer struct {
	rules []Rule
}

// New creates a Lexer over the given rules. A nil table uses Rules().
func New(rules []Rule) *Lexer {
	if rules == nil {
		rules = Rules()
	}
	return &Lexer{rules: rules}
}

// Tokenize scans text with the default rule table.
func Tokenize(text string) ([]Token, error) {
	return New(nil).Tokenize(text)
}

// Tokenize returns all tokens in text. Whitespace is consumed but not
// emitted. The same text always yields the same tokens.
func (l *Lexer) Tokenize(text string) ([]Token, error) {
	tokens := make([]Token, 0, len(text)/2)
	position := 0
	line, column := 1, 1

	for position < len(text) {
		rest := text[position:]
		matched := false

		for _, rule := range l.rules {
			n := rule.Match(rest)
			if n <= 0 {
				continue
			}
			if n > len(rest) {
				n = len(rest)
			}
			lexeme := rest[:n]
			if rule.Type != WHITESPACE {
				tokens = append(tokens, Token{
					Type:    rule.Type,
					Literal: lexeme,
					Offset:  position,
					Line:    line,
					Column:  column,
				})
			}
			line, column = advancePosition(lexeme, line, column)
			position += n
			matched = true
			break
		}

		if !matched {
			ch, _ := utf8.DecodeRuneInString(rest)
			return nil, &LexError{
				Offset: position,
				Line:   line,
				Column: column,
				Char:   ch,
			}
		}
	}

	return tokens, nil
}

// advancePosition moves line/column past lexeme
func advancePosition(lexeme string, line, column int) (int, int) {
	for i := 0; i < len(lexeme); i++ {
		if lexeme[i] == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return line, column
}

// Matchers

func digits(input string) int {
	n := 0
	for n < len(input) && isDigit(input[n]) {
		n++
	}
	return n
}

func identifier(input string) int {
	if len(input) == 0 || !isLetter(input[0]) {
		return 0
	}
	n := 1
	for n < len(input) && (isLetter(input[n]) || isDigit(input[n])) {
		n++
	}
	return n
}

func whitespace(input string) int {
	n := 0
	for n < len(input) && (input[n] == ' ' || input[n] == '\t' || input[n] == '\n' || input[n] == '\r') {
		n++
	}
	return n
}

func literal(s string) Matcher {
	return func(input string) int {
		if len(input) >= len(s) && input[:len(s)] == s {
			return len(s)
		}
		return 0
	}
}

// keyword matches word only when it is not the prefix of a longer identifier.
func keyword(word string) Matcher {
	exact := literal(word)
	return func(input string) int {
		n := exact(input)
		if n == 0 {
			return 0
		}
		if n < len(input) && (isLetter(input[n]) || isDigit(input[n])) {
			return 0
		}
		return n
	}
}

// Helper functions

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

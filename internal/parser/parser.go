package parser

import (
	"strconv"

	"github.com/lhaig/calcc/internal/ast"
	"github.com/lhaig/calcc/internal/lexer"
)

// Parser holds the parser state. A Parser is single use.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// New creates a new parser over an already scanned token stream
func New(tokens []lexer.Token) *Parser {
	return &Parser{
		tokens: tokens,
		pos:    0,
	}
}

// Parse parses tokens into a Program.
func Parse(tokens []lexer.Token) (*ast.Program, error) {
	return New(tokens).Parse()
}

// ParseSource tokenizes and parses source text.
func ParseSource(source string) (*ast.Program, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// ParseExpression parses tokens as a single expression. Every token must
// be consumed.
func ParseExpression(tokens []lexer.Token) (ast.Expression, error) {
	p := New(tokens)
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.check(lexer.EOF) {
		return nil, p.errorf("", lexer.EOF)
	}
	return expr, nil
}

// Parse parses the token stream into a Program AST
func (p *Parser) Parse() (*ast.Program, error) {
	prog := &ast.Program{}

	for !p.check(lexer.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog, nil
}

// current returns the current token, or a synthetic EOF placed just past
// the last token once input is exhausted
func (p *Parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.eof()
	}
	return p.tokens[p.pos]
}

func (p *Parser) eof() lexer.Token {
	if len(p.tokens) == 0 {
		return lexer.Token{Type: lexer.EOF, Line: 1, Column: 1}
	}
	last := p.tokens[len(p.tokens)-1]
	return lexer.Token{
		Type:   lexer.EOF,
		Offset: last.Offset + len(last.Literal),
		Line:   last.Line,
		Column: last.Column + len(last.Literal),
	}
}

// advance moves to the next token and returns the consumed token
func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches the expected type,
// otherwise returns a syntax error
func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	if !p.check(tt) {
		return p.current(), p.errorf("", tt)
	}
	return p.advance(), nil
}

// check returns true if the current token is of the given type
func (p *Parser) check(tt lexer.TokenType) bool {
	return p.current().Type == tt
}

func (p *Parser) errorf(production string, expected ...lexer.TokenType) *SyntaxError {
	return &SyntaxError{
		Production: production,
		Expected:   expected,
		Found:      p.current(),
		Index:      p.pos,
	}
}

// parseStatement parses: IDENT '=' expression | 'print' IDENT
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.current().Type {
	case lexer.IDENT:
		return p.parseAssignment()
	case lexer.PRINT:
		return p.parsePrint()
	default:
		return nil, p.errorf("statement", lexer.IDENT, lexer.PRINT)
	}
}

func (p *Parser) parseAssignment() (*ast.Assignment, error) {
	name := p.advance()
	if _, err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Assignment{
		Span:  spanOf(name),
		Name:  name.Literal,
		Value: value,
	}, nil
}

func (p *Parser) parsePrint() (*ast.Print, error) {
	tok := p.advance()
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	return &ast.Print{
		Span: spanOf(tok),
		Name: name.Literal,
	}, nil
}

// Expression parsing - precedence climbing

// Precedence levels (lowest to highest), all left-associative:
// 1. + -
// 2. * /
// 3. factor (NUMBER, IDENT, parenthesized expression)

const (
	precNone     = 0
	precAdditive = 1
	precMulti    = 2
)

func tokenPrecedence(tt lexer.TokenType) int {
	switch tt {
	case lexer.PLUS, lexer.MINUS:
		return precAdditive
	case lexer.STAR, lexer.SLASH:
		return precMulti
	default:
		return precNone
	}
}

func tokenOperator(tt lexer.TokenType) ast.Operator {
	switch tt {
	case lexer.PLUS:
		return ast.OpAdd
	case lexer.MINUS:
		return ast.OpSub
	case lexer.STAR:
		return ast.OpMul
	case lexer.SLASH:
		return ast.OpDiv
	default:
		return 0
	}
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parsePrecedence(precAdditive)
}

// parsePrecedence folds operators of at least minPrec into a left-leaning
// chain. The right operand is parsed one level tighter, which is what makes
// equal-precedence operators group left to right.
func (p *Parser) parsePrecedence(minPrec int) (ast.Expression, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for {
		prec := tokenPrecedence(p.current().Type)
		if prec == precNone || prec < minPrec {
			break
		}

		op := p.advance()
		right, err := p.parsePrecedence(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{
			Span:  spanOf(op),
			Op:    tokenOperator(op.Type),
			Left:  left,
			Right: right,
		}
	}

	return left, nil
}

// parseFactor parses: NUMBER | IDENT | '(' expression ')'
func (p *Parser) parseFactor() (ast.Expression, error) {
	tok := p.current()

	switch tok.Type {
	case lexer.NUMBER:
		p.advance()
		value, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, &SyntaxError{Production: "integer literal in range", Found: tok, Index: p.pos - 1}
		}
		return &ast.NumberLit{Span: spanOf(tok), Value: value}, nil
	case lexer.IDENT:
		p.advance()
		return &ast.VariableRef{Span: spanOf(tok), Name: tok.Literal}, nil
	case lexer.LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, p.errorf("factor", lexer.NUMBER, lexer.IDENT, lexer.LPAREN)
	}
}

func spanOf(tok lexer.Token) ast.Span {
	return ast.Span{Offset: tok.Offset, Line: tok.Line, Column: tok.Column}
}

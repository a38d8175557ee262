// File: parser.go
// Title: Lox Recursive Descent Parser
// Description: Turns a token sequence into statement trees. Each precedence
//              level has its own method; binary levels fold left. A failing
//              statement is reported, the parser resynchronizes at the next
//              statement boundary and carries on, so one bad statement does
//              not hide the errors of the rest of the program.
// Author: msto63
// Version: v0.1.1
// Created: 2025-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial parser implementation
// - 2026-10-17 v0.1.1: Bounded expression nesting, full state reset in ParseExpression

package parser

import (
	"fmt"
	"strconv"

	mdwerror "github.com/msto63/lox/foundation/core/error"
	mdwlog "github.com/msto63/lox/foundation/core/log"
	mdwast "github.com/msto63/lox/foundation/lox/ast"
	"github.com/msto63/lox/foundation/lox/diag"
	"github.com/msto63/lox/foundation/lox/scanner"
)

// MaxNestingDepth bounds nested groupings, unary operators and chained
// assignments within one expression
const MaxNestingDepth = 2000

// Parser implements recursive descent parsing for lox
type Parser struct {
	tokens   []scanner.Token
	pos      int           // Index of the next unread token
	previous scanner.Token // Most recently consumed token
	depth    int           // Current expression nesting
	hadError bool
	first    *diag.Diagnostic
	errors   int
	logger   *mdwlog.Logger
	reporter diag.Reporter
}

// Options configures parser behavior
type Options struct {
	Logger   *mdwlog.Logger
	Reporter diag.Reporter // Receives lexical and syntax diagnostics
}

// ParseError is the failure of a single statement
type ParseError struct {
	Token   scanner.Token
	Message string
}

func (pe *ParseError) Error() string {
	return diag.Syntax(pe.Token, pe.Message).String()
}

// New creates a new parser with the given options
func New(opts Options) (*Parser, error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.Reporter == nil {
		opts.Reporter = diag.Discard
	}

	return &Parser{
		logger:   opts.Logger.WithField("component", "lox-parser"),
		reporter: opts.Reporter,
	}, nil
}

// Parse parses a whole program. The statements parsed so far are always
// returned; a non-nil error means at least one lexical or syntax error was
// reported and the statements must not be executed.
func (p *Parser) Parse(tokens []scanner.Token) ([]mdwast.Stmt, error) {
	p.tokens = tokens
	p.pos = 0
	p.previous = scanner.Token{}
	p.depth = 0
	p.hadError = false
	p.first = nil
	p.errors = 0

	var statements []mdwast.Stmt
	for !p.atEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.synchronize()
			continue
		}
		statements = append(statements, stmt)
	}

	p.logger.Debug("parsed program", mdwlog.Fields{
		"tokens":     len(tokens),
		"statements": len(statements),
		"errors":     p.errors,
	})

	if !p.hadError {
		return statements, nil
	}

	code := mdwerror.CodeSyntax
	if p.first.Kind == diag.KindLexical {
		code = mdwerror.CodeLexical
	}
	return statements, mdwerror.New(p.first.String()).
		WithCode(code).
		WithOperation("parser.Parse").
		WithDetail("errors", p.errors).
		WithDetail("line", p.first.Line)
}

// HadError reports whether the last Parse saw any error
func (p *Parser) HadError() bool {
	return p.hadError
}

// ParseExpression parses a single expression that must span all tokens.
// It is used by tooling that evaluates bare expressions.
func (p *Parser) ParseExpression(tokens []scanner.Token) (mdwast.Expr, error) {
	p.tokens = tokens
	p.pos = 0
	p.previous = scanner.Token{}
	p.depth = 0
	p.hadError = false
	p.first = nil
	p.errors = 0

	expr, err := p.expression()
	if err == nil && !p.atEnd() {
		err = p.errorAt(p.peek(), "Expect end of expression.")
	}
	if err != nil || p.hadError {
		if p.first != nil {
			return nil, p.first.Err().WithOperation("parser.ParseExpression")
		}
		return nil, err
	}
	return expr, nil
}

// Declarations and statements

func (p *Parser) declaration() (mdwast.Stmt, error) {
	if p.match(scanner.TokenVar) {
		return p.varDeclaration()
	}
	return p.statement()
}

func (p *Parser) varDeclaration() (mdwast.Stmt, error) {
	name, err := p.consume(scanner.TokenIdentifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var initializer mdwast.Expr
	if p.match(scanner.TokenEqual) {
		if initializer, err = p.expression(); err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(scanner.TokenSemicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &mdwast.Var{Name: name, Initializer: initializer}, nil
}

func (p *Parser) statement() (mdwast.Stmt, error) {
	if p.match(scanner.TokenPrint) {
		return p.printStatement()
	}
	return p.expressionStatement()
}

func (p *Parser) printStatement() (mdwast.Stmt, error) {
	keyword := p.previous
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(scanner.TokenSemicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &mdwast.PrintStmt{Keyword: keyword, Expression: value}, nil
}

func (p *Parser) expressionStatement() (mdwast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(scanner.TokenSemicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &mdwast.Expression{Expression: expr}, nil
}

// Expressions, loosest binding first

func (p *Parser) expression() (mdwast.Expr, error) {
	return p.assignment()
}

// assignment is right associative. An invalid target is reported without
// unwinding, the left hand side is kept.
func (p *Parser) assignment() (mdwast.Expr, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.match(scanner.TokenEqual) {
		equals := p.previous
		if err := p.nest(); err != nil {
			return nil, err
		}
		value, err := p.assignment()
		p.unnest()
		if err != nil {
			return nil, err
		}

		if variable, ok := expr.(*mdwast.Variable); ok {
			return &mdwast.Assign{Name: variable.Name, Value: value}, nil
		}
		p.errorAt(equals, "Invalid assignment target.")
	}

	return expr, nil
}

func (p *Parser) or() (mdwast.Expr, error) {
	return p.logical(p.and, scanner.TokenOr)
}

func (p *Parser) and() (mdwast.Expr, error) {
	return p.logical(p.equality, scanner.TokenAnd)
}

func (p *Parser) equality() (mdwast.Expr, error) {
	return p.binary(p.comparison, scanner.TokenBangEqual, scanner.TokenEqualEqual)
}

func (p *Parser) comparison() (mdwast.Expr, error) {
	return p.binary(p.term,
		scanner.TokenGreater, scanner.TokenGreaterEqual,
		scanner.TokenLess, scanner.TokenLessEqual)
}

func (p *Parser) term() (mdwast.Expr, error) {
	return p.binary(p.factor, scanner.TokenMinus, scanner.TokenPlus)
}

func (p *Parser) factor() (mdwast.Expr, error) {
	return p.binary(p.unary, scanner.TokenSlash, scanner.TokenStar)
}

// binary parses a left associative chain of operands produced by next
func (p *Parser) binary(next func() (mdwast.Expr, error), operators ...scanner.TokenType) (mdwast.Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for p.match(operators...) {
		operator := p.previous
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &mdwast.Binary{Left: left, Operator: operator, Right: right}
	}

	return left, nil
}

func (p *Parser) logical(next func() (mdwast.Expr, error), operator scanner.TokenType) (mdwast.Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for p.match(operator) {
		op := p.previous
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &mdwast.Logical{Left: left, Operator: op, Right: right}
	}

	return left, nil
}

func (p *Parser) unary() (mdwast.Expr, error) {
	if p.match(scanner.TokenBang, scanner.TokenMinus) {
		operator := p.previous
		if err := p.nest(); err != nil {
			return nil, err
		}
		right, err := p.unary()
		p.unnest()
		if err != nil {
			return nil, err
		}
		return &mdwast.Unary{Operator: operator, Right: right}, nil
	}
	return p.primary()
}

func (p *Parser) primary() (mdwast.Expr, error) {
	switch {
	case p.match(scanner.TokenFalse):
		return &mdwast.Literal{Value: mdwast.BoolValue(false), Token: p.previous}, nil
	case p.match(scanner.TokenTrue):
		return &mdwast.Literal{Value: mdwast.BoolValue(true), Token: p.previous}, nil
	case p.match(scanner.TokenNil):
		return &mdwast.Literal{Value: mdwast.NilValue(), Token: p.previous}, nil
	case p.match(scanner.TokenNumber):
		// The scanner only emits digit runs with an optional fraction, so
		// the only possible failure is overflow to infinity, which is kept.
		n, _ := strconv.ParseFloat(p.previous.Lexeme, 64)
		return &mdwast.Literal{Value: mdwast.NumberValue(n), Token: p.previous}, nil
	case p.match(scanner.TokenString):
		return &mdwast.Literal{Value: mdwast.StringValue(p.previous.StringValue()), Token: p.previous}, nil
	case p.match(scanner.TokenIdentifier):
		return &mdwast.Variable{Name: p.previous}, nil
	case p.match(scanner.TokenLeftParen):
		if err := p.nest(); err != nil {
			return nil, err
		}
		expr, err := p.expression()
		p.unnest()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(scanner.TokenRightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &mdwast.Grouping{Expression: expr}, nil
	}

	return nil, p.errorAt(p.peek(), "Expect expression.")
}

// nest enters one level of a recursive production. Beyond MaxNestingDepth
// the expression is rejected at the current token.
func (p *Parser) nest() error {
	if p.depth >= MaxNestingDepth {
		return p.errorAt(p.peek(), "Expression nesting too deep.")
	}
	p.depth++
	return nil
}

func (p *Parser) unnest() {
	p.depth--
}

// Error recovery

// synchronize discards tokens until a likely statement boundary: it always
// steps past the offending token, then stops after a semicolon or before a
// token that starts a statement.
func (p *Parser) synchronize() {
	p.advance()

	for !p.atEnd() {
		if p.previous.Type == scanner.TokenSemicolon {
			return
		}
		if p.peek().Type.StartsStatement() {
			return
		}
		p.advance()
	}
}

func (p *Parser) errorAt(tok scanner.Token, message string) *ParseError {
	p.report(diag.Syntax(tok, message))
	return &ParseError{Token: tok, Message: message}
}

func (p *Parser) report(d diag.Diagnostic) {
	p.hadError = true
	p.errors++
	if p.first == nil {
		p.first = &d
	}
	p.reporter.Report(d)
}

// Token cursor

func (p *Parser) match(types ...scanner.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(t scanner.TokenType, message string) (scanner.Token, error) {
	if p.check(t) {
		return p.advance(), nil
	}
	return scanner.Token{}, p.errorAt(p.peek(), message)
}

func (p *Parser) check(t scanner.TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) advance() scanner.Token {
	tok := p.peek()
	if tok.Type != scanner.TokenEOF {
		p.pos++
	}
	p.previous = tok
	return tok
}

func (p *Parser) atEnd() bool {
	return p.peek().Type == scanner.TokenEOF
}

// peek returns the next meaningful token. Lexical error tokens in front of
// the cursor are reported and skipped here, once each. Reading past the
// last token yields an EOF token.
func (p *Parser) peek() scanner.Token {
	for p.pos < len(p.tokens) && p.tokens[p.pos].Type.IsError() {
		p.report(diag.Lexical(p.tokens[p.pos]))
		p.pos++
	}
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return p.endOfInput()
}

func (p *Parser) endOfInput() scanner.Token {
	line := 1
	if n := len(p.tokens); n > 0 {
		line = p.tokens[n-1].Line
	}
	return scanner.Token{Type: scanner.TokenEOF, Line: line}
}

// String describes the parser state for debugging
func (p *Parser) String() string {
	return fmt.Sprintf("Parser{pos: %d/%d, errors: %d}", p.pos, len(p.tokens), p.errors)
}

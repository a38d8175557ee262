// File: nodes.go
// Title: Lox AST Node Definitions
// Description: Defines every expression and statement variant of the
//              language, including the variants reserved for functions,
//              classes and control flow.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-17
// Modified: 2025-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial AST node definitions

package ast

import (
	"github.com/msto63/lox/foundation/lox/scanner"
)

// Node represents the base interface for all AST nodes
type Node interface {
	// String returns the parenthesized prefix form of the node
	String() string

	// Accept implements the visitor pattern
	Accept(visitor Visitor) interface{}

	// Line returns the source line the node is anchored to
	Line() int
}

// Expr represents the base interface for all expressions
type Expr interface {
	Node
	exprNode()
}

// Stmt represents the base interface for all statements
type Stmt interface {
	Node
	stmtNode()
}

// Expressions

// Literal wraps a constant value. Token is the literal's source token.
type Literal struct {
	Value Value
	Token scanner.Token
}

// Grouping is a parenthesized expression
type Grouping struct {
	Expression Expr
}

// Unary applies a prefix operator (! or -)
type Unary struct {
	Operator scanner.Token
	Right    Expr
}

// Binary applies an infix arithmetic, comparison or equality operator
type Binary struct {
	Left     Expr
	Operator scanner.Token
	Right    Expr
}

// Logical applies a short-circuiting and/or
type Logical struct {
	Left     Expr
	Operator scanner.Token
	Right    Expr
}

// Variable reads a binding
type Variable struct {
	Name scanner.Token
}

// Assign rebinds an existing variable
type Assign struct {
	Name  scanner.Token
	Value Expr
}

// Call invokes a callee (reserved)
type Call struct {
	Callee    Expr
	Paren     scanner.Token
	Arguments []Expr
}

// Get reads a property (reserved)
type Get struct {
	Object Expr
	Name   scanner.Token
}

// Set writes a property (reserved)
type Set struct {
	Object Expr
	Name   scanner.Token
	Value  Expr
}

// Super refers to a superclass method (reserved)
type Super struct {
	Keyword scanner.Token
	Method  scanner.Token
}

// This refers to the current instance (reserved)
type This struct {
	Keyword scanner.Token
}

func (*Literal) exprNode()  {}
func (*Grouping) exprNode() {}
func (*Unary) exprNode()    {}
func (*Binary) exprNode()   {}
func (*Logical) exprNode()  {}
func (*Variable) exprNode() {}
func (*Assign) exprNode()   {}
func (*Call) exprNode()     {}
func (*Get) exprNode()      {}
func (*Set) exprNode()      {}
func (*Super) exprNode()    {}
func (*This) exprNode()     {}

func (e *Literal) Line() int  { return e.Token.Line }
func (e *Grouping) Line() int { return e.Expression.Line() }
func (e *Unary) Line() int    { return e.Operator.Line }
func (e *Binary) Line() int   { return e.Operator.Line }
func (e *Logical) Line() int  { return e.Operator.Line }
func (e *Variable) Line() int { return e.Name.Line }
func (e *Assign) Line() int   { return e.Name.Line }
func (e *Call) Line() int     { return e.Paren.Line }
func (e *Get) Line() int      { return e.Name.Line }
func (e *Set) Line() int      { return e.Name.Line }
func (e *Super) Line() int    { return e.Keyword.Line }
func (e *This) Line() int     { return e.Keyword.Line }

func (e *Literal) Accept(v Visitor) interface{}  { return v.VisitLiteral(e) }
func (e *Grouping) Accept(v Visitor) interface{} { return v.VisitGrouping(e) }
func (e *Unary) Accept(v Visitor) interface{}    { return v.VisitUnary(e) }
func (e *Binary) Accept(v Visitor) interface{}   { return v.VisitBinary(e) }
func (e *Logical) Accept(v Visitor) interface{}  { return v.VisitLogical(e) }
func (e *Variable) Accept(v Visitor) interface{} { return v.VisitVariable(e) }
func (e *Assign) Accept(v Visitor) interface{}   { return v.VisitAssign(e) }
func (e *Call) Accept(v Visitor) interface{}     { return v.VisitCall(e) }
func (e *Get) Accept(v Visitor) interface{}      { return v.VisitGet(e) }
func (e *Set) Accept(v Visitor) interface{}      { return v.VisitSet(e) }
func (e *Super) Accept(v Visitor) interface{}    { return v.VisitSuper(e) }
func (e *This) Accept(v Visitor) interface{}     { return v.VisitThis(e) }

func (e *Literal) String() string  { return Print(e) }
func (e *Grouping) String() string { return Print(e) }
func (e *Unary) String() string    { return Print(e) }
func (e *Binary) String() string   { return Print(e) }
func (e *Logical) String() string  { return Print(e) }
func (e *Variable) String() string { return Print(e) }
func (e *Assign) String() string   { return Print(e) }
func (e *Call) String() string     { return Print(e) }
func (e *Get) String() string      { return Print(e) }
func (e *Set) String() string      { return Print(e) }
func (e *Super) String() string    { return Print(e) }
func (e *This) String() string     { return Print(e) }

// Statements

// Expression evaluates an expression for its effect
type Expression struct {
	Expression Expr
}

// PrintStmt evaluates an expression and prints the result
type PrintStmt struct {
	Keyword    scanner.Token
	Expression Expr
}

// Var declares a variable. Initializer is nil when absent.
type Var struct {
	Name        scanner.Token
	Initializer Expr
}

// Block groups statements in a nested scope (reserved)
type Block struct {
	Brace      scanner.Token
	Statements []Stmt
}

// If is a conditional (reserved). ElseBranch may be nil.
type If struct {
	Keyword    scanner.Token
	Condition  Expr
	ThenBranch Stmt
	ElseBranch Stmt
}

// While is a loop (reserved)
type While struct {
	Keyword   scanner.Token
	Condition Expr
	Body      Stmt
}

// Function declares a named function (reserved)
type Function struct {
	Name   scanner.Token
	Params []scanner.Token
	Body   []Stmt
}

// Class declares a class (reserved). Superclass may be nil.
type Class struct {
	Name       scanner.Token
	Superclass *Variable
	Methods    []*Function
}

// Return leaves a function (reserved). Value may be nil.
type Return struct {
	Keyword scanner.Token
	Value   Expr
}

func (*Expression) stmtNode() {}
func (*PrintStmt) stmtNode()  {}
func (*Var) stmtNode()        {}
func (*Block) stmtNode()      {}
func (*If) stmtNode()         {}
func (*While) stmtNode()      {}
func (*Function) stmtNode()   {}
func (*Class) stmtNode()      {}
func (*Return) stmtNode()     {}

func (s *Expression) Line() int { return s.Expression.Line() }
func (s *PrintStmt) Line() int  { return s.Keyword.Line }
func (s *Var) Line() int        { return s.Name.Line }
func (s *Block) Line() int      { return s.Brace.Line }
func (s *If) Line() int         { return s.Keyword.Line }
func (s *While) Line() int      { return s.Keyword.Line }
func (s *Function) Line() int   { return s.Name.Line }
func (s *Class) Line() int      { return s.Name.Line }
func (s *Return) Line() int     { return s.Keyword.Line }

func (s *Expression) Accept(v Visitor) interface{} { return v.VisitExpression(s) }
func (s *PrintStmt) Accept(v Visitor) interface{}  { return v.VisitPrint(s) }
func (s *Var) Accept(v Visitor) interface{}        { return v.VisitVar(s) }
func (s *Block) Accept(v Visitor) interface{}      { return v.VisitBlock(s) }
func (s *If) Accept(v Visitor) interface{}         { return v.VisitIf(s) }
func (s *While) Accept(v Visitor) interface{}      { return v.VisitWhile(s) }
func (s *Function) Accept(v Visitor) interface{}   { return v.VisitFunction(s) }
func (s *Class) Accept(v Visitor) interface{}      { return v.VisitClass(s) }
func (s *Return) Accept(v Visitor) interface{}     { return v.VisitReturn(s) }

func (s *Expression) String() string { return Print(s) }
func (s *PrintStmt) String() string  { return Print(s) }
func (s *Var) String() string        { return Print(s) }
func (s *Block) String() string      { return Print(s) }
func (s *If) String() string         { return Print(s) }
func (s *While) String() string      { return Print(s) }
func (s *Function) String() string   { return Print(s) }
func (s *Class) String() string      { return Print(s) }
func (s *Return) String() string     { return Print(s) }

// KindName returns a short human readable name of a node variant, used in
// diagnostics such as "Not implemented: while statement".
func KindName(n Node) string {
	switch n.(type) {
	case *Literal:
		return "literal"
	case *Grouping:
		return "grouping"
	case *Unary:
		return "unary expression"
	case *Binary:
		return "binary expression"
	case *Logical:
		return "logical expression"
	case *Variable:
		return "variable"
	case *Assign:
		return "assignment"
	case *Call:
		return "call expression"
	case *Get:
		return "property access"
	case *Set:
		return "property assignment"
	case *Super:
		return "super expression"
	case *This:
		return "this expression"
	case *Expression:
		return "expression statement"
	case *PrintStmt:
		return "print statement"
	case *Var:
		return "var declaration"
	case *Block:
		return "block"
	case *If:
		return "if statement"
	case *While:
		return "while statement"
	case *Function:
		return "function declaration"
	case *Class:
		return "class declaration"
	case *Return:
		return "return statement"
	default:
		return "unknown node"
	}
}

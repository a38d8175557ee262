// File: visitor.go
// Title: Lox AST Visitor and Printer
// Description: Visitor interface over every node variant and the Printer,
//              which renders trees in parenthesized prefix form for
//              debugging and tooling.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-17
// Modified: 2025-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial visitor and printer

package ast

import (
	"strconv"
	"strings"
)

// Visitor interface for traversing AST nodes using the visitor pattern
type Visitor interface {
	// Expressions
	VisitLiteral(expr *Literal) interface{}
	VisitGrouping(expr *Grouping) interface{}
	VisitUnary(expr *Unary) interface{}
	VisitBinary(expr *Binary) interface{}
	VisitLogical(expr *Logical) interface{}
	VisitVariable(expr *Variable) interface{}
	VisitAssign(expr *Assign) interface{}
	VisitCall(expr *Call) interface{}
	VisitGet(expr *Get) interface{}
	VisitSet(expr *Set) interface{}
	VisitSuper(expr *Super) interface{}
	VisitThis(expr *This) interface{}

	// Statements
	VisitExpression(stmt *Expression) interface{}
	VisitPrint(stmt *PrintStmt) interface{}
	VisitVar(stmt *Var) interface{}
	VisitBlock(stmt *Block) interface{}
	VisitIf(stmt *If) interface{}
	VisitWhile(stmt *While) interface{}
	VisitFunction(stmt *Function) interface{}
	VisitClass(stmt *Class) interface{}
	VisitReturn(stmt *Return) interface{}
}

// Print renders a node with a fresh Printer
func Print(n Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.Accept(&Printer{}).(string)
}

// PrintProgram renders statements one per line
func PrintProgram(stmts []Stmt) string {
	var b strings.Builder
	for _, s := range stmts {
		b.WriteString(Print(s))
		b.WriteByte('\n')
	}
	return b.String()
}

// Printer renders nodes in parenthesized prefix form, e.g. (+ 1 (group 2)).
// String literals are quoted so they can be told apart from identifiers.
type Printer struct{}

func (p *Printer) parenthesize(name string, parts ...Node) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(name)
	for _, part := range parts {
		b.WriteByte(' ')
		b.WriteString(p.print(part))
	}
	b.WriteByte(')')
	return b.String()
}

func (p *Printer) print(n Node) string {
	if n == nil {
		return "nil"
	}
	return n.Accept(p).(string)
}

func (p *Printer) VisitLiteral(expr *Literal) interface{} {
	if s, ok := expr.Value.AsString(); ok {
		return strconv.Quote(s)
	}
	return expr.Value.String()
}

func (p *Printer) VisitGrouping(expr *Grouping) interface{} {
	return p.parenthesize("group", expr.Expression)
}

func (p *Printer) VisitUnary(expr *Unary) interface{} {
	return p.parenthesize(expr.Operator.Lexeme, expr.Right)
}

func (p *Printer) VisitBinary(expr *Binary) interface{} {
	return p.parenthesize(expr.Operator.Lexeme, expr.Left, expr.Right)
}

func (p *Printer) VisitLogical(expr *Logical) interface{} {
	return p.parenthesize(expr.Operator.Lexeme, expr.Left, expr.Right)
}

func (p *Printer) VisitVariable(expr *Variable) interface{} {
	return expr.Name.Lexeme
}

func (p *Printer) VisitAssign(expr *Assign) interface{} {
	return p.parenthesize("= "+expr.Name.Lexeme, expr.Value)
}

func (p *Printer) VisitCall(expr *Call) interface{} {
	parts := make([]Node, 0, len(expr.Arguments)+1)
	parts = append(parts, expr.Callee)
	for _, arg := range expr.Arguments {
		parts = append(parts, arg)
	}
	return p.parenthesize("call", parts...)
}

func (p *Printer) VisitGet(expr *Get) interface{} {
	return p.parenthesize("get "+expr.Name.Lexeme, expr.Object)
}

func (p *Printer) VisitSet(expr *Set) interface{} {
	return p.parenthesize("set "+expr.Name.Lexeme, expr.Object, expr.Value)
}

func (p *Printer) VisitSuper(expr *Super) interface{} {
	return "(super " + expr.Method.Lexeme + ")"
}

func (p *Printer) VisitThis(expr *This) interface{} {
	return "this"
}

func (p *Printer) VisitExpression(stmt *Expression) interface{} {
	return p.parenthesize(";", stmt.Expression)
}

func (p *Printer) VisitPrint(stmt *PrintStmt) interface{} {
	return p.parenthesize("print", stmt.Expression)
}

func (p *Printer) VisitVar(stmt *Var) interface{} {
	if stmt.Initializer == nil {
		return "(var " + stmt.Name.Lexeme + ")"
	}
	return p.parenthesize("var "+stmt.Name.Lexeme, stmt.Initializer)
}

func (p *Printer) VisitBlock(stmt *Block) interface{} {
	return p.parenthesize("block", stmtNodes(stmt.Statements)...)
}

func (p *Printer) VisitIf(stmt *If) interface{} {
	if stmt.ElseBranch == nil {
		return p.parenthesize("if", stmt.Condition, stmt.ThenBranch)
	}
	return p.parenthesize("if-else", stmt.Condition, stmt.ThenBranch, stmt.ElseBranch)
}

func (p *Printer) VisitWhile(stmt *While) interface{} {
	return p.parenthesize("while", stmt.Condition, stmt.Body)
}

func (p *Printer) VisitFunction(stmt *Function) interface{} {
	params := make([]string, len(stmt.Params))
	for i, param := range stmt.Params {
		params[i] = param.Lexeme
	}
	name := "fun " + stmt.Name.Lexeme + "(" + strings.Join(params, " ") + ")"
	return p.parenthesize(name, stmtNodes(stmt.Body)...)
}

func (p *Printer) VisitClass(stmt *Class) interface{} {
	name := "class " + stmt.Name.Lexeme
	if stmt.Superclass != nil {
		name += " < " + stmt.Superclass.Name.Lexeme
	}
	parts := make([]Node, len(stmt.Methods))
	for i, m := range stmt.Methods {
		parts[i] = m
	}
	return p.parenthesize(name, parts...)
}

func (p *Printer) VisitReturn(stmt *Return) interface{} {
	if stmt.Value == nil {
		return "(return)"
	}
	return p.parenthesize("return", stmt.Value)
}

func stmtNodes(stmts []Stmt) []Node {
	nodes := make([]Node, len(stmts))
	for i, s := range stmts {
		nodes[i] = s
	}
	return nodes
}

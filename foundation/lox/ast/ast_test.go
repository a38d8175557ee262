// File: ast_test.go
// Title: Lox AST Tests
// Description: Tests for value semantics, node metadata and the printer.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-17
// Modified: 2025-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial test suite

package ast

import (
	"math"
	"testing"

	"github.com/msto63/lox/foundation/lox/scanner"
)

func tok(tt scanner.TokenType, lexeme string) scanner.Token {
	return scanner.Token{Type: tt, Lexeme: lexeme, Line: 1}
}

func num(n float64) *Literal {
	return &Literal{Value: NumberValue(n), Token: tok(scanner.TokenNumber, FormatNumber(n))}
}

func TestValue_String(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"nil", NilValue(), "nil"},
		{"zero value is nil", Value{}, "nil"},
		{"true", BoolValue(true), "true"},
		{"false", BoolValue(false), "false"},
		{"integral number", NumberValue(20), "20"},
		{"fraction", NumberValue(2.5), "2.5"},
		{"negative", NumberValue(-0.125), "-0.125"},
		{"large", NumberValue(1e21), "1000000000000000000000"},
		{"infinity", NumberValue(math.Inf(1)), "inf"},
		{"negative infinity", NumberValue(math.Inf(-1)), "-inf"},
		{"not a number", NumberValue(math.NaN()), "NaN"},
		{"string unquoted", StringValue("foo bar"), "foo bar"},
		{"empty string", StringValue(""), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValue_Truthy(t *testing.T) {
	tests := []struct {
		value Value
		want  bool
	}{
		{NilValue(), false},
		{BoolValue(false), false},
		{BoolValue(true), true},
		{NumberValue(0), true},
		{StringValue(""), true},
		{StringValue("x"), true},
	}

	for _, tt := range tests {
		if got := tt.value.Truthy(); got != tt.want {
			t.Errorf("%v (%s).Truthy() = %v, want %v", tt.value, tt.value.Kind(), got, tt.want)
		}
	}
}

func TestValue_Equal(t *testing.T) {
	values := []Value{
		NilValue(), BoolValue(true), BoolValue(false),
		NumberValue(0), NumberValue(1), StringValue(""), StringValue("1"),
	}

	for i, a := range values {
		for j, b := range values {
			want := i == j
			if got := a.Equal(b); got != want {
				t.Errorf("%s(%v) == %s(%v) = %v, want %v", a.Kind(), a, b.Kind(), b, got, want)
			}
		}
	}

	if !NilValue().Equal(NilValue()) {
		t.Error("nil should equal nil")
	}
	if !StringValue("ab").Equal(StringValue("a" + "b")) {
		t.Error("strings compare by content")
	}
	if NumberValue(math.NaN()).Equal(NumberValue(math.NaN())) {
		t.Error("NaN is not equal to itself")
	}
}

func TestValue_Accessors(t *testing.T) {
	if n, ok := NumberValue(3).AsNumber(); !ok || n != 3 {
		t.Errorf("AsNumber() = %v, %v", n, ok)
	}
	if _, ok := StringValue("3").AsNumber(); ok {
		t.Error("string reported as number")
	}
	if s, ok := StringValue("x").AsString(); !ok || s != "x" {
		t.Errorf("AsString() = %q, %v", s, ok)
	}
	if b, ok := BoolValue(true).AsBool(); !ok || !b {
		t.Errorf("AsBool() = %v, %v", b, ok)
	}
	if !NilValue().IsNil() || NumberValue(0).IsNil() {
		t.Error("IsNil() mismatch")
	}
}

func TestPrinter(t *testing.T) {
	x := tok(scanner.TokenIdentifier, "x")

	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			name: "binary",
			node: &Binary{Left: num(1), Operator: tok(scanner.TokenPlus, "+"), Right: num(2)},
			want: "(+ 1 2)",
		},
		{
			name: "nested unary and grouping",
			node: &Binary{
				Left:     &Unary{Operator: tok(scanner.TokenMinus, "-"), Right: num(123)},
				Operator: tok(scanner.TokenStar, "*"),
				Right:    &Grouping{Expression: num(45.67)},
			},
			want: "(* (- 123) (group 45.67))",
		},
		{
			name: "string literal quoted",
			node: &Literal{Value: StringValue("hi"), Token: tok(scanner.TokenString, `"hi"`)},
			want: `"hi"`,
		},
		{
			name: "assign and logical",
			node: &Assign{Name: x, Value: &Logical{
				Left:     &Literal{Value: NilValue()},
				Operator: tok(scanner.TokenOr, "or"),
				Right:    &Variable{Name: tok(scanner.TokenIdentifier, "y")},
			}},
			want: "(= x (or nil y))",
		},
		{
			name: "print statement",
			node: &PrintStmt{Keyword: tok(scanner.TokenPrint, "print"), Expression: num(1)},
			want: "(print 1)",
		},
		{
			name: "expression statement",
			node: &Expression{Expression: &Variable{Name: x}},
			want: "(; x)",
		},
		{
			name: "var with and without initializer",
			node: &Block{Statements: []Stmt{
				&Var{Name: x, Initializer: num(1)},
				&Var{Name: x},
			}},
			want: "(block (var x 1) (var x))",
		},
		{
			name: "while and return",
			node: &While{
				Condition: &Literal{Value: BoolValue(true)},
				Body:      &Return{Keyword: tok(scanner.TokenReturn, "return")},
			},
			want: "(while true (return))",
		},
		{
			name: "reserved call",
			node: &Call{Callee: &Variable{Name: tok(scanner.TokenIdentifier, "f")}, Arguments: []Expr{num(1), num(2)}},
			want: "(call f 1 2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintProgram(t *testing.T) {
	stmts := []Stmt{
		&Var{Name: tok(scanner.TokenIdentifier, "a"), Initializer: num(1)},
		&PrintStmt{Expression: &Variable{Name: tok(scanner.TokenIdentifier, "a")}},
	}
	if got := PrintProgram(stmts); got != "(var a 1)\n(print a)\n" {
		t.Errorf("PrintProgram() = %q", got)
	}
}

func TestKindNameAndLine(t *testing.T) {
	w := &While{Keyword: scanner.Token{Type: scanner.TokenWhile, Lexeme: "while", Line: 7}}
	if KindName(w) != "while statement" {
		t.Errorf("KindName() = %q", KindName(w))
	}
	if w.Line() != 7 {
		t.Errorf("Line() = %d", w.Line())
	}
	g := &Grouping{Expression: &Variable{Name: scanner.Token{Type: scanner.TokenIdentifier, Lexeme: "v", Line: 3}}}
	if g.Line() != 3 {
		t.Errorf("Grouping.Line() = %d", g.Line())
	}
}

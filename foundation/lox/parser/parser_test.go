// File: parser_test.go
// Title: Lox Parser Tests
// Description: Tests for precedence, associativity, statements, error
//              reporting and resynchronization.
// Author: msto63
// Version: v0.1.1
// Created: 2025-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial test suite
// - 2026-10-17 v0.1.1: Nesting limit and state reset cases

package parser

import (
	"reflect"
	"strings"
	"testing"

	mdwerror "github.com/msto63/lox/foundation/core/error"
	mdwlog "github.com/msto63/lox/foundation/core/log"
	mdwast "github.com/msto63/lox/foundation/lox/ast"
	"github.com/msto63/lox/foundation/lox/diag"
	"github.com/msto63/lox/foundation/lox/scanner"
)

func parse(t *testing.T, source string) ([]mdwast.Stmt, *diag.Collector, error) {
	t.Helper()
	collector := diag.NewCollector()
	p, err := New(Options{Logger: mdwlog.NewNop(), Reporter: collector})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	stmts, err := p.Parse(scanner.Scan(source))
	if (err != nil) != p.HadError() {
		t.Fatalf("error %v disagrees with HadError() = %v", err, p.HadError())
	}
	return stmts, collector, err
}

func TestParser_Expressions(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"literal number", "1;", "(; 1)"},
		{"literal string", `"hi";`, `(; "hi")`},
		{"keywords", "true; false; nil;", "(; true)\n(; false)\n(; nil)"},
		{"factor binds tighter than term", "1 + 2 * 3;", "(; (+ 1 (* 2 3)))"},
		{"grouping overrides precedence", "(1 + 2) * 3;", "(; (* (group (+ 1 2)) 3))"},
		{"term is left associative", "10 - 2 - 3;", "(; (- (- 10 2) 3))"},
		{"factor is left associative", "8 / 4 / 2;", "(; (/ (/ 8 4) 2))"},
		{"comparison below term", "1 + 2 < 4;", "(; (< (+ 1 2) 4))"},
		{"equality below comparison", "1 < 2 == true;", "(; (== (< 1 2) true))"},
		{"equality is left associative", "1 == 1 != false;", "(; (!= (== 1 1) false))"},
		{"unary nests", "!!true;", "(; (! (! true)))"},
		{"unary binds tighter than factor", "-2 * 3;", "(; (* (- 2) 3))"},
		{"assignment is right associative", "a = b = 3;", "(; (= a (= b 3)))"},
		{"assignment below equality", "a = 1 == 2;", "(; (= a (== 1 2)))"},
		{"and binds tighter than or", "a or b and c;", "(; (or a (and b c)))"},
		{"logical below equality", "a == 1 and b;", "(; (and (== a 1) b))"},
		{"or is left associative", "a or b or c;", "(; (or (or a b) c))"},
		{"fraction", "2.5;", "(; 2.5)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, collector, err := parse(t, tt.source)
			if err != nil {
				t.Fatalf("Parse() error = %v (%v)", err, collector.Strings())
			}
			got := mdwast.PrintProgram(stmts)
			if got != tt.want+"\n" {
				t.Errorf("Parse(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestParser_Statements(t *testing.T) {
	stmts, _, err := parse(t, "var a; var b = 2; print a + b; a = 1;")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := "(var a)\n(var b 2)\n(print (+ a b))\n(; (= a 1))\n"
	if got := mdwast.PrintProgram(stmts); got != want {
		t.Errorf("PrintProgram() = %q, want %q", got, want)
	}

	v, ok := stmts[0].(*mdwast.Var)
	if !ok || v.Initializer != nil {
		t.Errorf("var without initializer = %#v", stmts[0])
	}
	if _, ok := stmts[2].(*mdwast.PrintStmt); !ok {
		t.Errorf("stmts[2] = %T, want *PrintStmt", stmts[2])
	}
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		wantDiags []string
		wantStmts string
		wantCode  mdwerror.Code
	}{
		{
			name:      "missing expression",
			source:    "print ;",
			wantDiags: []string{"[line 1] Error at ';': Expect expression."},
			wantCode:  mdwerror.CodeSyntax,
		},
		{
			name:      "missing semicolon at end",
			source:    "print 1",
			wantDiags: []string{"[line 1] Error at end: Expect ';' after value."},
			wantCode:  mdwerror.CodeSyntax,
		},
		{
			name:      "missing closing paren",
			source:    "(1 + 2;",
			wantDiags: []string{"[line 1] Error at ';': Expect ')' after expression."},
			wantCode:  mdwerror.CodeSyntax,
		},
		{
			name:      "missing variable name",
			source:    "var 1 = 2;\nprint 3;",
			wantDiags: []string{"[line 1] Error at '1': Expect variable name."},
			wantStmts: "(print 3)\n",
			wantCode:  mdwerror.CodeSyntax,
		},
		{
			name:      "missing semicolon skips the offending token",
			source:    "var a = 1\nprint a;",
			wantDiags: []string{"[line 2] Error at 'print': Expect ';' after variable declaration."},
			wantStmts: "",
			wantCode:  mdwerror.CodeSyntax,
		},
		{
			name:      "invalid assignment target keeps expression",
			source:    "a + b = c;",
			wantDiags: []string{"[line 1] Error at '=': Invalid assignment target."},
			wantStmts: "(; (+ a b))\n",
			wantCode:  mdwerror.CodeSyntax,
		},
		{
			name:      "unexpected character is surfaced",
			source:    "print 1 @;",
			wantDiags: []string{"[line 1] Error: Unexpected character."},
			wantStmts: "(print 1)\n",
			wantCode:  mdwerror.CodeLexical,
		},
		{
			name:      "unterminated string at end of input",
			source:    `print "abc`,
			wantDiags: []string{"[line 1] Error: Unterminated string.", "[line 1] Error at end: Expect expression."},
			wantCode:  mdwerror.CodeLexical,
		},
		{
			name:      "reserved statement is a syntax error",
			source:    "while (true) print 1;",
			wantDiags: []string{"[line 1] Error at 'while': Expect expression."},
			wantStmts: "(print 1)\n",
			wantCode:  mdwerror.CodeSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, collector, err := parse(t, tt.source)
			if err == nil {
				t.Fatal("Parse() should fail")
			}
			if got := collector.Strings(); !reflect.DeepEqual(got, tt.wantDiags) {
				t.Errorf("diagnostics = %q, want %q", got, tt.wantDiags)
			}
			if got := mdwast.PrintProgram(stmts); got != tt.wantStmts {
				t.Errorf("statements = %q, want %q", got, tt.wantStmts)
			}
			if !mdwerror.HasCode(err, tt.wantCode) {
				t.Errorf("error code = %v, want %v", mdwerror.GetCode(err), tt.wantCode)
			}
			if err.Error() != tt.wantDiags[0] {
				t.Errorf("Error() = %q, want first diagnostic", err.Error())
			}
		})
	}
}

func TestParser_Synchronize(t *testing.T) {
	source := "var a = 1;\nprint (;\nvar b = 3;\nprint a b;\nprint b;"
	stmts, collector, err := parse(t, source)
	if err == nil {
		t.Fatal("Parse() should fail")
	}

	wantDiags := []string{
		"[line 2] Error at ';': Expect expression.",
		"[line 4] Error at 'b': Expect ';' after value.",
	}
	if got := collector.Strings(); !reflect.DeepEqual(got, wantDiags) {
		t.Errorf("diagnostics = %q, want %q", got, wantDiags)
	}

	want := "(var a 1)\n(var b 3)\n(print b)\n"
	if got := mdwast.PrintProgram(stmts); got != want {
		t.Errorf("statements = %q, want %q", got, want)
	}
	if n, _ := err.(*mdwerror.Error).Detail("errors"); n != 2 {
		t.Errorf("errors detail = %v", n)
	}
}

func TestParser_SynchronizeStopsBeforeStatementKeyword(t *testing.T) {
	stmts, collector, _ := parse(t, "1 + + 2 print 3;")
	if collector.Len() != 1 {
		t.Fatalf("diagnostics = %q", collector.Strings())
	}
	if got := mdwast.PrintProgram(stmts); got != "(print 3)\n" {
		t.Errorf("statements = %q", got)
	}
}

func TestParser_EndOfInputWithoutEOFToken(t *testing.T) {
	collector := diag.NewCollector()
	p, _ := New(Options{Logger: mdwlog.NewNop(), Reporter: collector})

	tokens := []scanner.Token{
		{Type: scanner.TokenPrint, Lexeme: "print", Line: 3},
		{Type: scanner.TokenNumber, Lexeme: "1", Line: 3},
	}
	_, err := p.Parse(tokens)
	if err == nil {
		t.Fatal("Parse() should fail")
	}
	if got := collector.Strings(); len(got) != 1 || got[0] != "[line 3] Error at end: Expect ';' after value." {
		t.Errorf("diagnostics = %q", got)
	}
}

func TestParser_ReusableAcrossInputs(t *testing.T) {
	p, _ := New(Options{Logger: mdwlog.NewNop()})

	if _, err := p.Parse(scanner.Scan("print ;")); err == nil {
		t.Fatal("first Parse() should fail")
	}
	stmts, err := p.Parse(scanner.Scan("print 1;"))
	if err != nil || p.HadError() {
		t.Fatalf("second Parse() error = %v", err)
	}
	if len(stmts) != 1 {
		t.Errorf("len(stmts) = %d", len(stmts))
	}
}

func TestParser_ParseExpression(t *testing.T) {
	p, _ := New(Options{Logger: mdwlog.NewNop()})

	expr, err := p.ParseExpression(scanner.Scan("1 + 2 * x"))
	if err != nil {
		t.Fatalf("ParseExpression() error = %v", err)
	}
	if got := mdwast.Print(expr); got != "(+ 1 (* 2 x))" {
		t.Errorf("ParseExpression() = %q", got)
	}

	if _, err := p.ParseExpression(scanner.Scan("1 2")); !mdwerror.HasCode(err, mdwerror.CodeSyntax) {
		t.Errorf("trailing tokens error = %v", err)
	}
}

func TestParser_NestingLimit(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		wantDiag string
	}{
		{
			name:   "groupings at the limit",
			source: "print " + strings.Repeat("(", MaxNestingDepth) + "1" + strings.Repeat(")", MaxNestingDepth) + ";",
		},
		{
			name:     "groupings beyond the limit",
			source:   "print " + strings.Repeat("(", MaxNestingDepth+10) + "1" + strings.Repeat(")", MaxNestingDepth+10) + ";",
			wantDiag: "[line 1] Error at '(': Expression nesting too deep.",
		},
		{
			name:     "unary operators beyond the limit",
			source:   "print " + strings.Repeat("-", MaxNestingDepth+2) + "1;",
			wantDiag: "[line 1] Error at '-': Expression nesting too deep.",
		},
		{
			name:     "assignments beyond the limit",
			source:   strings.Repeat("a = ", MaxNestingDepth+2) + "1;",
			wantDiag: "[line 1] Error at 'a': Expression nesting too deep.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, collector, err := parse(t, tt.source+"\nprint 2;")

			if tt.wantDiag == "" {
				if err != nil {
					t.Fatalf("Parse() error = %v", err)
				}
				if len(stmts) != 2 {
					t.Errorf("len(stmts) = %d, want 2", len(stmts))
				}
				return
			}

			if !mdwerror.HasCode(err, mdwerror.CodeSyntax) {
				t.Fatalf("Parse() error = %v, want SYNTAX_ERROR", err)
			}
			if got := collector.Strings(); len(got) != 1 || got[0] != tt.wantDiag {
				t.Errorf("diagnostics = %q, want [%q]", got, tt.wantDiag)
			}
			if got := mdwast.PrintProgram(stmts); got != "(print 2)\n" {
				t.Errorf("statements after recovery = %q", got)
			}
		})
	}
}

func TestParser_NestingResetsBetweenStatements(t *testing.T) {
	deep := "print " + strings.Repeat("(", MaxNestingDepth) + "1" + strings.Repeat(")", MaxNestingDepth) + ";\n"
	_, collector, err := parse(t, deep+deep+deep)
	if err != nil {
		t.Fatalf("Parse() error = %v, diagnostics %q", err, collector.Strings())
	}
}

func TestParser_ParseExpressionResetsState(t *testing.T) {
	p, _ := New(Options{Logger: mdwlog.NewNop()})

	if _, err := p.Parse(scanner.Scan("print 1;")); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, err := p.ParseExpression(nil); !mdwerror.HasCode(err, mdwerror.CodeSyntax) {
		t.Fatalf("ParseExpression(nil) error = %v", err)
	}
	if p.previous != (scanner.Token{}) {
		t.Errorf("previous token carried over: %v", p.previous)
	}
	if p.depth != 0 {
		t.Errorf("depth = %d after ParseExpression", p.depth)
	}
}

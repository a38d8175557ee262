// File: environment_test.go
// Title: Lox Environment Tests
// Description: Tests for define, get and assign semantics.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-17
// Modified: 2025-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial test suite

package environment

import (
	"reflect"
	"testing"

	mdwerror "github.com/msto63/lox/foundation/core/error"
	mdwast "github.com/msto63/lox/foundation/lox/ast"
	"github.com/msto63/lox/foundation/lox/scanner"
)

func ident(name string, line int) scanner.Token {
	return scanner.Token{Type: scanner.TokenIdentifier, Lexeme: name, Line: line}
}

func TestEnvironment_DefineAndGet(t *testing.T) {
	env := New()
	env.Define("x", mdwast.NumberValue(1))

	got, err := env.Get(ident("x", 1))
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !got.Equal(mdwast.NumberValue(1)) {
		t.Errorf("Get() = %v", got)
	}

	env.Define("x", mdwast.StringValue("again"))
	got, _ = env.Get(ident("x", 2))
	if !got.Equal(mdwast.StringValue("again")) {
		t.Errorf("redeclaration should overwrite, got %v", got)
	}
	if env.Len() != 1 {
		t.Errorf("Len() = %d", env.Len())
	}
}

func TestEnvironment_NamesAreCaseSensitive(t *testing.T) {
	env := New()
	env.Define("a", mdwast.BoolValue(true))

	if _, err := env.Get(ident("A", 1)); err == nil {
		t.Error("Get(A) should not find a")
	}
}

func TestEnvironment_GetUndefined(t *testing.T) {
	env := New()

	_, err := env.Get(ident("y", 4))
	if err == nil {
		t.Fatal("Get() should fail for an undefined variable")
	}
	if err.Error() != "Undefined variable 'y'." {
		t.Errorf("Error() = %q", err.Error())
	}
	if !mdwerror.HasCode(err, mdwerror.CodeUndefinedVariable) {
		t.Errorf("code = %v", mdwerror.GetCode(err))
	}
	e := err.(*mdwerror.Error)
	if name, _ := e.Detail("name"); name != "y" {
		t.Errorf("name detail = %v", name)
	}
	if line, _ := e.Detail("line"); line != 4 {
		t.Errorf("line detail = %v", line)
	}
}

func TestEnvironment_Assign(t *testing.T) {
	env := New()

	if _, err := env.Assign(ident("z", 1), mdwast.NumberValue(1)); !mdwerror.HasCode(err, mdwerror.CodeUndefinedVariable) {
		t.Fatalf("Assign() before Define() error = %v", err)
	}
	if env.Len() != 0 {
		t.Error("failed Assign() must not create a binding")
	}

	env.Define("z", mdwast.NilValue())
	got, err := env.Assign(ident("z", 2), mdwast.NumberValue(2))
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	if !got.Equal(mdwast.NumberValue(2)) {
		t.Errorf("Assign() returned %v", got)
	}
	if v, _ := env.Lookup("z"); !v.Equal(mdwast.NumberValue(2)) {
		t.Errorf("binding after Assign() = %v", v)
	}
}

func TestEnvironment_ValuesAreCopies(t *testing.T) {
	env := New()
	env.Define("s", mdwast.StringValue("before"))

	held, _ := env.Get(ident("s", 1))
	env.Assign(ident("s", 1), mdwast.StringValue("after"))

	if !held.Equal(mdwast.StringValue("before")) {
		t.Errorf("previously retrieved value changed to %v", held)
	}
}

func TestEnvironment_NamesAndClear(t *testing.T) {
	env := New()
	env.Define("b", mdwast.NilValue())
	env.Define("a", mdwast.NilValue())

	if got := env.Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Names() = %v", got)
	}

	env.Clear()
	if env.Len() != 0 {
		t.Errorf("Len() after Clear() = %d", env.Len())
	}
}

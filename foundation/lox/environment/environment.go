// File: environment.go
// Title: Lox Variable Environment
// Description: A single flat scope mapping variable names to values.
//              Declaration always succeeds and overwrites; reads and
//              assignments require an existing binding. An Environment is
//              owned by one run at a time and is not safe for concurrent use.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-17
// Modified: 2025-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial environment

package environment

import (
	"fmt"
	"sort"

	mdwerror "github.com/msto63/lox/foundation/core/error"
	mdwast "github.com/msto63/lox/foundation/lox/ast"
	"github.com/msto63/lox/foundation/lox/scanner"
)

// Environment stores variable bindings
type Environment struct {
	values map[string]mdwast.Value
}

// New creates an empty environment
func New() *Environment {
	return &Environment{values: make(map[string]mdwast.Value)}
}

// Define binds name to value, replacing any previous binding
func (e *Environment) Define(name string, value mdwast.Value) {
	e.values[name] = value
}

// Get returns the value bound to name. It fails with UNDEFINED_VARIABLE
// when there is no binding.
func (e *Environment) Get(name scanner.Token) (mdwast.Value, error) {
	if value, ok := e.values[name.Lexeme]; ok {
		return value, nil
	}
	return mdwast.NilValue(), undefined(name, "environment.Get")
}

// Assign rebinds an existing variable and returns the assigned value. It
// fails with UNDEFINED_VARIABLE when the variable was never declared.
func (e *Environment) Assign(name scanner.Token, value mdwast.Value) (mdwast.Value, error) {
	if _, ok := e.values[name.Lexeme]; !ok {
		return mdwast.NilValue(), undefined(name, "environment.Assign")
	}
	e.values[name.Lexeme] = value
	return value, nil
}

// Lookup returns the binding for a plain name without failing
func (e *Environment) Lookup(name string) (mdwast.Value, bool) {
	value, ok := e.values[name]
	return value, ok
}

// Names returns all bound names in sorted order
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of bindings
func (e *Environment) Len() int {
	return len(e.values)
}

// Clear removes all bindings
func (e *Environment) Clear() {
	e.values = make(map[string]mdwast.Value)
}

func undefined(name scanner.Token, operation string) error {
	return mdwerror.New(fmt.Sprintf("Undefined variable '%s'.", name.Lexeme)).
		WithCode(mdwerror.CodeUndefinedVariable).
		WithOperation(operation).
		WithDetail("name", name.Lexeme).
		WithDetail("line", name.Line)
}

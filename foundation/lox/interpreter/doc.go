// Package interpreter evaluates lox syntax trees.
//
// Package: interpreter
// Title: Lox Interpreter
// Description: Tree-walking evaluation of expressions, print statements and
//              variable declarations against an explicitly passed
//              environment. Runtime errors are classified with core/error
//              codes (TYPE_MISMATCH, UNDEFINED_VARIABLE, NOT_IMPLEMENTED)
//              and carry the source line in their details.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-17
// Modified: 2025-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial interpreter
package interpreter

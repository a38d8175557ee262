// Package error provides structured error handling for the lox toolchain.
//
// Package: error
// Title: Lox Error Handling Framework
// Description: Implements a structured error type with codes, severity levels
//              and contextual details. Scanner, parser, interpreter and the
//              host tooling use it so callers can classify failures by code
//              instead of matching message text.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2025-10-17 v0.2.0: Interpreter error taxonomy (lexical, syntax, runtime, not implemented)
//
// Usage:
//   import mdwerror "github.com/msto63/lox/foundation/core/error"
//
//   err := mdwerror.New("Undefined variable 'x'.").
//     WithCode(mdwerror.CodeUndefinedVariable).
//     WithDetail("name", "x").
//     WithDetail("line", 3)
//
//   if mdwerror.HasCode(err, mdwerror.CodeUndefinedVariable) {
//     // report and continue with the next statement
//   }
package error

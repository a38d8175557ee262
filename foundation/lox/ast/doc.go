// Package ast defines the syntax tree and runtime value model of the lox
// language.
//
// Package: ast
// Title: Lox Syntax Tree
// Description: Expression and statement nodes form a closed set of variants.
//              Nodes exclusively own their children, so a parsed program is a
//              plain tree without sharing. Variants reserved for functions,
//              classes and control flow are modeled here so the parser and the
//              interpreter can grow into them; the interpreter classifies them
//              as not implemented today.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-17
// Modified: 2025-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial node set, value model and printer
//
// Usage:
//   import mdwast "github.com/msto63/lox/foundation/lox/ast"
//
//   expr := &mdwast.Binary{
//     Left:     &mdwast.Literal{Value: mdwast.NumberValue(1)},
//     Operator: plusToken,
//     Right:    &mdwast.Literal{Value: mdwast.NumberValue(2)},
//   }
//   fmt.Println(mdwast.Print(expr)) // (+ 1 2)
package ast

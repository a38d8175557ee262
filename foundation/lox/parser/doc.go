// Package parser builds lox syntax trees from scanner tokens.
//
// Package: parser
// Title: Lox Parser
// Description: Recursive descent parser with one method per precedence
//              level (assignment, or, and, equality, comparison, term,
//              factor, unary, primary). Errors are reported to a
//              diag.Reporter as they occur; after an error the parser
//              resynchronizes at the next statement boundary.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-17
// Modified: 2025-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial parser
//
// Usage:
//   p, _ := parser.New(parser.Options{Reporter: diag.NewWriterReporter(os.Stderr)})
//   stmts, err := p.Parse(scanner.Scan(source))
//   if err != nil {
//     // do not execute stmts
//   }
package parser

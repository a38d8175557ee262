// Package lox runs programs of the lox scripting language.
//
// Package: lox
// Title: Lox Engine
// Description: Orchestrates the scan, parse and interpret pipeline. A run
//              that fails to parse executes nothing; runtime errors are
//              reported per statement and, by default, do not stop the
//              remaining statements. Sessions keep one environment alive
//              across runs for interactive use.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-17
// Modified: 2025-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial engine and sessions
//
// Usage:
//   import mdwlox "github.com/msto63/lox/foundation/lox"
//
//   engine, err := mdwlox.NewEngine(mdwlox.Options{
//     Stdout:   os.Stdout,
//     Reporter: diag.NewWriterReporter(os.Stderr),
//   })
//   if err != nil {
//     return err
//   }
//   result, err := engine.Run(ctx, source, environment.New())
//
//   // Interactive use keeps bindings between inputs
//   session := engine.NewSession("repl")
//   session.Run(ctx, "var a = 1;")
//   session.Run(ctx, "print a;")
package lox

// Package integration provides integration tests for the lox foundation library.
//
// Package: integration
// Title: Lox Foundation Integration Tests
// Description: This package contains integration tests that drive the whole
//              scan, parse and interpret pipeline through the engine together
//              with the configuration, logging and error modules, verifying
//              the observable behavior of complete programs.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-17
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of integration test suite
// - 2025-10-17 v0.2.0: Rewritten around the interpreter pipeline
//
// Test Categories:
//
// Pipeline Tests (pipeline_integration_test.go):
// - Arithmetic precedence and associativity end to end
// - Value model: concatenation, equality totality, truthiness
// - Variable lifecycle and redeclaration
// - Error containment: aborted runs execute nothing
//
// Error and Logging Tests (error_integration_test.go):
// - Diagnostic to error code mapping and exit status
// - Structured JSON logging of engine runs
// - Engine options driven by TOML and YAML configuration
//
// Benchmarks (performance_test.go):
// - Scanning, parsing and running of generated programs
//
// Usage:
//   go test ./test/integration/...
//   go test -bench=. ./test/integration/...
package integration

// File: codes.go
// Title: Error Codes
// Description: Defines the structured error codes used across the lox
//              toolchain, grouped into categories for reporting and for
//              mapping to process exit statuses.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial code set
// - 2025-10-17 v0.2.0: Language codes and exit status mapping

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Language front end
	CodeLexical Code = "LEXICAL"
	CodeSyntax  Code = "SYNTAX"

	// Evaluation
	CodeRuntime           Code = "RUNTIME"
	CodeTypeMismatch      Code = "TYPE_MISMATCH"
	CodeUndefinedVariable Code = "UNDEFINED_VARIABLE"
	CodeNotImplemented    Code = "NOT_IMPLEMENTED"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Infrastructure
	CodeStorageError   Code = "STORAGE_ERROR"
	CodeTransportError Code = "TRANSPORT_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput,
		CodeLexical, CodeSyntax,
		CodeRuntime, CodeTypeMismatch, CodeUndefinedVariable, CodeNotImplemented,
		CodeConfigError, CodeInvalidConfig,
		CodeStorageError, CodeTransportError:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeLexical, CodeSyntax:
		return "compile"
	case CodeRuntime, CodeTypeMismatch, CodeUndefinedVariable:
		return "runtime"
	case CodeNotImplemented:
		return "unsupported"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	case CodeStorageError, CodeTransportError:
		return "infrastructure"
	default:
		return "generic"
	}
}

// ExitStatus returns the conventional process exit status for the code.
// Compile failures map to 65 (EX_DATAERR), evaluation failures to 70
// (EX_SOFTWARE), unreadable input to 66 (EX_NOINPUT) and configuration
// problems to 78 (EX_CONFIG).
func (c Code) ExitStatus() int {
	switch c.Category() {
	case "compile":
		return 65
	case "runtime", "unsupported":
		return 70
	case "configuration":
		return 78
	}
	if c == CodeNotFound {
		return 66
	}
	return 1
}

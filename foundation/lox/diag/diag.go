// File: diag.go
// Title: Lox Diagnostics
// Description: User facing diagnostics produced by the scanner, parser and
//              interpreter, their canonical text form and reporters that
//              deliver them to a writer or collect them for inspection.
// Author: msto63
// Version: v0.1.1
// Created: 2025-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial diagnostic model and reporters
// - 2026-10-17 v0.1.1: Collector.Strings returns nil when empty

package diag

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	mdwerror "github.com/msto63/lox/foundation/core/error"
	"github.com/msto63/lox/foundation/lox/scanner"
)

// Kind classifies a diagnostic
type Kind int

const (
	KindLexical Kind = iota
	KindSyntax
	KindRuntime
	KindNotImplemented
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case KindLexical:
		return "lexical"
	case KindSyntax:
		return "syntax"
	case KindRuntime:
		return "runtime"
	case KindNotImplemented:
		return "not_implemented"
	default:
		return "unknown"
	}
}

// Diagnostic is a single message for the user. Where is "end" for the end
// of input, the offending lexeme for other token anchored errors, and
// empty otherwise.
type Diagnostic struct {
	Kind    Kind
	Line    int
	Where   string
	Message string
	Code    mdwerror.Code
}

// Lexical builds the diagnostic for an error token
func Lexical(tok scanner.Token) Diagnostic {
	msg := "Unexpected character."
	if tok.Type == scanner.TokenUnterminatedString {
		msg = "Unterminated string."
	}
	return Diagnostic{Kind: KindLexical, Line: tok.Line, Message: msg, Code: mdwerror.CodeLexical}
}

// Syntax builds a diagnostic anchored at tok
func Syntax(tok scanner.Token, message string) Diagnostic {
	where := tok.Lexeme
	if tok.Type == scanner.TokenEOF {
		where = "end"
	}
	return Diagnostic{Kind: KindSyntax, Line: tok.Line, Where: where, Message: message, Code: mdwerror.CodeSyntax}
}

// Runtime builds a runtime diagnostic with the given classification
func Runtime(line int, message string, code mdwerror.Code) Diagnostic {
	return Diagnostic{Kind: KindRuntime, Line: line, Message: message, Code: code}
}

// NotImplemented builds the diagnostic for an unsupported construct
func NotImplemented(line int, construct string) Diagnostic {
	return Diagnostic{Kind: KindNotImplemented, Line: line, Message: construct, Code: mdwerror.CodeNotImplemented}
}

// String renders the canonical one line form
func (d Diagnostic) String() string {
	switch d.Kind {
	case KindRuntime:
		return fmt.Sprintf("[line %d] Runtime error: %s", d.Line, d.Message)
	case KindNotImplemented:
		return fmt.Sprintf("[line %d] Not implemented: %s", d.Line, d.Message)
	}
	switch d.Where {
	case "":
		return fmt.Sprintf("[line %d] Error: %s", d.Line, d.Message)
	case "end":
		return fmt.Sprintf("[line %d] Error at end: %s", d.Line, d.Message)
	default:
		return fmt.Sprintf("[line %d] Error at '%s': %s", d.Line, d.Where, d.Message)
	}
}

// Err converts the diagnostic to a structured error
func (d Diagnostic) Err() *mdwerror.Error {
	err := mdwerror.New(d.Message).
		WithCode(d.Code).
		WithDetail("line", d.Line).
		WithDetail("kind", d.Kind.String())
	if d.Where != "" {
		err = err.WithDetail("where", d.Where)
	}
	return err
}

// MarshalJSON encodes the diagnostic with its rendered text
func (d Diagnostic) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"kind":    d.Kind.String(),
		"line":    d.Line,
		"message": d.Message,
		"code":    d.Code,
		"text":    d.String(),
	})
}

// Reporter receives diagnostics as they are produced
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a function to the Reporter interface
type ReporterFunc func(d Diagnostic)

// Report calls f(d)
func (f ReporterFunc) Report(d Diagnostic) {
	f(d)
}

// Discard is a Reporter that drops everything
var Discard Reporter = ReporterFunc(func(Diagnostic) {})

// WriterReporter writes one rendered diagnostic per line
type WriterReporter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterReporter creates a reporter writing to w
func NewWriterReporter(w io.Writer) *WriterReporter {
	return &WriterReporter{w: w}
}

// Report writes the diagnostic
func (r *WriterReporter) Report(d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.w, d.String())
}

// Collector stores diagnostics in order of arrival
type Collector struct {
	mu    sync.Mutex
	diags []Diagnostic
}

// NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{}
}

// Report appends the diagnostic
func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diags = append(c.diags, d)
}

// Diagnostics returns a copy of everything collected so far
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.diags))
	copy(out, c.diags)
	return out
}

// Strings returns the rendered diagnostics, nil when there are none
func (c *Collector) Strings() []string {
	diags := c.Diagnostics()
	if len(diags) == 0 {
		return nil
	}
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.String()
	}
	return out
}

// Len returns the number of collected diagnostics
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.diags)
}

// Reset drops all collected diagnostics
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diags = nil
}

// Tee fans each diagnostic out to all reporters
func Tee(reporters ...Reporter) Reporter {
	return ReporterFunc(func(d Diagnostic) {
		for _, r := range reporters {
			if r != nil {
				r.Report(d)
			}
		}
	})
}

// ============================================================================
// Lox - Tree-Walking Interpreter
// ============================================================================
//
// Package:     repl
// Description: Terminal rendering of diagnostics
// Author:      msto63
// Created:     2025-10-17
// License:     MIT
// ============================================================================

package repl

import (
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/msto63/lox/foundation/lox/diag"
)

// Reporter writes diagnostics one per line, colored by kind when enabled
type Reporter struct {
	mu      sync.Mutex
	w       io.Writer
	colored bool

	compile *color.Color
	runtime *color.Color
	notImpl *color.Color
}

// NewReporter creates a reporter writing to w
func NewReporter(w io.Writer, colored bool) *Reporter {
	r := &Reporter{
		w:       w,
		colored: colored,
		compile: color.New(color.FgYellow),
		runtime: color.New(color.FgRed),
		notImpl: color.New(color.FgMagenta),
	}
	for _, c := range []*color.Color{r.compile, r.runtime, r.notImpl} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Report implements diag.Reporter
func (r *Reporter) Report(d diag.Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var c *color.Color
	switch d.Kind {
	case diag.KindRuntime:
		c = r.runtime
	case diag.KindNotImplemented:
		c = r.notImpl
	default:
		c = r.compile
	}
	c.Fprintln(r.w, d.String())
}

// Rejected writes the error of an input the engine refused to run
func (r *Reporter) Rejected(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.runtime.Fprintln(r.w, "Error: "+err.Error())
}

// Info writes a dimmed informational line
func (r *Reporter) Info(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := color.New(color.Faint)
	if r.colored {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	c.Fprintf(r.w, format+"\n", args...)
}

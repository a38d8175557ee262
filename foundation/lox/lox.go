// File: lox.go
// Title: Lox Engine
// Description: The Engine wires scanner, parser and interpreter together
//              and enforces the run contract: parse everything first, run
//              nothing on a syntax error, contain runtime errors per
//              statement.
// Author: msto63
// Version: v0.1.1
// Created: 2025-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial engine
// - 2026-10-17 v0.1.1: Documented the contract for rejected input

package lox

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	mdwerror "github.com/msto63/lox/foundation/core/error"
	mdwlog "github.com/msto63/lox/foundation/core/log"
	mdwast "github.com/msto63/lox/foundation/lox/ast"
	"github.com/msto63/lox/foundation/lox/diag"
	"github.com/msto63/lox/foundation/lox/environment"
	mdwinterpreter "github.com/msto63/lox/foundation/lox/interpreter"
	mdwparser "github.com/msto63/lox/foundation/lox/parser"
	"github.com/msto63/lox/foundation/lox/scanner"
)

// DefaultMaxSourceLength bounds the size of a single source text
const DefaultMaxSourceLength = 1 << 20

// Status summarizes how a run ended
type Status string

const (
	StatusOK           Status = "ok"
	StatusSyntaxError  Status = "syntax_error"
	StatusRuntimeError Status = "runtime_error"
)

// Options configures the engine behavior
type Options struct {
	// Logger for engine operations (optional, defaults to default logger)
	Logger *mdwlog.Logger

	// Stdout receives the output of print statements (default os.Stdout)
	Stdout io.Writer

	// Reporter receives every diagnostic (optional)
	Reporter diag.Reporter

	// MaxSourceLength limits the size of a source text in bytes
	MaxSourceLength int

	// StopOnRuntimeError ends a run at the first failing statement
	StopOnRuntimeError bool
}

// Result describes one run
type Result struct {
	Status        Status
	Statements    int // Statements parsed
	Executed      int // Statements attempted
	RuntimeErrors int
	Diagnostics   []diag.Diagnostic
	Duration      time.Duration
}

// Engine runs lox programs. It keeps no program state; bindings live in
// the Environment passed to Run.
type Engine struct {
	interpreter *mdwinterpreter.Interpreter
	reporter    diag.Reporter
	logger      *mdwlog.Logger
	options     Options
}

// NewEngine creates an engine
func NewEngine(opts ...Options) (*Engine, error) {
	var options Options
	if len(opts) > 0 {
		options = opts[0]
	}
	if options.Logger == nil {
		options.Logger = mdwlog.GetDefault()
	}
	if options.Stdout == nil {
		options.Stdout = os.Stdout
	}
	if options.Reporter == nil {
		options.Reporter = diag.Discard
	}
	if options.MaxSourceLength <= 0 {
		options.MaxSourceLength = DefaultMaxSourceLength
	}

	logger := options.Logger.WithField("component", "lox-engine")

	interp, err := mdwinterpreter.New(mdwinterpreter.Options{
		Logger: options.Logger,
		Stdout: options.Stdout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize interpreter: %w", err)
	}

	logger.Debug("engine initialized", mdwlog.Fields{
		"maxSourceLength":    options.MaxSourceLength,
		"stopOnRuntimeError": options.StopOnRuntimeError,
	})

	return &Engine{
		interpreter: interp,
		reporter:    options.Reporter,
		logger:      logger,
		options:     options,
	}, nil
}

// Tokens scans source
func (e *Engine) Tokens(source string) ([]scanner.Token, error) {
	if err := e.validateInput(source); err != nil {
		return nil, err
	}
	return scanner.New(source, scanner.Options{Logger: e.options.Logger}).ScanTokens(), nil
}

// Parse scans and parses source, reporting diagnostics. Statements are
// returned even when the error is non-nil.
func (e *Engine) Parse(source string) ([]mdwast.Stmt, error) {
	return e.parse(source, e.reporter)
}

func (e *Engine) parse(source string, reporter diag.Reporter) ([]mdwast.Stmt, error) {
	tokens, err := e.Tokens(source)
	if err != nil {
		return nil, err
	}
	p, err := mdwparser.New(mdwparser.Options{Logger: e.options.Logger, Reporter: reporter})
	if err != nil {
		return nil, err
	}
	return p.Parse(tokens)
}

// Run executes source against env. On a lexical or syntax error nothing is
// executed and the parse error is returned. Runtime errors are reported
// per statement; if any occurred the returned error has code RUNTIME. The
// context is checked between statements.
//
// A nil Result means the source was rejected before scanning, for example
// for exceeding MaxSourceLength. That error carries code INVALID_INPUT and
// is not sent to the reporter, so callers must surface it themselves.
func (e *Engine) Run(ctx context.Context, source string, env *environment.Environment) (*Result, error) {
	timer := e.logger.StartTimer("run")
	start := time.Now()

	collector := diag.NewCollector()
	reporter := diag.Tee(collector, e.reporter)
	result := &Result{Status: StatusOK}
	defer func() {
		result.Diagnostics = collector.Diagnostics()
		result.Duration = time.Since(start)
		timer.WithField("status", string(result.Status)).
			WithField("executed", result.Executed).
			Stop()
	}()

	stmts, err := e.parse(source, reporter)
	result.Statements = len(stmts)
	if err != nil {
		if mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
			return nil, err
		}
		result.Status = StatusSyntaxError
		e.logger.Debug("run aborted before execution", mdwlog.Fields{
			"statements": len(stmts),
		})
		return result, err
	}

	var firstErr error
	for _, stmt := range stmts {
		if err := ctx.Err(); err != nil {
			return result, mdwerror.Wrap(err, "run cancelled").
				WithCode(mdwerror.CodeRuntime).
				WithOperation("lox.Run").
				WithDetail("executed", result.Executed)
		}

		result.Executed++
		if err := e.interpreter.Interpret(stmt, env); err != nil {
			reporter.Report(mdwinterpreter.Diagnostic(err))
			result.RuntimeErrors++
			if firstErr == nil {
				firstErr = err
			}
			if e.options.StopOnRuntimeError {
				break
			}
		}
	}

	if firstErr != nil {
		result.Status = StatusRuntimeError
		return result, mdwerror.Wrap(firstErr, fmt.Sprintf("%d runtime error(s)", result.RuntimeErrors)).
			WithCode(mdwerror.CodeRuntime).
			WithOperation("lox.Run").
			WithDetail("executed", result.Executed)
	}
	return result, nil
}

func (e *Engine) validateInput(source string) error {
	if len(source) > e.options.MaxSourceLength {
		return mdwerror.New(fmt.Sprintf("source exceeds maximum length: %d > %d", len(source), e.options.MaxSourceLength)).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("lox.validateInput").
			WithDetail("length", len(source))
	}
	return nil
}

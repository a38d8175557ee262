// File: interpreter.go
// Title: Lox Tree-Walking Interpreter
// Description: Executes statements against an explicitly passed
//              Environment. Runtime failures are reported to the diagnostic
//              reporter and returned, so the caller decides whether to keep
//              going. Node variants outside the supported subset fail with
//              NOT_IMPLEMENTED instead of being skipped.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-17
// Modified: 2025-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial interpreter

package interpreter

import (
	"errors"
	"fmt"
	"io"
	"os"

	mdwerror "github.com/msto63/lox/foundation/core/error"
	mdwlog "github.com/msto63/lox/foundation/core/log"
	mdwast "github.com/msto63/lox/foundation/lox/ast"
	"github.com/msto63/lox/foundation/lox/diag"
	"github.com/msto63/lox/foundation/lox/environment"
	"github.com/msto63/lox/foundation/lox/scanner"
)

// Interpreter evaluates syntax trees. It holds no program state of its own
// and can be shared by runs that use different environments, as long as
// they do not run concurrently against the same writer.
type Interpreter struct {
	stdout   io.Writer
	reporter diag.Reporter
	logger   *mdwlog.Logger
}

// Options configures the interpreter
type Options struct {
	Logger   *mdwlog.Logger
	Stdout   io.Writer     // Destination of print statements (default os.Stdout)
	Reporter diag.Reporter // Receives runtime diagnostics
}

// New creates a new interpreter
func New(opts Options) (*Interpreter, error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Reporter == nil {
		opts.Reporter = diag.Discard
	}

	return &Interpreter{
		stdout:   opts.Stdout,
		reporter: opts.Reporter,
		logger:   opts.Logger.WithField("component", "lox-interpreter"),
	}, nil
}

// Interpret executes one statement. A runtime failure is reported and
// returned; it never escapes as a panic.
func (i *Interpreter) Interpret(stmt mdwast.Stmt, env *environment.Environment) error {
	err := i.execute(stmt, env)
	if err != nil {
		d := Diagnostic(err)
		i.logger.Debug("statement failed", mdwlog.Fields{
			"line": d.Line,
			"code": d.Code,
		})
		i.reporter.Report(d)
	}
	return err
}

// Evaluate computes the value of an expression without reporting errors
func (i *Interpreter) Evaluate(expr mdwast.Expr, env *environment.Environment) (mdwast.Value, error) {
	return i.evaluate(expr, env)
}

func (i *Interpreter) execute(stmt mdwast.Stmt, env *environment.Environment) error {
	switch s := stmt.(type) {
	case *mdwast.Expression:
		_, err := i.evaluate(s.Expression, env)
		return err

	case *mdwast.PrintStmt:
		value, err := i.evaluate(s.Expression, env)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(i.stdout, value.String()); err != nil {
			return mdwerror.Wrap(err, "failed to write output").
				WithCode(mdwerror.CodeInternal).
				WithOperation("interpreter.print").
				WithDetail("line", s.Line())
		}
		return nil

	case *mdwast.Var:
		value := mdwast.NilValue()
		if s.Initializer != nil {
			var err error
			if value, err = i.evaluate(s.Initializer, env); err != nil {
				return err
			}
		}
		env.Define(s.Name.Lexeme, value)
		return nil

	case nil:
		return mdwerror.New("nil statement").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("interpreter.execute")

	default:
		return notImplemented(stmt)
	}
}

func (i *Interpreter) evaluate(expr mdwast.Expr, env *environment.Environment) (mdwast.Value, error) {
	switch e := expr.(type) {
	case *mdwast.Literal:
		return e.Value, nil

	case *mdwast.Grouping:
		return i.evaluate(e.Expression, env)

	case *mdwast.Variable:
		return env.Get(e.Name)

	case *mdwast.Assign:
		value, err := i.evaluate(e.Value, env)
		if err != nil {
			return mdwast.NilValue(), err
		}
		return env.Assign(e.Name, value)

	case *mdwast.Unary:
		return i.evaluateUnary(e, env)

	case *mdwast.Binary:
		return i.evaluateBinary(e, env)

	case *mdwast.Logical:
		return i.evaluateLogical(e, env)

	case nil:
		return mdwast.NilValue(), mdwerror.New("nil expression").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("interpreter.evaluate")

	default:
		return mdwast.NilValue(), notImplemented(expr)
	}
}

func (i *Interpreter) evaluateUnary(e *mdwast.Unary, env *environment.Environment) (mdwast.Value, error) {
	right, err := i.evaluate(e.Right, env)
	if err != nil {
		return mdwast.NilValue(), err
	}

	switch e.Operator.Type {
	case scanner.TokenBang:
		return mdwast.BoolValue(!right.Truthy()), nil
	case scanner.TokenMinus:
		if n, ok := right.AsNumber(); ok {
			return mdwast.NumberValue(-n), nil
		}
		return mdwast.NilValue(), typeError(e.Operator, "Not a valid operand")
	}
	return mdwast.NilValue(), unknownOperator(e.Operator)
}

// evaluateBinary evaluates the left operand, then the right, then applies
// the operator.
func (i *Interpreter) evaluateBinary(e *mdwast.Binary, env *environment.Environment) (mdwast.Value, error) {
	left, err := i.evaluate(e.Left, env)
	if err != nil {
		return mdwast.NilValue(), err
	}
	right, err := i.evaluate(e.Right, env)
	if err != nil {
		return mdwast.NilValue(), err
	}

	switch e.Operator.Type {
	case scanner.TokenEqualEqual:
		return mdwast.BoolValue(left.Equal(right)), nil
	case scanner.TokenBangEqual:
		return mdwast.BoolValue(!left.Equal(right)), nil

	case scanner.TokenPlus:
		if l, ok := left.AsNumber(); ok {
			if r, ok := right.AsNumber(); ok {
				return mdwast.NumberValue(l + r), nil
			}
		}
		if l, ok := left.AsString(); ok {
			if r, ok := right.AsString(); ok {
				return mdwast.StringValue(l + r), nil
			}
		}
		return mdwast.NilValue(), typeError(e.Operator, "Operands must be two numbers or two strings.")
	}

	l, lok := left.AsNumber()
	r, rok := right.AsNumber()
	if !lok || !rok {
		switch e.Operator.Type {
		case scanner.TokenMinus, scanner.TokenSlash, scanner.TokenStar,
			scanner.TokenGreater, scanner.TokenGreaterEqual, scanner.TokenLess, scanner.TokenLessEqual:
			return mdwast.NilValue(), typeError(e.Operator, "Operands must be numbers.")
		}
		return mdwast.NilValue(), unknownOperator(e.Operator)
	}

	switch e.Operator.Type {
	case scanner.TokenMinus:
		return mdwast.NumberValue(l - r), nil
	case scanner.TokenSlash:
		return mdwast.NumberValue(l / r), nil
	case scanner.TokenStar:
		return mdwast.NumberValue(l * r), nil
	case scanner.TokenGreater:
		return mdwast.BoolValue(l > r), nil
	case scanner.TokenGreaterEqual:
		return mdwast.BoolValue(l >= r), nil
	case scanner.TokenLess:
		return mdwast.BoolValue(l < r), nil
	case scanner.TokenLessEqual:
		return mdwast.BoolValue(l <= r), nil
	}
	return mdwast.NilValue(), unknownOperator(e.Operator)
}

// evaluateLogical short-circuits: the right operand is only evaluated when
// the left one does not decide the result. The deciding operand itself is
// the result, not a coerced boolean.
func (i *Interpreter) evaluateLogical(e *mdwast.Logical, env *environment.Environment) (mdwast.Value, error) {
	left, err := i.evaluate(e.Left, env)
	if err != nil {
		return mdwast.NilValue(), err
	}

	switch e.Operator.Type {
	case scanner.TokenOr:
		if left.Truthy() {
			return left, nil
		}
	case scanner.TokenAnd:
		if !left.Truthy() {
			return left, nil
		}
	default:
		return mdwast.NilValue(), unknownOperator(e.Operator)
	}

	return i.evaluate(e.Right, env)
}

// Diagnostic converts an error returned by Interpret or Evaluate into the
// diagnostic shown to the user
func Diagnostic(err error) diag.Diagnostic {
	line := 0
	var e *mdwerror.Error
	if errors.As(err, &e) {
		if v, ok := e.Detail("line"); ok {
			if l, ok := v.(int); ok {
				line = l
			}
		}
		if e.Code() == mdwerror.CodeNotImplemented {
			construct, _ := e.Detail("construct")
			return diag.NotImplemented(line, fmt.Sprint(construct))
		}
		return diag.Runtime(line, e.Message(), e.Code())
	}
	return diag.Runtime(line, err.Error(), mdwerror.CodeRuntime)
}

func typeError(operator scanner.Token, message string) error {
	return mdwerror.New(message).
		WithCode(mdwerror.CodeTypeMismatch).
		WithOperation("interpreter.evaluate").
		WithDetail("operator", operator.Lexeme).
		WithDetail("line", operator.Line)
}

func unknownOperator(operator scanner.Token) error {
	return mdwerror.New(fmt.Sprintf("Unknown operator '%s'.", operator.Lexeme)).
		WithCode(mdwerror.CodeRuntime).
		WithOperation("interpreter.evaluate").
		WithDetail("operator", operator.Lexeme).
		WithDetail("line", operator.Line)
}

func notImplemented(n mdwast.Node) error {
	construct := mdwast.KindName(n)
	return mdwerror.New("Not implemented: "+construct).
		WithCode(mdwerror.CodeNotImplemented).
		WithOperation("interpreter.execute").
		WithDetail("construct", construct).
		WithDetail("line", n.Line())
}

// ============================================================================
// Lox - Tree-Walking Interpreter
// ============================================================================
//
// Package:     repl
// Description: Line-oriented interactive loop backed by a persistent session
// Author:      msto63
// Created:     2025-10-17
// License:     MIT
// ============================================================================

package repl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/peterh/liner"

	mdwlog "github.com/msto63/lox/foundation/core/log"
	mdwlox "github.com/msto63/lox/foundation/lox"
	"github.com/msto63/lox/internal/history/store"
)

// LineReader supplies input lines
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// Config holds REPL configuration
type Config struct {
	Prompt          string
	HistoryFile     string // liner history file, empty disables it
	MaxSourceLength int
	StopOnError     bool
	Colored         bool
	Logger          *mdwlog.Logger
	Out             io.Writer
	Err             io.Writer
	History         store.Store // Optional persistent history
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Prompt: "> ",
		Out:    os.Stdout,
		Err:    os.Stderr,
	}
}

// REPL reads inputs and runs each against one session
type REPL struct {
	cfg      Config
	reader   LineReader
	session  *mdwlox.Session
	reporter *Reporter
	output   *bytes.Buffer
	logger   *mdwlog.Logger
}

// New creates a REPL reading from reader. A nil reader uses a liner
// terminal.
func New(cfg Config, reader LineReader) (*REPL, error) {
	def := DefaultConfig()
	if cfg.Prompt == "" {
		cfg.Prompt = def.Prompt
	}
	if cfg.Out == nil {
		cfg.Out = def.Out
	}
	if cfg.Err == nil {
		cfg.Err = def.Err
	}
	if cfg.Logger == nil {
		cfg.Logger = mdwlog.GetDefault()
	}

	if reader == nil {
		reader = NewLinerReader(cfg.HistoryFile)
	}

	output := &bytes.Buffer{}
	reporter := NewReporter(cfg.Err, cfg.Colored)
	engine, err := mdwlox.NewEngine(mdwlox.Options{
		Logger:             cfg.Logger,
		Stdout:             io.MultiWriter(cfg.Out, output),
		Reporter:           reporter,
		MaxSourceLength:    cfg.MaxSourceLength,
		StopOnRuntimeError: cfg.StopOnError,
	})
	if err != nil {
		return nil, err
	}

	return &REPL{
		cfg:      cfg,
		reader:   reader,
		session:  engine.NewSession(uuid.NewString()),
		reporter: reporter,
		output:   output,
		logger:   cfg.Logger.WithField("component", "repl"),
	}, nil
}

// Session returns the session inputs run against
func (r *REPL) Session() *mdwlox.Session {
	return r.session
}

// Run loops until end of input, :quit or context cancellation
func (r *REPL) Run(ctx context.Context) error {
	defer r.reader.Close()

	r.reporter.Info("Lox REPL (session %s). Type :help for commands.", r.session.ID())

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := r.reader.Prompt(r.cfg.Prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(r.cfg.Out)
			return nil
		}
		if err != nil {
			return err
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		r.reader.AppendHistory(line)

		if strings.HasPrefix(input, ":") {
			if quit := r.meta(ctx, input); quit {
				return nil
			}
			continue
		}

		r.eval(ctx, line)
	}
}

func (r *REPL) eval(ctx context.Context, source string) {
	r.output.Reset()

	result, err := r.session.Run(ctx, source)
	if result == nil {
		// Rejected before scanning, nothing ran and nothing was reported
		r.reporter.Rejected(err)
		return
	}
	r.record(ctx, source, store.Status(result.Status))
}

func (r *REPL) record(ctx context.Context, source string, status store.Status) {
	if r.cfg.History == nil {
		return
	}
	err := r.cfg.History.Append(ctx, &store.Entry{
		SessionID: r.session.ID(),
		Source:    source,
		Output:    r.output.String(),
		Status:    status,
	})
	if err != nil {
		r.logger.Warn("failed to record history", mdwlog.Fields{"error": err.Error()})
	}
}

// meta handles a :command and reports whether the loop should end
func (r *REPL) meta(ctx context.Context, input string) bool {
	fields := strings.Fields(input)
	switch fields[0] {
	case ":quit", ":q", ":exit":
		return true

	case ":help":
		fmt.Fprint(r.cfg.Out, helpText)

	case ":env":
		bindings := r.session.Bindings()
		if len(bindings) == 0 {
			r.reporter.Info("no bindings")
		}
		for _, b := range bindings {
			fmt.Fprintf(r.cfg.Out, "%s = %s\n", b.Name, b.Value)
		}

	case ":reset":
		r.session.Reset()
		r.reporter.Info("environment cleared")

	case ":history":
		r.showHistory(ctx)

	default:
		r.reporter.Info("unknown command %s. Type :help for commands.", fields[0])
	}
	return false
}

func (r *REPL) showHistory(ctx context.Context) {
	if r.cfg.History == nil {
		r.reporter.Info("history is disabled")
		return
	}
	entries, err := r.cfg.History.Query(ctx, store.Filter{SessionID: r.session.ID(), Limit: 20})
	if err != nil {
		r.reporter.Info("history unavailable: %v", err)
		return
	}
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		fmt.Fprintf(r.cfg.Out, "%s  %-13s %s\n", e.Timestamp.Format("15:04:05"), e.Status, e.Source)
	}
}

const helpText = `Commands:
  :help      show this help
  :env       list global bindings
  :reset     clear all bindings
  :history   show recent inputs of this session
  :quit      leave the REPL
`

// linerReader adapts a liner terminal to LineReader
type linerReader struct {
	state       *liner.State
	historyFile string
}

// NewLinerReader creates a terminal line reader. History is loaded from
// and saved to historyFile when it is set.
func NewLinerReader(historyFile string) LineReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			_, _ = state.ReadHistory(f)
			_ = f.Close()
		}
	}
	return &linerReader{state: state, historyFile: historyFile}
}

func (l *linerReader) Prompt(prompt string) (string, error) {
	return l.state.Prompt(prompt)
}

func (l *linerReader) AppendHistory(item string) {
	l.state.AppendHistory(item)
}

func (l *linerReader) Close() error {
	if l.historyFile != "" {
		if f, err := os.Create(l.historyFile); err == nil {
			_, _ = l.state.WriteHistory(f)
			_ = f.Close()
		}
	}
	return l.state.Close()
}

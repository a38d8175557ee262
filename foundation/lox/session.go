// File: session.go
// Title: Lox Sessions
// Description: A Session pairs an engine with one long-lived environment so
//              that bindings survive between runs, as needed by the REPL
//              and the websocket server.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-17
// Modified: 2025-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial session implementation

package lox

import (
	"context"
	"sync"
	"time"

	mdwlog "github.com/msto63/lox/foundation/core/log"
	"github.com/msto63/lox/foundation/lox/environment"
)

// Binding is a global variable as shown to users
type Binding struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Session runs successive inputs against one environment. Runs within a
// session are serialized.
type Session struct {
	mu      sync.Mutex
	id      string
	engine  *Engine
	env     *environment.Environment
	runs    int
	created time.Time
}

// NewSession creates a session with an empty environment
func (e *Engine) NewSession(id string) *Session {
	e.logger.Debug("session created", mdwlog.Fields{"session": id})
	return &Session{
		id:      id,
		engine:  e,
		env:     environment.New(),
		created: time.Now(),
	}
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Run executes source in the session environment
func (s *Session) Run(ctx context.Context, source string) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs++
	return s.engine.Run(ctx, source, s.env)
}

// Runs returns how many inputs the session has run
func (s *Session) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

// Created returns the session creation time
func (s *Session) Created() time.Time {
	return s.created
}

// Reset drops all bindings
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.env.Clear()
	s.engine.logger.Debug("session reset", mdwlog.Fields{"session": s.id})
}

// Environment exposes the session environment
func (s *Session) Environment() *environment.Environment {
	return s.env
}

// Bindings lists the session globals sorted by name
func (s *Session) Bindings() []Binding {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := s.env.Names()
	bindings := make([]Binding, 0, len(names))
	for _, name := range names {
		value, _ := s.env.Lookup(name)
		bindings = append(bindings, Binding{Name: name, Value: value.String()})
	}
	return bindings
}

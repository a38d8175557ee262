// ============================================================================
// Lox - Tree-Walking Interpreter
// ============================================================================
//
// Package:     repl
// Description: Transcript entries and async message types of the TUI REPL
// Author:      msto63
// Created:     2025-10-17
// License:     MIT
// ============================================================================

package repl

import (
	"time"
)

// EntryKind classifies a transcript line
type EntryKind int

const (
	EntryInput EntryKind = iota
	EntryOutput
	EntryCompileError
	EntryRuntimeError
	EntrySystem
)

// Entry is one line of the transcript
type Entry struct {
	Kind      EntryKind
	Text      string
	Timestamp time.Time
}

// historyRecordedMsg is sent when an input has been persisted
type historyRecordedMsg struct {
	err error
}

// ============================================================================
// Lox - Tree-Walking Interpreter
// ============================================================================
//
// Package:     historyview
// Description: Message types for async operations in the history viewer
// Author:      msto63
// Created:     2025-10-17
// License:     MIT
// ============================================================================

package historyview

import (
	"time"

	"github.com/msto63/lox/internal/history/store"
)

// entriesLoadedMsg is sent when a store query finished
type entriesLoadedMsg struct {
	entries []*store.Entry
	err     error
}

// tickMsg is used for periodic reloads
type tickMsg time.Time

// Package log provides structured logging for the lox toolchain.
//
// Package: log
// Title: Structured Logging
// Description: Leveled, field based logging with JSON, text and console
//              output. Loggers are immutable; WithField and friends return
//              derived copies so a component can tag its own logger once and
//              hand it around freely. Integrates with core/error so that
//              structured errors are logged with their code and severity.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2025-10-17 v0.2.0: Trimmed to synchronous output, component tags for the interpreter
//
// Usage:
//   import mdwlog "github.com/msto63/lox/foundation/core/log"
//
//   logger := mdwlog.New().
//     WithLevel(mdwlog.LevelDebug).
//     WithField("component", "lox-parser")
//
//   logger.Debug("parsed program", mdwlog.Fields{"statements": 3})
//
//   timer := logger.StartTimer("run")
//   // ... execute statements
//   timer.Stop()
package log

// Package config loads application settings from TOML or YAML files.
//
// Package: config
// Title: Configuration Management
// Description: File based configuration with dot-notation access, typed
//              getters with defaults and environment variable overrides.
//              Keys such as "repl.prompt" map to nested tables; the
//              environment variable LOX_REPL_PROMPT (with prefix "LOX")
//              takes precedence over the file.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-17
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2025-10-17 v0.2.0: Removed watching and validation, added optional discovery
//
// Usage:
//   import mdwconfig "github.com/msto63/lox/foundation/core/config"
//
//   cfg, err := mdwconfig.LoadWithOptions("lox.toml", mdwconfig.LoadOptions{
//     EnvPrefix: "LOX",
//     Defaults:  map[string]interface{}{"repl": map[string]interface{}{"prompt": "> "}},
//   })
//   if err != nil {
//     return err
//   }
//   prompt := cfg.GetString("repl.prompt")
package config

// File: config_test.go
// Title: Configuration Tests
// Description: Tests for file loading, env overrides, defaults and discovery.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-17
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation
// - 2025-10-17 v0.2.0: Rewritten for interpreter settings

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	mdwerror "github.com/msto63/lox/foundation/core/error"
)

const tomlContent = `
[log]
level = "debug"

[engine]
max_source_length = 4096
continue_on_runtime_error = false

[server]
read_timeout = "30s"
`

const yamlContent = `
log:
  level: warn
repl:
  prompt: "lox> "
  tui: true
history:
  limit: 25
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		content    string
		wantFormat Format
		check      func(t *testing.T, c *Config)
	}{
		{
			name:       "toml",
			file:       "lox.toml",
			content:    tomlContent,
			wantFormat: FormatTOML,
			check: func(t *testing.T, c *Config) {
				if got := c.GetString("log.level"); got != "debug" {
					t.Errorf("log.level = %q", got)
				}
				if got := c.GetInt("engine.max_source_length"); got != 4096 {
					t.Errorf("engine.max_source_length = %d", got)
				}
				if c.GetBool("engine.continue_on_runtime_error", true) {
					t.Error("engine.continue_on_runtime_error should be false")
				}
				if got := c.GetDuration("server.read_timeout"); got != 30*time.Second {
					t.Errorf("server.read_timeout = %v", got)
				}
			},
		},
		{
			name:       "yaml",
			file:       "lox.yaml",
			content:    yamlContent,
			wantFormat: FormatYAML,
			check: func(t *testing.T, c *Config) {
				if got := c.GetString("repl.prompt"); got != "lox> " {
					t.Errorf("repl.prompt = %q", got)
				}
				if !c.GetBool("repl.tui") {
					t.Error("repl.tui should be true")
				}
				if got := c.GetInt("history.limit"); got != 25 {
					t.Errorf("history.limit = %d", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			c, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if c.Format() != tt.wantFormat {
				t.Errorf("Format() = %v, want %v", c.Format(), tt.wantFormat)
			}
			if c.FilePath() != path {
				t.Errorf("FilePath() = %q", c.FilePath())
			}
			tt.check(t, c)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(""); !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("empty path error = %v", err)
	}

	missing := filepath.Join(t.TempDir(), "missing.toml")
	if _, err := Load(missing); !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("missing file error = %v", err)
	}

	broken := writeFile(t, "broken.toml", "[log\nlevel=")
	if _, err := Load(broken); !mdwerror.HasCode(err, mdwerror.CodeInvalidConfig) {
		t.Errorf("broken file error = %v", err)
	}
}

func TestEnvironmentOverride(t *testing.T) {
	path := writeFile(t, "lox.toml", tomlContent)
	c, err := LoadWithOptions(path, LoadOptions{Format: FormatAuto, EnvPrefix: "loxtest"})
	if err != nil {
		t.Fatal(err)
	}

	t.Setenv("LOXTEST_LOG_LEVEL", "error")
	t.Setenv("LOXTEST_ENGINE_MAX_SOURCE_LENGTH", "10")
	t.Setenv("LOXTEST_ENGINE_CONTINUE_ON_RUNTIME_ERROR", "true")

	if got := c.GetString("log.level"); got != "error" {
		t.Errorf("log.level = %q, want env override", got)
	}
	if got := c.GetInt("engine.max_source_length"); got != 10 {
		t.Errorf("engine.max_source_length = %d", got)
	}
	if !c.GetBool("engine.continue_on_runtime_error") {
		t.Error("bool env override ignored")
	}
}

func TestDefaults(t *testing.T) {
	defaults := map[string]interface{}{
		"repl": map[string]interface{}{
			"prompt": "> ",
			"tui":    false,
		},
		"history": map[string]interface{}{"limit": 100},
	}

	path := writeFile(t, "lox.yaml", yamlContent)
	c, err := LoadWithOptions(path, LoadOptions{Format: FormatAuto, Defaults: defaults})
	if err != nil {
		t.Fatal(err)
	}

	if got := c.GetString("repl.prompt"); got != "lox> " {
		t.Errorf("file value should win over default, got %q", got)
	}
	if got := c.GetInt("history.limit"); got != 25 {
		t.Errorf("history.limit = %d", got)
	}

	empty := New(LoadOptions{Defaults: defaults})
	if got := empty.GetString("repl.prompt"); got != "> " {
		t.Errorf("default prompt = %q", got)
	}
	if got := empty.GetString("server.addr", ":8080"); got != ":8080" {
		t.Errorf("getter default = %q", got)
	}
}

func TestHasSetKeys(t *testing.T) {
	c, err := LoadFromString(tomlContent, FormatTOML)
	if err != nil {
		t.Fatal(err)
	}

	if !c.Has("engine.max_source_length") || c.Has("engine.nope") {
		t.Error("Has() mismatch")
	}

	c.Set("repl.prompt", ">> ")
	if got := c.GetString("repl.prompt"); got != ">> " {
		t.Errorf("Set() value = %q", got)
	}

	want := []string{
		"engine.continue_on_runtime_error",
		"engine.max_source_length",
		"log.level",
		"repl.prompt",
		"server.read_timeout",
	}
	if got := c.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "lox.yml"), []byte(yamlContent), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Discover(DiscoveryOptions{Paths: []string{t.TempDir(), dir}, Filenames: []string{"lox"}})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if c.Format() != FormatYAML || c.GetString("log.level") != "warn" {
		t.Errorf("discovered wrong file: %s", c.FilePath())
	}

	_, err = Discover(DiscoveryOptions{Paths: []string{t.TempDir()}, Filenames: []string{"lox"}, Required: true})
	if !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("required discovery error = %v", err)
	}

	fallback, err := Discover(DiscoveryOptions{
		Paths:     []string{t.TempDir()},
		Filenames: []string{"lox"},
		Defaults:  map[string]interface{}{"log": map[string]interface{}{"level": "info"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if fallback.GetString("log.level") != "info" || fallback.FilePath() != "" {
		t.Error("optional discovery should fall back to defaults")
	}
}

package cmd

import (
	"os"
	"path/filepath"
	"time"

	mdwconfig "github.com/msto63/lox/foundation/core/config"
	mdwerror "github.com/msto63/lox/foundation/core/error"
	mdwlox "github.com/msto63/lox/foundation/lox"
)

// envPrefix prefixes environment overrides, e.g. LOX_REPL_PROMPT
const envPrefix = "LOX"

// Settings is the effective application configuration
type Settings struct {
	Source string // Config file in use, empty for defaults

	LogLevel  string
	LogFormat string

	MaxSourceLength        int
	ContinueOnRuntimeError bool

	Prompt      string
	LineHistory string
	TUI         bool

	HistoryEnabled bool
	HistoryPath    string
	HistoryLimit   int

	ServerAddr        string
	ServerReadTimeout time.Duration
	ServerIdleTimeout time.Duration
}

func defaultValues() map[string]interface{} {
	return map[string]interface{}{
		"log": map[string]interface{}{
			"level":  "warn",
			"format": "text",
		},
		"engine": map[string]interface{}{
			"max_source_length":         mdwlox.DefaultMaxSourceLength,
			"continue_on_runtime_error": true,
		},
		"repl": map[string]interface{}{
			"prompt":       "> ",
			"history_file": filepath.Join(loxHome(), "repl_history"),
			"tui":          false,
		},
		"history": map[string]interface{}{
			"enabled": true,
			"path":    filepath.Join(loxHome(), "history.db"),
			"limit":   20,
		},
		"server": map[string]interface{}{
			"addr":         "127.0.0.1:8765",
			"read_timeout": "30s",
			"idle_timeout": "120s",
		},
	}
}

func loxHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lox"
	}
	return filepath.Join(home, ".lox")
}

// loadSettings reads path, or discovers lox.toml/lox.yaml when path is empty
func loadSettings(path string) (*Settings, error) {
	var cfg *mdwconfig.Config
	var err error

	if path != "" {
		cfg, err = mdwconfig.LoadWithOptions(path, mdwconfig.LoadOptions{
			EnvPrefix: envPrefix,
			Defaults:  defaultValues(),
		})
	} else {
		paths := []string{"."}
		if dir, derr := os.UserConfigDir(); derr == nil {
			paths = append(paths, filepath.Join(dir, "lox"))
		}
		cfg, err = mdwconfig.Discover(mdwconfig.DiscoveryOptions{
			Paths:     paths,
			Filenames: []string{"lox"},
			EnvPrefix: envPrefix,
			Defaults:  defaultValues(),
		})
	}
	if err != nil {
		if mdwerror.GetCode(err) == mdwerror.CodeNotFound {
			return nil, err
		}
		return nil, mdwerror.Wrap(err, "failed to load configuration").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("cmd.loadSettings")
	}

	s := &Settings{
		Source:                 cfg.FilePath(),
		LogLevel:               cfg.GetString("log.level"),
		LogFormat:              cfg.GetString("log.format"),
		MaxSourceLength:        cfg.GetInt("engine.max_source_length"),
		ContinueOnRuntimeError: cfg.GetBool("engine.continue_on_runtime_error", true),
		Prompt:                 cfg.GetString("repl.prompt"),
		LineHistory:            cfg.GetString("repl.history_file"),
		TUI:                    cfg.GetBool("repl.tui"),
		HistoryEnabled:         cfg.GetBool("history.enabled", true),
		HistoryPath:            cfg.GetString("history.path"),
		HistoryLimit:           cfg.GetInt("history.limit", 20),
		ServerAddr:             cfg.GetString("server.addr"),
		ServerReadTimeout:      cfg.GetDuration("server.read_timeout", 30*time.Second),
		ServerIdleTimeout:      cfg.GetDuration("server.idle_timeout", 120*time.Second),
	}

	if s.MaxSourceLength <= 0 {
		return nil, mdwerror.New("engine.max_source_length must be positive").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("cmd.loadSettings").
			WithDetail("value", s.MaxSourceLength)
	}
	return s, nil
}

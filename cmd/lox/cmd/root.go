package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/lox/foundation/core/error"
	mdwlog "github.com/msto63/lox/foundation/core/log"
)

var (
	cfgFile   string
	verbose   bool
	logLevel  string
	logFormat string
	noColor   bool

	settings *Settings
	logger   = mdwlog.GetDefault()
)

var rootCmd = &cobra.Command{
	Use:   "lox [script]",
	Short: "Lox - tree-walking interpreter",
	Long: `Lox runs programs of the lox scripting language.

Without arguments an interactive REPL is started. With a script
argument the script is run and the exit status reports the outcome:

  0   success
  65  lexical or syntax error (nothing was executed)
  66  script could not be read
  70  runtime error
  78  invalid configuration`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return runFile(cmd, args[0])
		}
		return runREPL(cmd)
	},
}

// Execute runs the command line with signal aware cancellation
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !reported(err) {
		printError(err)
	}
	return err
}

// ExitCode maps an error to the process exit status
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return mdwerror.GetCode(err).ExitStatus()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./lox.toml or ~/.config/lox/lox.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json, console)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")
}

// setup loads the configuration and installs the logger
func setup(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		s.LogLevel = logLevel
	}
	if logFormat != "" {
		s.LogFormat = logFormat
	}
	if verbose {
		s.LogLevel = "debug"
	}

	level, err := mdwlog.ParseLevel(s.LogLevel)
	if err != nil {
		return mdwerror.Wrap(err, "invalid log level").WithCode(mdwerror.CodeInvalidConfig)
	}
	format, err := mdwlog.ParseFormat(s.LogFormat)
	if err != nil {
		return mdwerror.Wrap(err, "invalid log format").WithCode(mdwerror.CodeInvalidConfig)
	}

	logger = mdwlog.NewWithConfig(mdwlog.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
		Name:   "lox",
	})
	mdwlog.SetDefault(logger)
	settings = s

	logger.Debug("configuration loaded", mdwlog.Fields{
		"file":    s.Source,
		"command": cmd.Name(),
	})
	return nil
}

// colored reports whether diagnostics should use ANSI colors
func colored() bool {
	return !noColor && !color.NoColor
}

// reported tells whether err has already been shown as a diagnostic
func reported(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	switch mdwerror.GetCode(err).Category() {
	case "compile", "runtime", "unsupported":
		return true
	}
	return false
}

func printError(err error) {
	fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
}

package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/lox/foundation/core/error"
	mdwlog "github.com/msto63/lox/foundation/core/log"
	mdwlox "github.com/msto63/lox/foundation/lox"
	"github.com/msto63/lox/foundation/lox/environment"
	"github.com/msto63/lox/internal/repl"
)

var stopOnError bool

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Run a lox script",
	Long: `Runs a lox script. Use "-" to read the script from standard input.

The whole script is parsed first; if any lexical or syntax error is
found nothing is executed. Runtime errors are reported per statement
and the remaining statements still run unless --stop-on-error is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFile(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&stopOnError, "stop-on-error", false, "stop at the first runtime error")
}

func runFile(cmd *cobra.Command, path string) error {
	source, err := readSource(cmd, path)
	if err != nil {
		return err
	}

	engine, err := newEngine(cmd.OutOrStdout(), repl.NewReporter(cmd.ErrOrStderr(), colored()))
	if err != nil {
		return err
	}

	result, err := engine.Run(cmd.Context(), source, environment.New())
	if result != nil {
		logger.Debug("script finished", mdwlog.Fields{
			"script":   path,
			"status":   string(result.Status),
			"executed": result.Executed,
			"duration": result.Duration.String(),
		})
	}
	return err
}

// newEngine creates an engine honoring the configured limits
func newEngine(stdout io.Writer, reporter *repl.Reporter) (*mdwlox.Engine, error) {
	return mdwlox.NewEngine(mdwlox.Options{
		Logger:             logger,
		Stdout:             stdout,
		Reporter:           reporter,
		MaxSourceLength:    settings.MaxSourceLength,
		StopOnRuntimeError: stopOnError || !settings.ContinueOnRuntimeError,
	})
}

// readSource reads a script file, or standard input for "-"
func readSource(cmd *cobra.Command, path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", mdwerror.Wrap(err, "cannot read script").
			WithCode(mdwerror.CodeNotFound).
			WithOperation("cmd.readSource").
			WithDetail("path", path)
	}
	return string(data), nil
}

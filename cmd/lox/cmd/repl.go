package cmd

import (
	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/lox/foundation/core/log"
	"github.com/msto63/lox/internal/history/store"
	"github.com/msto63/lox/internal/repl"
	tuirepl "github.com/msto63/lox/internal/tui/repl"
)

var (
	useTUI    bool
	noHistory bool
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive REPL",
	Long: `Starts an interactive session. Bindings persist between inputs.

Commands:
  :help      show help
  :env       list global bindings
  :reset     clear all bindings
  :history   show recent inputs
  :quit      leave

With --tui a full-screen interface is used instead of the line editor.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runREPL(cmd)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().BoolVar(&useTUI, "tui", false, "use the full-screen interface")
	replCmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record inputs")
}

func runREPL(cmd *cobra.Command) error {
	history := openHistory()
	if history != nil {
		defer history.Close()
	}

	if useTUI || settings.TUI {
		return tuirepl.Run(tuirepl.Config{
			Prompt:          settings.Prompt,
			MaxSourceLength: settings.MaxSourceLength,
			StopOnError:     !settings.ContinueOnRuntimeError,
			Logger:          logger,
			History:         history,
		})
	}

	r, err := repl.New(repl.Config{
		Prompt:          settings.Prompt,
		HistoryFile:     settings.LineHistory,
		MaxSourceLength: settings.MaxSourceLength,
		StopOnError:     !settings.ContinueOnRuntimeError,
		Colored:         colored(),
		Logger:          logger,
		Out:             cmd.OutOrStdout(),
		Err:             cmd.ErrOrStderr(),
		History:         history,
	}, nil)
	if err != nil {
		return err
	}
	return r.Run(cmd.Context())
}

// openHistory opens the history database, or returns nil when history is
// disabled or unavailable
func openHistory() store.Store {
	if noHistory || !settings.HistoryEnabled {
		return nil
	}
	s, err := store.NewSQLiteStore(store.Config{Path: settings.HistoryPath})
	if err != nil {
		logger.Warn("history disabled", mdwlog.Fields{"error": err.Error(), "path": settings.HistoryPath})
		return nil
	}
	return s
}

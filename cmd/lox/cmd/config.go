package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Prints the configuration after applying defaults, the config file and
LOX_* environment overrides (for example LOX_REPL_PROMPT or
LOX_ENGINE_MAX_SOURCE_LENGTH).`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		source := settings.Source
		if source == "" {
			source = "(defaults)"
		}
		fmt.Fprintf(out, "config file                       %s\n", source)
		fmt.Fprintf(out, "log.level                         %s\n", settings.LogLevel)
		fmt.Fprintf(out, "log.format                        %s\n", settings.LogFormat)
		fmt.Fprintf(out, "engine.max_source_length          %d\n", settings.MaxSourceLength)
		fmt.Fprintf(out, "engine.continue_on_runtime_error  %t\n", settings.ContinueOnRuntimeError)
		fmt.Fprintf(out, "repl.prompt                       %q\n", settings.Prompt)
		fmt.Fprintf(out, "repl.history_file                 %s\n", settings.LineHistory)
		fmt.Fprintf(out, "repl.tui                          %t\n", settings.TUI)
		fmt.Fprintf(out, "history.enabled                   %t\n", settings.HistoryEnabled)
		fmt.Fprintf(out, "history.path                      %s\n", settings.HistoryPath)
		fmt.Fprintf(out, "history.limit                     %d\n", settings.HistoryLimit)
		fmt.Fprintf(out, "server.addr                       %s\n", settings.ServerAddr)
		fmt.Fprintf(out, "server.read_timeout               %s\n", settings.ServerReadTimeout)
		fmt.Fprintf(out, "server.idle_timeout               %s\n", settings.ServerIdleTimeout)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/lox/foundation/core/error"
	"github.com/msto63/lox/internal/history/store"
	"github.com/msto63/lox/internal/tui/historyview"
)

var (
	historyLimit   int
	historySession string
	historyStatus  string
	historyPrune   time.Duration
	historyJSON    bool
	historyTUI     bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded REPL and server inputs",
	Long: `Lists inputs recorded by the REPL and the server, newest first.

Examples:
  lox history --limit 50
  lox history --session 3f2a... --json
  lox history --status runtime_error
  lox history --prune 720h   # delete entries older than 30 days
  lox history --tui          # browse and follow runs live`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "maximum number of entries (default from config)")
	historyCmd.Flags().StringVar(&historySession, "session", "", "only entries of this session")
	historyCmd.Flags().StringVar(&historyStatus, "status", "", "only entries with this status (ok, syntax_error, runtime_error)")
	historyCmd.Flags().DurationVar(&historyPrune, "prune", 0, "delete entries older than this age instead of listing")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "print entries as JSON")
	historyCmd.Flags().BoolVar(&historyTUI, "tui", false, "browse entries in a full-screen viewer")
}

func runHistory(cmd *cobra.Command, args []string) error {
	s, err := store.NewSQLiteStore(store.Config{Path: settings.HistoryPath})
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()

	if historyPrune > 0 {
		deleted, err := s.Prune(cmd.Context(), historyPrune)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d entries deleted\n", deleted)
		return nil
	}

	if historyTUI {
		return historyview.Run(historyview.Config{
			Store:     s,
			SessionID: historySession,
			Limit:     historyLimit,
			Version:   Version,
		})
	}

	filter := store.Filter{
		SessionID: historySession,
		Status:    store.Status(historyStatus),
		Limit:     historyLimit,
	}
	if filter.Limit <= 0 {
		filter.Limit = settings.HistoryLimit
	}
	switch filter.Status {
	case "", store.StatusOK, store.StatusSyntaxError, store.StatusRuntimeError:
	default:
		return mdwerror.New("unknown status " + historyStatus).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("cmd.history")
	}

	entries, err := s.Query(cmd.Context(), filter)
	if err != nil {
		return err
	}

	if historyJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if entries == nil {
			entries = []*store.Entry{}
		}
		return enc.Encode(entries)
	}

	for _, e := range entries {
		fmt.Fprintf(out, "%s  %s  %-13s %s\n",
			e.Timestamp.Format("2006-01-02 15:04:05"),
			shortID(e.SessionID),
			e.Status,
			strings.ReplaceAll(e.Source, "\n", " "))
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

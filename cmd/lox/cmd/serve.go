package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/lox/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve lox sessions over WebSocket",
	Long: `Starts an HTTP server with a WebSocket endpoint at /ws and a health
check at /health. Every connection gets its own session.

Messages:
  {"type":"run","payload":{"source":"print 1;"}}  -> result
  {"type":"env"}                                   -> env
  {"type":"reset"}                                 -> reset
  {"type":"ping"}                                  -> pong`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, 127.0.0.1:8765)")
	serveCmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record inputs")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := settings.ServerAddr
	if serveAddr != "" {
		addr = serveAddr
	}

	history := openHistory()
	if history != nil {
		defer history.Close()
	}

	srv, err := server.New(server.Config{
		Addr:            addr,
		ReadTimeout:     settings.ServerReadTimeout,
		IdleTimeout:     settings.ServerIdleTimeout,
		MaxSourceLength: settings.MaxSourceLength,
		StopOnError:     !settings.ContinueOnRuntimeError,
		Version:         Version,
		Logger:          logger,
		History:         history,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Lox server listening on ws://%s/ws (Ctrl+C to stop)\n", addr)
	return srv.Start(cmd.Context())
}

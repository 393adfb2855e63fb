package main

import (
	"os"

	"github.com/spf13/cobra"

	"tubescript/internal/logging"
	"tubescript/internal/messages"
)

func newNativeHostCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "native-host [origin]",
		Short: "Serve a browser extension over native messaging on stdin/stdout",
		Long: `Run as a browser native messaging host. Register the tubescript binary in
the host manifest; the browser starts it with the extension origin as the
first argument, which selects this command automatically.

Logs go to the log file only because stdout carries the protocol.`,
		Args: cobra.ArbitraryArgs,
		// Windows hosts also receive --parent-window.
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.logger(false)
			if err != nil {
				return err
			}
			svc, err := ctx.transcriptService(logger)
			if err != nil {
				return err
			}
			defer svc.Close()

			origin := ""
			if len(args) > 0 {
				origin = args[0]
			}
			logger.Info("native host started",
				logging.String("origin", origin),
				logging.String(logging.FieldStrategy, svc.Strategy()),
			)
			host := messages.NewHost(messages.NewHandler(svc, logger), os.Stdin, os.Stdout, logger)
			return host.Serve(cmd.Context())
		},
	}
}

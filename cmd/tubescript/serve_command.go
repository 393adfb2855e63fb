package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tubescript/internal/logging"
	"tubescript/internal/messages"
	"tubescript/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve transcript requests over the local HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(true)
			if err != nil {
				return err
			}
			svc, err := ctx.transcriptService(logger)
			if err != nil {
				return err
			}
			defer svc.Close()

			srv, err := server.New(cfg, messages.NewHandler(svc, logger), svc.Strategy(), logger)
			if err != nil {
				return err
			}
			runCtx := cmd.Context()
			if err := srv.Start(runCtx); err != nil {
				return err
			}
			defer srv.Stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s (strategy %s)\n", srv.Addr(), svc.Strategy())
			<-runCtx.Done()
			logger.Info("api server stopping", logging.String("addr", srv.Addr()))
			return nil
		},
	}
}

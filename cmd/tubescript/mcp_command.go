package main

import (
	"github.com/spf13/cobra"

	"tubescript/internal/mcptool"
)

func newMCPCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Expose transcript fetching as an MCP tool over stdio",
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

			return mcptool.Run(cmd.Context(), mcptool.NewServer(version, svc, logger))
		},
	}
}

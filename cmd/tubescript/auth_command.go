package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newAuthCommand(ctx *commandContext) *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage YouTube Data API authorization",
	}
	authCmd.AddCommand(newAuthLoginCommand(ctx))
	authCmd.AddCommand(newAuthStatusCommand(ctx))
	authCmd.AddCommand(newAuthLogoutCommand(ctx))
	return authCmd
}

func newAuthLoginCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Open the consent page and store a new access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.logger(true)
			if err != nil {
				return err
			}
			session, err := ctx.authSession(logger)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Opening the consent page in your browser...")
			token, err := session.Login(cmd.Context())
			if err != nil {
				return fmt.Errorf("authorization failed: %w", err)
			}
			fmt.Fprintln(out, "Authorized")
			if !token.Expiry.IsZero() {
				fmt.Fprintf(out, "Token expires at %s\n", token.Expiry.Local().Format(time.RFC1123))
			}
			return nil
		},
	}
}

func newAuthStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a usable access token is stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.logger(true)
			if err != nil {
				return err
			}
			session, err := ctx.authSession(logger)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			token, valid := session.Cached()
			rows := [][]string{
				{"Token file", cfg.Auth.TokenFile},
				{"Authorized", yesNo(valid)},
			}
			if token != nil && !token.Expiry.IsZero() {
				rows = append(rows, []string{"Expires", token.Expiry.Local().Format(time.RFC1123)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
			return nil
		},
	}
}

func newAuthLogoutCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.logger(true)
			if err != nil {
				return err
			}
			session, err := ctx.authSession(logger)
			if err != nil {
				return err
			}
			if err := session.Logout(); err != nil {
				return fmt.Errorf("clear token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Stored token removed")
			return nil
		},
	}
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tubescript/internal/fetcher"
	"tubescript/internal/language"
	"tubescript/internal/transcript"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var timestamps bool

	cmd := &cobra.Command{
		Use:   "fetch <video>",
		Short: "Fetch the transcript of a video (id or watch URL)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.logger(true)
			if err != nil {
				return err
			}
			svc, err := ctx.transcriptService(logger)
			if err != nil {
				return err
			}
			defer svc.Close()

			result, err := svc.FetchTranscript(cmd.Context(), args[0])
			if err != nil {
				terr := fetcher.AsTranscriptError(err)
				return fmt.Errorf("%s (%s)", terr.Message, terr.Kind)
			}
			if result.Lines == nil {
				result.Lines = []transcript.Line{}
			}
			if jsonOutput {
				return writeJSON(cmd, result)
			}
			return writeTranscript(cmd, result, timestamps)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the transcript as JSON")
	cmd.Flags().BoolVarP(&timestamps, "timestamps", "t", false, "Prefix each line with its start time")
	return cmd
}

func writeTranscript(cmd *cobra.Command, result transcript.Transcript, timestamps bool) error {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	if colorize {
		header := fmt.Sprintf("%s · %s · %d lines", result.VideoID, language.DisplayName(result.Language), len(result.Lines))
		fmt.Fprintln(out, styled(colorize, ansiBold, header))
	}
	if len(result.Lines) == 0 {
		fmt.Fprintln(out, styled(colorize, ansiDim, "(empty transcript)"))
		return nil
	}
	if !timestamps {
		fmt.Fprintln(out, result.Text())
		return nil
	}
	var b strings.Builder
	for _, line := range result.Lines {
		b.WriteString(styled(colorize, ansiDim, "["+transcript.FormatTimestamp(line.Start)+"]"))
		b.WriteByte(' ')
		b.WriteString(line.Text)
		b.WriteByte('\n')
	}
	_, err := fmt.Fprint(out, b.String())
	return err
}

package main

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"tubescript/internal/captions"
	"tubescript/internal/fetcher"
	"tubescript/internal/language"
)

func newTracksCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "tracks <video>",
		Short: "List the caption tracks available for a video",
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

			tracks, err := svc.ListTracks(cmd.Context(), args[0])
			if err != nil {
				terr := fetcher.AsTranscriptError(err)
				return fmt.Errorf("%s (%s)", terr.Message, terr.Kind)
			}
			if tracks == nil {
				tracks = []captions.Track{}
			}
			if jsonOutput {
				return writeJSON(cmd, tracks)
			}
			out := cmd.OutOrStdout()
			if len(tracks) == 0 {
				fmt.Fprintln(out, "No caption tracks")
				return nil
			}
			fmt.Fprintln(out, renderTracks(tracks))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output tracks as JSON")
	return cmd
}

func renderTracks(tracks []captions.Track) string {
	selectedIndex := -1
	if selected, err := captions.SelectTrack(tracks); err == nil {
		selectedIndex = slices.Index(tracks, selected)
	}
	rows := make([][]string, 0, len(tracks))
	for i, track := range tracks {
		kind := "manual"
		if track.AutoGenerated() {
			kind = "auto"
		}
		marker := ""
		if i == selectedIndex {
			marker = "*"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			track.LanguageCode,
			language.Label(track.LanguageCode, track.Name),
			kind,
			marker,
		})
	}
	return renderTable(
		[]string{"#", "Code", "Language", "Kind", "Selected"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
	)
}

package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// writeJSON prints v to the command's stdout as indented JSON without HTML
// escaping, so transcript text keeps its ampersands and angle brackets.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

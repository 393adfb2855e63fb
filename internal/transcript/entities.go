package transcript

import "golang.org/x/net/html"

// DecodeEntities replaces named and numeric character references with the
// characters they stand for. Markup is never interpreted; plain text comes
// back unchanged.
func DecodeEntities(text string) string {
	return html.UnescapeString(text)
}
